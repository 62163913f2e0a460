package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Validate decodes the document at req.Path and reports its shape.
// Decoding is all-or-nothing, so a successful result means every
// dynamic key and enum value in the document passed its grammar.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registries document path is required")
	}
	cfg, err := s.Store.LoadRequired(path)
	if err != nil {
		return ValidateResult{}, err
	}
	if cfg.DefaultRegistry != nil {
		assert.NotEmpty(ctx, cfg.DefaultRegistry.URL, "decoded default registry must carry a url")
	}
	for _, registry := range cfg.ScopedRegistries {
		assert.NotEmpty(ctx, registry.URL, "decoded scoped registry must carry a url")
	}
	log.Ctx(ctx).Debug().Str("path", path).Msg("registries document validated")
	return ValidateResult{
		Version:          cfg.Version,
		HasDefault:       cfg.DefaultRegistry != nil,
		ScopedRegistries: len(cfg.ScopedRegistries),
		Authentication:   len(cfg.RegistryAuthentication),
		HasSecurity:      cfg.Security != nil,
	}, nil
}
