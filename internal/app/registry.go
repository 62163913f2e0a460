package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"registry-config/internal/core"
	"registry-config/internal/types"
)

// SetRegistry records a registry URL in the document at req.Path,
// either as the default registry or for a single scope.
func (s Service) SetRegistry(ctx context.Context, req SetRegistryRequest) (SetRegistryResult, error) {
	if strings.TrimSpace(req.Path) == "" {
		return SetRegistryResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registries document path is required")
	}
	registryURL, err := parseRegistryURL(req.URL)
	if err != nil {
		return SetRegistryResult{}, err
	}
	if registryURL.Scheme == "http" {
		log.Ctx(ctx).Warn().Str("url", req.URL).Msg("registry configured over plain http")
	}
	cfg, err := s.Store.Load(req.Path)
	if err != nil {
		return SetRegistryResult{}, err
	}
	registry := types.Registry{URL: registryURL.String()}
	result := SetRegistryResult{URL: registry.URL}
	if strings.TrimSpace(req.Scope) == "" {
		cfg.DefaultRegistry = &registry
	} else {
		scope, err := core.ParseScope(req.Scope)
		if err != nil {
			return SetRegistryResult{}, err
		}
		if cfg.ScopedRegistries == nil {
			cfg.ScopedRegistries = map[core.Scope]types.Registry{}
		}
		cfg.ScopedRegistries[scope] = registry
		result.Scope = scope.String()
	}
	if err := s.Store.Store(req.Path, cfg); err != nil {
		return SetRegistryResult{}, err
	}
	log.Ctx(ctx).Debug().Str("url", result.URL).Str("scope", result.Scope).Msg("registry set")
	return result, nil
}

// UnsetRegistry removes the default registry, or the registry for a
// single scope, from the document at req.Path.
func (s Service) UnsetRegistry(ctx context.Context, req UnsetRegistryRequest) error {
	if strings.TrimSpace(req.Path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registries document path is required")
	}
	cfg, err := s.Store.Load(req.Path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.Scope) == "" {
		if cfg.DefaultRegistry == nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("no default registry is configured")
		}
		cfg.DefaultRegistry = nil
	} else {
		scope, err := core.ParseScope(req.Scope)
		if err != nil {
			return err
		}
		if _, found := cfg.ScopedRegistries[scope]; !found {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("no registry is configured for scope %s", scope))
		}
		delete(cfg.ScopedRegistries, scope)
	}
	if err := s.Store.Store(req.Path, cfg); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("scope", req.Scope).Msg("registry unset")
	return nil
}

func parseRegistryURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry url is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid registry url %q", trimmed)).
			WithCause(err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("registry url %q must use http or https", trimmed))
	}
	if parsed.Host == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("registry url %q is missing a host", trimmed))
	}
	return parsed, nil
}
