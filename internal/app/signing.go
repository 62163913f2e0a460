package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"registry-config/internal/core"
	"registry-config/internal/policies"
)

// ResolveSigning computes the effective signing policy for a package:
// the layered documents are merged, the serving registry is resolved
// through the package's scope, and the security layers are overlaid
// in precedence order.
func (s Service) ResolveSigning(ctx context.Context, req ResolveSigningRequest) (ResolveSigningResult, error) {
	pkg, err := core.ParseIdentity(req.Package)
	if err != nil {
		return ResolveSigningResult{}, err
	}
	cfg, err := s.loadMerged(ctx, req.GlobalPath, req.LocalPath)
	if err != nil {
		return ResolveSigningResult{}, err
	}
	registry, found := cfg.RegistryForPackage(pkg)
	if !found {
		return ResolveSigningResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no registry is configured for package %s", pkg))
	}
	resolved, err := policies.NewSigningResolver(cfg).ResolveSigning(pkg, registry)
	if err != nil {
		return ResolveSigningResult{}, err
	}
	log.Ctx(ctx).Debug().
		Str("package", pkg.String()).
		Str("registry", registry.URL).
		Str("on_unsigned", string(resolved.OnUnsigned)).
		Msg("signing policy resolved")
	return ResolveSigningResult{
		Package:  pkg.String(),
		Registry: registry,
		Signing:  resolved,
	}, nil
}
