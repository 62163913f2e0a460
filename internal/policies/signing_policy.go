package policies

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"registry-config/internal/core"
	"registry-config/internal/types"
)

// ResolvedSigning is an effective signing policy with every field
// decided. It is the result of overlaying the configured layers onto
// the baseline; absent configuration never leaves a hole.
type ResolvedSigning struct {
	OnUnsigned                            types.SigningAction
	OnUntrustedCertificate                types.CertificateAction
	TrustedRootCertificatesPath           *string
	IncludeDefaultTrustedRootCertificates bool
	ValidationChecks                      ResolvedValidationChecks
}

type ResolvedValidationChecks struct {
	CertificateExpiration types.ExpirationCheck
	CertificateRevocation types.RevocationCheck
}

// BaselineSigning is the hard-coded starting point applied before any
// configured layer.
func BaselineSigning() ResolvedSigning {
	return ResolvedSigning{
		OnUnsigned:                            types.SigningActionPrompt,
		OnUntrustedCertificate:                types.CertificateActionPrompt,
		TrustedRootCertificatesPath:           nil,
		IncludeDefaultTrustedRootCertificates: true,
		ValidationChecks: ResolvedValidationChecks{
			CertificateExpiration: types.ExpirationCheckDisabled,
			CertificateRevocation: types.RevocationCheckDisabled,
		},
	}
}

// SigningResolver computes effective signing policies from a loaded
// configuration document.
type SigningResolver struct {
	cfg types.Configuration
}

func NewSigningResolver(cfg types.Configuration) SigningResolver {
	return SigningResolver{cfg: cfg}
}

// ResolveSigning overlays the four configured layers, in precedence
// order, onto the baseline: global default, registry override for the
// registry host, scope override for the package's scope, and package
// override for the exact identity. Each step overwrites only the
// fields the layer specifies. The scope and package layers carry the
// reduced ScopedSigning shape and therefore can only adjust trust
// anchors.
//
// Only registry-family identities carry a scope usable for lookups;
// any other identity is rejected.
func (r SigningResolver) ResolveSigning(pkg core.PackageIdentity, registry types.Registry) (ResolvedSigning, error) {
	scope, _, ok := pkg.RegistryParts()
	if !ok {
		return ResolvedSigning{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package identity %s does not belong to the registry family", pkg))
	}
	resolved := BaselineSigning()
	security := r.cfg.Security
	if security == nil {
		return resolved, nil
	}
	applySigning(&resolved, security.Default.Signing)
	if override, found := security.RegistryOverrides[registry.Host()]; found {
		applySigning(&resolved, override.Signing)
	}
	if override, found := security.ScopeOverrides[scope]; found {
		applyScopedSigning(&resolved, override.Signing)
	}
	if override, found := security.PackageOverrides[pkg]; found {
		applyScopedSigning(&resolved, override.Signing)
	}
	return resolved, nil
}

func applySigning(acc *ResolvedSigning, overlay *types.Signing) {
	if overlay == nil {
		return
	}
	applyField(&acc.OnUnsigned, overlay.OnUnsigned)
	applyField(&acc.OnUntrustedCertificate, overlay.OnUntrustedCertificate)
	applyOptionalField(&acc.TrustedRootCertificatesPath, overlay.TrustedRootCertificatesPath)
	applyField(&acc.IncludeDefaultTrustedRootCertificates, overlay.IncludeDefaultTrustedRootCertificates)
	if overlay.ValidationChecks != nil {
		applyField(&acc.ValidationChecks.CertificateExpiration, overlay.ValidationChecks.CertificateExpiration)
		applyField(&acc.ValidationChecks.CertificateRevocation, overlay.ValidationChecks.CertificateRevocation)
	}
}

func applyScopedSigning(acc *ResolvedSigning, overlay *types.ScopedSigning) {
	if overlay == nil {
		return
	}
	applyOptionalField(&acc.TrustedRootCertificatesPath, overlay.TrustedRootCertificatesPath)
	applyField(&acc.IncludeDefaultTrustedRootCertificates, overlay.IncludeDefaultTrustedRootCertificates)
}

// applyField overwrites dst when the overlay specifies a value and
// leaves it untouched otherwise. Every layer merges through this one
// helper so the overwrite-if-present rule cannot drift between them.
func applyField[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// applyOptionalField is applyField for fields that stay optional in
// the resolved policy. The value is copied so the resolved policy
// does not alias the configuration document.
func applyOptionalField[T any](dst **T, src *T) {
	if src != nil {
		value := *src
		*dst = &value
	}
}
