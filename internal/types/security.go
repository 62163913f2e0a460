package types

import "registry-config/internal/core"

// Security holds the four-layer signing policy hierarchy. Each layer
// is independently optional and may specify only a subset of fields;
// the effective policy for a package is computed by overlaying the
// layers in precedence order (default, registry, scope, package).
type Security struct {
	Default           GlobalSecurity
	RegistryOverrides map[string]RegistryOverride
	ScopeOverrides    map[core.Scope]ScopePackageOverride
	PackageOverrides  map[core.PackageIdentity]ScopePackageOverride
}

// GlobalSecurity is the baseline layer applied before any override.
type GlobalSecurity struct {
	Signing *Signing
}

// RegistryOverride carries per-registry-host signing overrides in the
// full Signing shape.
type RegistryOverride struct {
	Signing *Signing
}

// ScopePackageOverride carries per-scope or per-package overrides.
// These layers use the reduced ScopedSigning shape: they may adjust
// trust anchors but never the enforcement actions or validation
// checks. Registry operators own the blanket policy; scopes and
// packages may only narrow trust-anchor exceptions.
type ScopePackageOverride struct {
	Signing *ScopedSigning
}

// Signing is the full, partial signing policy shape used at the
// global and registry layers. Every field is optional: a nil field
// means "not specified here" and leaves the accumulated value from
// lower-precedence layers untouched.
type Signing struct {
	OnUnsigned                            *SigningAction
	OnUntrustedCertificate                *CertificateAction
	TrustedRootCertificatesPath           *string
	IncludeDefaultTrustedRootCertificates *bool
	ValidationChecks                      *SigningValidationChecks
}

// SigningValidationChecks configures certificate validity checking.
// Sub-fields merge with the same overwrite-if-present rule as the
// parent Signing fields.
type SigningValidationChecks struct {
	CertificateExpiration *ExpirationCheck
	CertificateRevocation *RevocationCheck
}

// ScopedSigning is the reduced shape allowed at the scope and package
// layers.
type ScopedSigning struct {
	TrustedRootCertificatesPath           *string
	IncludeDefaultTrustedRootCertificates *bool
}

// Clone returns a copy sharing no mutable state with s, so a merged
// configuration cannot be changed through the source document.
func (s Security) Clone() Security {
	out := Security{
		Default: GlobalSecurity{Signing: s.Default.Signing.clone()},
	}
	if s.RegistryOverrides != nil {
		out.RegistryOverrides = make(map[string]RegistryOverride, len(s.RegistryOverrides))
		for host, override := range s.RegistryOverrides {
			out.RegistryOverrides[host] = RegistryOverride{Signing: override.Signing.clone()}
		}
	}
	if s.ScopeOverrides != nil {
		out.ScopeOverrides = make(map[core.Scope]ScopePackageOverride, len(s.ScopeOverrides))
		for scope, override := range s.ScopeOverrides {
			out.ScopeOverrides[scope] = ScopePackageOverride{Signing: override.Signing.clone()}
		}
	}
	if s.PackageOverrides != nil {
		out.PackageOverrides = make(map[core.PackageIdentity]ScopePackageOverride, len(s.PackageOverrides))
		for identity, override := range s.PackageOverrides {
			out.PackageOverrides[identity] = ScopePackageOverride{Signing: override.Signing.clone()}
		}
	}
	return out
}

func (s *Signing) clone() *Signing {
	if s == nil {
		return nil
	}
	out := Signing{
		OnUnsigned:                            clonePtr(s.OnUnsigned),
		OnUntrustedCertificate:                clonePtr(s.OnUntrustedCertificate),
		TrustedRootCertificatesPath:           clonePtr(s.TrustedRootCertificatesPath),
		IncludeDefaultTrustedRootCertificates: clonePtr(s.IncludeDefaultTrustedRootCertificates),
	}
	if s.ValidationChecks != nil {
		out.ValidationChecks = &SigningValidationChecks{
			CertificateExpiration: clonePtr(s.ValidationChecks.CertificateExpiration),
			CertificateRevocation: clonePtr(s.ValidationChecks.CertificateRevocation),
		}
	}
	return &out
}

func (s *ScopedSigning) clone() *ScopedSigning {
	if s == nil {
		return nil
	}
	return &ScopedSigning{
		TrustedRootCertificatesPath:           clonePtr(s.TrustedRootCertificatesPath),
		IncludeDefaultTrustedRootCertificates: clonePtr(s.IncludeDefaultTrustedRootCertificates),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	value := *p
	return &value
}
