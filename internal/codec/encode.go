package codec

import (
	"encoding/json"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gowebpki/jcs"

	"registry-config/internal/types"
)

// EncodeConfiguration serializes a configuration to canonical JSON
// (RFC 8785), so the same configuration always produces the same
// bytes. The default registry is written under the reserved
// "[default]" key next to the scope-keyed entries.
func EncodeConfiguration(cfg types.Configuration) ([]byte, error) {
	doc := documentV1{
		Version: types.CurrentVersion,
	}
	if cfg.DefaultRegistry != nil || len(cfg.ScopedRegistries) > 0 {
		doc.Registries = map[string]registryDTO{}
		if cfg.DefaultRegistry != nil {
			doc.Registries[DefaultRegistryKey] = encodeRegistry(*cfg.DefaultRegistry)
		}
		for scope, registry := range cfg.ScopedRegistries {
			doc.Registries[scope.String()] = encodeRegistry(registry)
		}
	}
	if len(cfg.RegistryAuthentication) > 0 {
		doc.Authentication = map[string]authenticationDTO{}
		for host, auth := range cfg.RegistryAuthentication {
			doc.Authentication[host] = authenticationDTO{
				Type:         string(auth.Type),
				LoginAPIPath: copyString(auth.LoginAPIPath),
			}
		}
	}
	if cfg.Security != nil {
		security := encodeSecurity(*cfg.Security)
		doc.Security = &security
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode registries document").
			WithCause(err)
	}
	canonical, err := jcs.Transform(encoded)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to canonicalize registries document").
			WithCause(err)
	}
	return canonical, nil
}

func encodeRegistry(registry types.Registry) registryDTO {
	return registryDTO{
		URL:                  registry.URL,
		SupportsAvailability: registry.SupportsAvailability,
	}
}

func encodeSecurity(security types.Security) securityDTO {
	dto := securityDTO{}
	if security.Default.Signing != nil {
		signing := encodeSigning(*security.Default.Signing)
		dto.Default = &globalSecurityDTO{Signing: &signing}
	}
	if len(security.RegistryOverrides) > 0 {
		dto.RegistryOverrides = map[string]registryOverrideDTO{}
		for host, override := range security.RegistryOverrides {
			entry := registryOverrideDTO{}
			if override.Signing != nil {
				signing := encodeSigning(*override.Signing)
				entry.Signing = &signing
			}
			dto.RegistryOverrides[host] = entry
		}
	}
	if len(security.ScopeOverrides) > 0 {
		dto.ScopeOverrides = map[string]scopedOverrideDTO{}
		for scope, override := range security.ScopeOverrides {
			dto.ScopeOverrides[scope.String()] = encodeScopedOverride(override)
		}
	}
	if len(security.PackageOverrides) > 0 {
		dto.PackageOverrides = map[string]scopedOverrideDTO{}
		for identity, override := range security.PackageOverrides {
			dto.PackageOverrides[identity.String()] = encodeScopedOverride(override)
		}
	}
	return dto
}

func encodeSigning(signing types.Signing) signingDTO {
	dto := signingDTO{
		TrustedRootCertificatesPath:           copyString(signing.TrustedRootCertificatesPath),
		IncludeDefaultTrustedRootCertificates: copyBool(signing.IncludeDefaultTrustedRootCertificates),
	}
	if signing.OnUnsigned != nil {
		value := string(*signing.OnUnsigned)
		dto.OnUnsigned = &value
	}
	if signing.OnUntrustedCertificate != nil {
		value := string(*signing.OnUntrustedCertificate)
		dto.OnUntrustedCertificate = &value
	}
	if signing.ValidationChecks != nil {
		checks := validationChecksDTO{}
		if signing.ValidationChecks.CertificateExpiration != nil {
			value := string(*signing.ValidationChecks.CertificateExpiration)
			checks.CertificateExpiration = &value
		}
		if signing.ValidationChecks.CertificateRevocation != nil {
			value := string(*signing.ValidationChecks.CertificateRevocation)
			checks.CertificateRevocation = &value
		}
		dto.ValidationChecks = &checks
	}
	return dto
}

func encodeScopedOverride(override types.ScopePackageOverride) scopedOverrideDTO {
	if override.Signing == nil {
		return scopedOverrideDTO{}
	}
	return scopedOverrideDTO{
		Signing: &scopedSigningDTO{
			TrustedRootCertificatesPath:           copyString(override.Signing.TrustedRootCertificatesPath),
			IncludeDefaultTrustedRootCertificates: copyBool(override.Signing.IncludeDefaultTrustedRootCertificates),
		},
	}
}
