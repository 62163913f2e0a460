// Package codec serializes registries documents to and from their
// persisted JSON form. The document mixes fixed keys with
// identifier-derived dynamic keys inside the same containers, so
// decoding validates every dynamic key through the identity grammars
// before anything is accepted.
package codec

// DefaultRegistryKey is the reserved key for the default registry
// inside the "registries" container. The scope grammar rejects
// bracket characters, so this sentinel can never collide with a real
// scope key.
const DefaultRegistryKey = "[default]"

type documentV1 struct {
	Version        int                          `json:"version"`
	Registries     map[string]registryDTO       `json:"registries,omitempty"`
	Authentication map[string]authenticationDTO `json:"authentication,omitempty"`
	Security       *securityDTO                 `json:"security,omitempty"`
}

type registryDTO struct {
	URL string `json:"url"`

	// Encoded unconditionally; absent decodes as false.
	SupportsAvailability bool `json:"supportsAvailability"`
}

type authenticationDTO struct {
	Type         string  `json:"type"`
	LoginAPIPath *string `json:"loginAPIPath,omitempty"`
}

type securityDTO struct {
	Default           *globalSecurityDTO             `json:"default,omitempty"`
	RegistryOverrides map[string]registryOverrideDTO `json:"registryOverrides,omitempty"`
	ScopeOverrides    map[string]scopedOverrideDTO   `json:"scopeOverrides,omitempty"`
	PackageOverrides  map[string]scopedOverrideDTO   `json:"packageOverrides,omitempty"`
}

type globalSecurityDTO struct {
	Signing *signingDTO `json:"signing,omitempty"`
}

type registryOverrideDTO struct {
	Signing *signingDTO `json:"signing,omitempty"`
}

type scopedOverrideDTO struct {
	Signing *scopedSigningDTO `json:"signing,omitempty"`
}

type signingDTO struct {
	OnUnsigned                            *string              `json:"onUnsigned,omitempty"`
	OnUntrustedCertificate                *string              `json:"onUntrustedCertificate,omitempty"`
	TrustedRootCertificatesPath           *string              `json:"trustedRootCertificatesPath,omitempty"`
	IncludeDefaultTrustedRootCertificates *bool                `json:"includeDefaultTrustedRootCertificates,omitempty"`
	ValidationChecks                      *validationChecksDTO `json:"validationChecks,omitempty"`
}

type scopedSigningDTO struct {
	TrustedRootCertificatesPath           *string `json:"trustedRootCertificatesPath,omitempty"`
	IncludeDefaultTrustedRootCertificates *bool   `json:"includeDefaultTrustedRootCertificates,omitempty"`
}

type validationChecksDTO struct {
	CertificateExpiration *string `json:"certificateExpiration,omitempty"`
	CertificateRevocation *string `json:"certificateRevocation,omitempty"`
}
