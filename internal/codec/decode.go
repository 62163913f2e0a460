package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"registry-config/internal/core"
	"registry-config/internal/shared"
	"registry-config/internal/types"
)

// DecodeConfiguration parses a registries document. The decode is
// all-or-nothing: any schema violation fails the whole document, so a
// malformed file can never produce a silently-weakened policy.
func DecodeConfiguration(data []byte) (types.Configuration, error) {
	version, err := decodeVersion(data)
	if err != nil {
		return types.Configuration{}, err
	}
	// Closed dispatch over known schema versions. A future version is
	// a new arm here, never a fallback.
	switch version {
	case types.CurrentVersion:
		return decodeV1(data)
	default:
		return types.Configuration{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported registries document version %d", version))
	}
}

func decodeVersion(data []byte) (int, error) {
	var head struct {
		Version json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registries document is not valid JSON").
			WithCause(err)
	}
	if len(head.Version) == 0 {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registries document is missing a version")
	}
	var version int
	if err := json.Unmarshal(head.Version, &version); err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported registries document version %s", strings.TrimSpace(string(head.Version)))).
			WithCause(err)
	}
	return version, nil
}

func decodeV1(data []byte) (types.Configuration, error) {
	var doc documentV1
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Configuration{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse registries document").
			WithCause(err)
	}
	cfg := types.NewConfiguration()
	if err := decodeRegistries(doc.Registries, &cfg); err != nil {
		return types.Configuration{}, err
	}
	if err := decodeAuthentication(doc.Authentication, &cfg); err != nil {
		return types.Configuration{}, err
	}
	if doc.Security != nil {
		security, err := decodeSecurity(*doc.Security)
		if err != nil {
			return types.Configuration{}, err
		}
		cfg.Security = &security
	}
	return cfg, nil
}

// decodeRegistries handles the mixed-key "registries" container in
// two passes: the reserved default key first, then every remaining
// key validated through the scope grammar.
func decodeRegistries(registries map[string]registryDTO, cfg *types.Configuration) error {
	if dto, found := registries[DefaultRegistryKey]; found {
		registry, err := decodeRegistry(DefaultRegistryKey, dto)
		if err != nil {
			return err
		}
		cfg.DefaultRegistry = &registry
	}
	for key, dto := range registries {
		if key == DefaultRegistryKey {
			continue
		}
		scope, err := core.ParseScope(key)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid scope key %q in registries", key)).
				WithCause(err)
		}
		if _, exists := cfg.ScopedRegistries[scope]; exists {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate scope key %q in registries", scope))
		}
		registry, err := decodeRegistry(key, dto)
		if err != nil {
			return err
		}
		cfg.ScopedRegistries[scope] = registry
	}
	return nil
}

func decodeRegistry(key string, dto registryDTO) (types.Registry, error) {
	if strings.TrimSpace(dto.URL) == "" {
		return types.Registry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("registry %q is missing a url", key))
	}
	return types.Registry{
		URL:                  dto.URL,
		SupportsAvailability: dto.SupportsAvailability,
	}, nil
}

func decodeAuthentication(entries map[string]authenticationDTO, cfg *types.Configuration) error {
	for host, dto := range entries {
		authType := types.AuthenticationType(dto.Type)
		if !authType.IsValid() {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid authentication type %q for host %q", dto.Type, host))
		}
		cfg.RegistryAuthentication[shared.NormalizeHost(host)] = types.Authentication{
			Type:         authType,
			LoginAPIPath: copyString(dto.LoginAPIPath),
		}
	}
	return nil
}

func decodeSecurity(dto securityDTO) (types.Security, error) {
	security := types.Security{}
	if dto.Default != nil && dto.Default.Signing != nil {
		signing, err := decodeSigning("security.default", *dto.Default.Signing)
		if err != nil {
			return types.Security{}, err
		}
		security.Default.Signing = &signing
	}
	for host, override := range dto.RegistryOverrides {
		normalized := shared.NormalizeHost(host)
		if _, exists := security.RegistryOverrides[normalized]; exists {
			return types.Security{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate host key %q in security.registryOverrides", normalized))
		}
		entry := types.RegistryOverride{}
		if override.Signing != nil {
			signing, err := decodeSigning(fmt.Sprintf("security.registryOverrides[%s]", host), *override.Signing)
			if err != nil {
				return types.Security{}, err
			}
			entry.Signing = &signing
		}
		if security.RegistryOverrides == nil {
			security.RegistryOverrides = map[string]types.RegistryOverride{}
		}
		security.RegistryOverrides[normalized] = entry
	}
	for key, override := range dto.ScopeOverrides {
		scope, err := core.ParseScope(key)
		if err != nil {
			return types.Security{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid scope key %q in security.scopeOverrides", key)).
				WithCause(err)
		}
		if _, exists := security.ScopeOverrides[scope]; exists {
			return types.Security{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate scope key %q in security.scopeOverrides", scope))
		}
		if security.ScopeOverrides == nil {
			security.ScopeOverrides = map[core.Scope]types.ScopePackageOverride{}
		}
		security.ScopeOverrides[scope] = decodeScopedOverride(override)
	}
	for key, override := range dto.PackageOverrides {
		identity, err := core.ParseIdentity(key)
		if err != nil {
			return types.Security{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid package key %q in security.packageOverrides", key)).
				WithCause(err)
		}
		if !identity.IsRegistryIdentity() {
			return types.Security{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package override key %q is not a registry package identity", key))
		}
		if _, exists := security.PackageOverrides[identity]; exists {
			return types.Security{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate package key %q in security.packageOverrides", identity))
		}
		if security.PackageOverrides == nil {
			security.PackageOverrides = map[core.PackageIdentity]types.ScopePackageOverride{}
		}
		security.PackageOverrides[identity] = decodeScopedOverride(override)
	}
	return security, nil
}

func decodeSigning(where string, dto signingDTO) (types.Signing, error) {
	signing := types.Signing{
		TrustedRootCertificatesPath:           copyString(dto.TrustedRootCertificatesPath),
		IncludeDefaultTrustedRootCertificates: copyBool(dto.IncludeDefaultTrustedRootCertificates),
	}
	if dto.OnUnsigned != nil {
		action := types.SigningAction(*dto.OnUnsigned)
		if !action.IsValid() {
			return types.Signing{}, invalidEnum(where, "onUnsigned", *dto.OnUnsigned)
		}
		signing.OnUnsigned = &action
	}
	if dto.OnUntrustedCertificate != nil {
		action := types.CertificateAction(*dto.OnUntrustedCertificate)
		if !action.IsValid() {
			return types.Signing{}, invalidEnum(where, "onUntrustedCertificate", *dto.OnUntrustedCertificate)
		}
		signing.OnUntrustedCertificate = &action
	}
	if dto.ValidationChecks != nil {
		checks := types.SigningValidationChecks{}
		if dto.ValidationChecks.CertificateExpiration != nil {
			check := types.ExpirationCheck(*dto.ValidationChecks.CertificateExpiration)
			if !check.IsValid() {
				return types.Signing{}, invalidEnum(where, "certificateExpiration", *dto.ValidationChecks.CertificateExpiration)
			}
			checks.CertificateExpiration = &check
		}
		if dto.ValidationChecks.CertificateRevocation != nil {
			check := types.RevocationCheck(*dto.ValidationChecks.CertificateRevocation)
			if !check.IsValid() {
				return types.Signing{}, invalidEnum(where, "certificateRevocation", *dto.ValidationChecks.CertificateRevocation)
			}
			checks.CertificateRevocation = &check
		}
		signing.ValidationChecks = &checks
	}
	return signing, nil
}

func decodeScopedOverride(dto scopedOverrideDTO) types.ScopePackageOverride {
	if dto.Signing == nil {
		return types.ScopePackageOverride{}
	}
	return types.ScopePackageOverride{
		Signing: &types.ScopedSigning{
			TrustedRootCertificatesPath:           copyString(dto.Signing.TrustedRootCertificatesPath),
			IncludeDefaultTrustedRootCertificates: copyBool(dto.Signing.IncludeDefaultTrustedRootCertificates),
		},
	}
}

func invalidEnum(where string, field string, value string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid %s value %q in %s", field, value, where))
}

func copyString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func copyBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
