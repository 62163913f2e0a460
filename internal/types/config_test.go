package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registry-config/internal/core"
)

func mustScope(t *testing.T, raw string) core.Scope {
	t.Helper()
	scope, err := core.ParseScope(raw)
	require.NoError(t, err)
	return scope
}

func mustIdentity(t *testing.T, raw string) core.PackageIdentity {
	t.Helper()
	identity, err := core.ParseIdentity(raw)
	require.NoError(t, err)
	return identity
}

func TestRegistryLookupFallsBackToDefault(t *testing.T) {
	cfg := NewConfiguration()
	cfg.DefaultRegistry = &Registry{URL: "https://packages.example.com"}
	cfg.ScopedRegistries[mustScope(t, "acme")] = Registry{URL: "https://registry.acme.example"}

	scoped, ok := cfg.RegistryForScope(mustScope(t, "acme"))
	require.True(t, ok)
	assert.Equal(t, "https://registry.acme.example", scoped.URL)

	fallback, ok := cfg.RegistryForScope(mustScope(t, "other"))
	require.True(t, ok)
	assert.Equal(t, "https://packages.example.com", fallback.URL)

	viaPackage, ok := cfg.RegistryForPackage(mustIdentity(t, "acme.widget"))
	require.True(t, ok)
	assert.Equal(t, "https://registry.acme.example", viaPackage.URL)
}

func TestRegistryLookupWithoutDefault(t *testing.T) {
	cfg := NewConfiguration()
	_, ok := cfg.RegistryForScope(mustScope(t, "acme"))
	assert.False(t, ok)
	_, ok = cfg.RegistryForPackage(mustIdentity(t, "acme.widget"))
	assert.False(t, ok)
}

func TestAuthenticationForMatchesHost(t *testing.T) {
	cfg := NewConfiguration()
	path := "/signin"
	cfg.RegistryAuthentication["packages.example.com"] = Authentication{
		Type:         AuthenticationTypeToken,
		LoginAPIPath: &path,
	}

	auth, ok := cfg.AuthenticationFor("https://packages.example.com/registry")
	require.True(t, ok)
	assert.Equal(t, AuthenticationTypeToken, auth.Type)
	require.NotNil(t, auth.LoginAPIPath)
	assert.Equal(t, "/signin", *auth.LoginAPIPath)

	_, ok = cfg.AuthenticationFor("https://other.example.com")
	assert.False(t, ok)
	_, ok = cfg.AuthenticationFor("not a url://")
	assert.False(t, ok)
}

func TestExplicitlyConfigured(t *testing.T) {
	cfg := NewConfiguration()
	assert.False(t, cfg.ExplicitlyConfigured())

	cfg.ScopedRegistries[mustScope(t, "acme")] = Registry{URL: "https://registry.acme.example"}
	assert.True(t, cfg.ExplicitlyConfigured())

	onlyDefault := NewConfiguration()
	onlyDefault.DefaultRegistry = &Registry{URL: "https://packages.example.com"}
	assert.True(t, onlyDefault.ExplicitlyConfigured())
}

func TestMergeUpsertsAndReplaces(t *testing.T) {
	base := NewConfiguration()
	base.DefaultRegistry = &Registry{URL: "https://global.example.com"}
	base.ScopedRegistries[mustScope(t, "acme")] = Registry{URL: "https://old.acme.example"}
	base.ScopedRegistries[mustScope(t, "kept")] = Registry{URL: "https://kept.example.com"}
	base.RegistryAuthentication["global.example.com"] = Authentication{Type: AuthenticationTypeBasic}

	overlayAction := SigningActionError
	local := NewConfiguration()
	local.DefaultRegistry = &Registry{URL: "https://local.example.com", SupportsAvailability: true}
	local.ScopedRegistries[mustScope(t, "acme")] = Registry{URL: "https://new.acme.example"}
	local.RegistryAuthentication["local.example.com"] = Authentication{Type: AuthenticationTypeToken}
	local.Security = &Security{
		Default: GlobalSecurity{Signing: &Signing{OnUnsigned: &overlayAction}},
	}

	base.Merge(local)

	require.NotNil(t, base.DefaultRegistry)
	assert.Equal(t, "https://local.example.com", base.DefaultRegistry.URL)
	assert.True(t, base.DefaultRegistry.SupportsAvailability)
	assert.Equal(t, "https://new.acme.example", base.ScopedRegistries[mustScope(t, "acme")].URL)
	assert.Equal(t, "https://kept.example.com", base.ScopedRegistries[mustScope(t, "kept")].URL)
	assert.Len(t, base.RegistryAuthentication, 2)
	require.NotNil(t, base.Security)
	require.NotNil(t, base.Security.Default.Signing)
	assert.Equal(t, SigningActionError, *base.Security.Default.Signing.OnUnsigned)
}

func TestMergePreservesAbsentSections(t *testing.T) {
	base := NewConfiguration()
	base.DefaultRegistry = &Registry{URL: "https://global.example.com"}
	action := SigningActionWarn
	base.Security = &Security{Default: GlobalSecurity{Signing: &Signing{OnUnsigned: &action}}}

	base.Merge(NewConfiguration())

	require.NotNil(t, base.DefaultRegistry)
	assert.Equal(t, "https://global.example.com", base.DefaultRegistry.URL)
	require.NotNil(t, base.Security)
	assert.Equal(t, SigningActionWarn, *base.Security.Default.Signing.OnUnsigned)
}

func TestMergeDoesNotAliasSourceSecurity(t *testing.T) {
	action := SigningActionWarn
	path := "/roots"
	source := NewConfiguration()
	source.Security = &Security{
		Default: GlobalSecurity{Signing: &Signing{OnUnsigned: &action}},
		ScopeOverrides: map[core.Scope]ScopePackageOverride{
			mustScope(t, "acme"): {
				Signing: &ScopedSigning{TrustedRootCertificatesPath: &path},
			},
		},
	}

	merged := NewConfiguration()
	merged.Merge(source)

	// mutating the source document must not bleed into the merged one
	source.Security.ScopeOverrides[mustScope(t, "other")] = ScopePackageOverride{}
	action = SigningActionSilentAllow
	path = "/mutated"
	delete(source.Security.ScopeOverrides, mustScope(t, "acme"))

	require.NotNil(t, merged.Security)
	assert.Len(t, merged.Security.ScopeOverrides, 1)
	require.NotNil(t, merged.Security.Default.Signing)
	assert.Equal(t, SigningActionWarn, *merged.Security.Default.Signing.OnUnsigned)
	override := merged.Security.ScopeOverrides[mustScope(t, "acme")]
	require.NotNil(t, override.Signing)
	require.NotNil(t, override.Signing.TrustedRootCertificatesPath)
	assert.Equal(t, "/roots", *override.Signing.TrustedRootCertificatesPath)
}

func TestMergeIdempotent(t *testing.T) {
	cfg := NewConfiguration()
	cfg.DefaultRegistry = &Registry{URL: "https://packages.example.com"}
	cfg.ScopedRegistries[mustScope(t, "acme")] = Registry{URL: "https://registry.acme.example"}
	cfg.RegistryAuthentication["packages.example.com"] = Authentication{Type: AuthenticationTypeToken}
	include := false
	cfg.Security = &Security{
		Default: GlobalSecurity{Signing: &Signing{IncludeDefaultTrustedRootCertificates: &include}},
	}

	merged := cfg
	merged.Merge(cfg)

	if diff := cmp.Diff(cfg, merged); diff != "" {
		t.Fatalf("merge with self changed configuration (-want +got):\n%s", diff)
	}
}

func TestRegistryHost(t *testing.T) {
	assert.Equal(t, "packages.example.com", Registry{URL: "https://Packages.Example.com:8443/v1"}.Host())
	assert.Equal(t, "", Registry{URL: "://bad"}.Host())
}
