package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registry-config/internal/adapters"
	"registry-config/internal/codec"
	"registry-config/internal/core"
	"registry-config/internal/policies"
	"registry-config/internal/types"
)

// End to end: two layered documents on disk, merged, then resolved
// into an effective signing policy for a package.
func TestLayeredDocumentsResolveSigning(t *testing.T) {
	dir := t.TempDir()

	globalDoc := `{
		"version": 1,
		"registries": {"[default]": {"url": "https://packages.example.com"}},
		"authentication": {"packages.example.com": {"type": "token"}},
		"security": {
			"default": {"signing": {"onUnsigned": "error"}},
			"registryOverrides": {
				"packages.example.com": {"signing": {"onUntrustedCertificate": "error"}}
			}
		}
	}`
	localDoc := `{
		"version": 1,
		"security": {
			"default": {"signing": {"onUnsigned": "warn"}},
			"scopeOverrides": {
				"acme": {"signing": {"trustedRootCertificatesPath": "/roots/acme"}}
			}
		}
	}`

	globalPath := filepath.Join(dir, "global.json")
	localPath := filepath.Join(dir, "local.json")
	require.NoError(t, os.WriteFile(globalPath, []byte(globalDoc), 0o600))
	require.NoError(t, os.WriteFile(localPath, []byte(localDoc), 0o600))

	store := adapters.NewConfigFileAdapter()
	merged, err := store.Load(globalPath)
	require.NoError(t, err)
	local, err := store.Load(localPath)
	require.NoError(t, err)
	merged.Merge(local)

	// the local security section replaces the global one wholesale
	require.NotNil(t, merged.Security)
	assert.Empty(t, merged.Security.RegistryOverrides)

	pkg, err := core.ParseIdentity("acme.widget")
	require.NoError(t, err)
	registry, found := merged.RegistryForPackage(pkg)
	require.True(t, found)
	assert.Equal(t, "https://packages.example.com", registry.URL)

	resolved, err := policies.NewSigningResolver(merged).ResolveSigning(pkg, registry)
	require.NoError(t, err)
	assert.Equal(t, types.SigningActionWarn, resolved.OnUnsigned)
	assert.Equal(t, types.CertificateActionPrompt, resolved.OnUntrustedCertificate)
	require.NotNil(t, resolved.TrustedRootCertificatesPath)
	assert.Equal(t, "/roots/acme", *resolved.TrustedRootCertificatesPath)

	auth, ok := merged.AuthenticationFor(registry.URL)
	require.True(t, ok)
	assert.Equal(t, types.AuthenticationTypeToken, auth.Type)
}

// A stored configuration must survive the encode/decode/encode cycle
// byte for byte.
func TestStoredDocumentIsStable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registries.json")

	scope, err := core.ParseScope("acme")
	require.NoError(t, err)
	action := types.SigningActionError
	cfg := types.NewConfiguration()
	cfg.DefaultRegistry = &types.Registry{URL: "https://packages.example.com", SupportsAvailability: true}
	cfg.ScopedRegistries[scope] = types.Registry{URL: "https://registry.acme.example"}
	cfg.Security = &types.Security{
		Default: types.GlobalSecurity{Signing: &types.Signing{OnUnsigned: &action}},
	}

	store := adapters.NewConfigFileAdapter()
	require.NoError(t, store.Store(path, cfg))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := store.LoadRequired(path)
	require.NoError(t, err)
	second, err := codec.EncodeConfiguration(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
