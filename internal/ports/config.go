package ports

import "registry-config/internal/types"

// ConfigStorePort loads and persists registries documents. Where the
// documents live (paths, fixtures, memory) is the adapter's concern.
type ConfigStorePort interface {
	// Load reads the document at path. A missing file yields an empty
	// configuration, not an error.
	Load(path string) (types.Configuration, error)

	// LoadRequired reads the document at path and fails when it does
	// not exist.
	LoadRequired(path string) (types.Configuration, error)

	Store(path string, cfg types.Configuration) error
}
