package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"registry-config/internal/codec"
	"registry-config/internal/types"
)

// ConfigFileAdapter reads and writes registries documents on disk
// through the codec. Callers decide which paths matter (for example a
// user-level document layered under a project-level one).
type ConfigFileAdapter struct{}

func NewConfigFileAdapter() ConfigFileAdapter {
	return ConfigFileAdapter{}
}

func (a ConfigFileAdapter) Load(path string) (types.Configuration, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return types.NewConfiguration(), nil
	}
	if err != nil {
		return types.Configuration{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read registries document").
			WithCause(err)
	}
	return codec.DecodeConfiguration(data)
}

func (a ConfigFileAdapter) LoadRequired(path string) (types.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Configuration{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("registries document not found").
			WithCause(err)
	}
	return codec.DecodeConfiguration(data)
}

// Store writes the document with owner-only permissions; the document
// names trust anchors, so group/world write access is never granted.
func (a ConfigFileAdapter) Store(path string, cfg types.Configuration) error {
	encoded, err := codec.EncodeConfiguration(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create registries document directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write registries document").
			WithCause(err)
	}
	return nil
}
