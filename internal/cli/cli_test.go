package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{"show", "set", "unset", "signing", "validate"}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestSetCommandFlags(t *testing.T) {
	cmd := newSetCommand()
	assert.NotNil(t, cmd.Flags().Lookup("scope"))
	assert.NotNil(t, cmd.Flags().Lookup("global"))
}

func TestUnsetCommandFlags(t *testing.T) {
	cmd := newUnsetCommand()
	assert.NotNil(t, cmd.Flags().Lookup("scope"))
	assert.NotNil(t, cmd.Flags().Lookup("global"))
}

// ---------- Command execution tests ----------

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSetShowUnsetFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registries.json")

	out, err := runCommand(t, "--local-registries", path,
		"set", "https://packages.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "default registry set to https://packages.example.com")

	out, err = runCommand(t, "--local-registries", path,
		"set", "https://registry.acme.example", "--scope", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "registry for scope acme set to https://registry.acme.example")

	out, err = runCommand(t, "--local-registries", path, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_registry: https://packages.example.com")
	assert.Contains(t, out, "acme: https://registry.acme.example")

	out, err = runCommand(t, "--local-registries", path, "unset", "--scope", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "registry for scope acme removed")
}

func TestSigningCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registries.json")
	_, err := runCommand(t, "--local-registries", path,
		"set", "https://packages.example.com")
	require.NoError(t, err)

	out, err := runCommand(t, "--local-registries", path, "signing", "acme.widget")
	require.NoError(t, err)
	assert.Contains(t, out, "package: acme.widget")
	assert.Contains(t, out, "on_unsigned: prompt")
	assert.Contains(t, out, "include_default_trusted_root_certificates: true")
}

func TestValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registries.json")
	_, err := runCommand(t, "--local-registries", path,
		"set", "https://packages.example.com")
	require.NoError(t, err)

	out, err := runCommand(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid: version=1 default=true")
}

func TestSetWithoutPathFails(t *testing.T) {
	_, err := runCommand(t, "set", "https://packages.example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no registries document path configured")
}

// ---------- Exit code mapping ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			"invalid argument",
			errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("bad"),
			2,
		},
		{
			"not found",
			errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("missing"),
			3,
		},
		{
			"internal",
			errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("broken"),
			5,
		},
		{
			"plain error",
			assert.AnError,
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, exitCodeForError(tt.err))
		})
	}
}
