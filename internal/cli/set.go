package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"registry-config/internal/app"
)

type setOptions struct {
	Scope  string
	Global bool
}

func newSetCommand() *cobra.Command {
	opts := setOptions{}
	cmd := &cobra.Command{
		Use:   "set <url>",
		Short: "Set the default or a scoped registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd.Context(), cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "Scope to associate with the registry")
	cmd.Flags().BoolVar(&opts.Global, "global", false, "Write to the global registries document")
	return cmd
}

func runSet(ctx context.Context, cmd *cobra.Command, opts setOptions, url string) error {
	path, err := targetPath(opts.Global)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.SetRegistry(ctx, app.SetRegistryRequest{
		Path:  path,
		URL:   url,
		Scope: opts.Scope,
	})
	if err != nil {
		return err
	}
	if result.Scope != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "registry for scope %s set to %s\n", result.Scope, result.URL)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "default registry set to %s\n", result.URL)
	return nil
}

func targetPath(global bool) (string, error) {
	path := localRegistriesPath()
	if global {
		path = globalRegistriesPath()
	}
	if path == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no registries document path configured")
	}
	return path, nil
}
