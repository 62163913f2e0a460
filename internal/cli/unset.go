package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"registry-config/internal/app"
)

type unsetOptions struct {
	Scope  string
	Global bool
}

func newUnsetCommand() *cobra.Command {
	opts := unsetOptions{}
	cmd := &cobra.Command{
		Use:   "unset",
		Short: "Remove the default or a scoped registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUnset(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "Scope whose registry should be removed")
	cmd.Flags().BoolVar(&opts.Global, "global", false, "Write to the global registries document")
	return cmd
}

func runUnset(ctx context.Context, cmd *cobra.Command, opts unsetOptions) error {
	path, err := targetPath(opts.Global)
	if err != nil {
		return err
	}
	service := newAppService()
	if err := service.UnsetRegistry(ctx, app.UnsetRegistryRequest{
		Path:  path,
		Scope: opts.Scope,
	}); err != nil {
		return err
	}
	if opts.Scope != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "registry for scope %s removed\n", opts.Scope)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "default registry removed")
	return nil
}
