package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"registry-config/internal/app"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate a registries document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, args[0])
		},
	}
}

func runValidate(ctx context.Context, cmd *cobra.Command, path string) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{Path: path})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"valid: version=%d default=%t scoped=%d authentication=%d security=%t\n",
		result.Version, result.HasDefault, result.ScopedRegistries,
		result.Authentication, result.HasSecurity)
	return nil
}
