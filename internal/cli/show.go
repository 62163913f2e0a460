package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"registry-config/internal/app"
	"registry-config/internal/types"
)

type showReport struct {
	Version          int               `yaml:"version"`
	DefaultRegistry  string            `yaml:"default_registry,omitempty"`
	ScopedRegistries map[string]string `yaml:"scoped_registries,omitempty"`
	Authentication   map[string]string `yaml:"authentication,omitempty"`
	SecurityDefined  bool              `yaml:"security_defined"`
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged registry configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd.Context(), cmd)
		},
	}
}

func runShow(ctx context.Context, cmd *cobra.Command) error {
	service := newAppService()
	result, err := service.Show(ctx, app.ShowRequest{
		GlobalPath: globalRegistriesPath(),
		LocalPath:  localRegistriesPath(),
	})
	if err != nil {
		return err
	}
	rendered, err := yaml.Marshal(buildShowReport(result.Configuration))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(rendered))
	return nil
}

func buildShowReport(cfg types.Configuration) showReport {
	report := showReport{
		Version:         cfg.Version,
		SecurityDefined: cfg.Security != nil,
	}
	if cfg.DefaultRegistry != nil {
		report.DefaultRegistry = cfg.DefaultRegistry.URL
	}
	if len(cfg.ScopedRegistries) > 0 {
		report.ScopedRegistries = map[string]string{}
		for scope, registry := range cfg.ScopedRegistries {
			report.ScopedRegistries[scope.String()] = registry.URL
		}
	}
	if len(cfg.RegistryAuthentication) > 0 {
		report.Authentication = map[string]string{}
		for host, auth := range cfg.RegistryAuthentication {
			report.Authentication[host] = string(auth.Type)
		}
	}
	return report
}
