package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"registry-config/internal/app"
)

type signingReport struct {
	Package                               string `yaml:"package"`
	Registry                              string `yaml:"registry"`
	OnUnsigned                            string `yaml:"on_unsigned"`
	OnUntrustedCertificate                string `yaml:"on_untrusted_certificate"`
	TrustedRootCertificatesPath           string `yaml:"trusted_root_certificates_path,omitempty"`
	IncludeDefaultTrustedRootCertificates bool   `yaml:"include_default_trusted_root_certificates"`
	CertificateExpiration                 string `yaml:"certificate_expiration"`
	CertificateRevocation                 string `yaml:"certificate_revocation"`
}

func newSigningCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "signing <package-identity>",
		Short: "Resolve the effective signing policy for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSigning(cmd.Context(), cmd, args[0])
		},
	}
}

func runSigning(ctx context.Context, cmd *cobra.Command, pkg string) error {
	service := newAppService()
	result, err := service.ResolveSigning(ctx, app.ResolveSigningRequest{
		GlobalPath: globalRegistriesPath(),
		LocalPath:  localRegistriesPath(),
		Package:    pkg,
	})
	if err != nil {
		return err
	}
	report := signingReport{
		Package:                               result.Package,
		Registry:                              result.Registry.URL,
		OnUnsigned:                            string(result.Signing.OnUnsigned),
		OnUntrustedCertificate:                string(result.Signing.OnUntrustedCertificate),
		IncludeDefaultTrustedRootCertificates: result.Signing.IncludeDefaultTrustedRootCertificates,
		CertificateExpiration:                 string(result.Signing.ValidationChecks.CertificateExpiration),
		CertificateRevocation:                 string(result.Signing.ValidationChecks.CertificateRevocation),
	}
	if result.Signing.TrustedRootCertificatesPath != nil {
		report.TrustedRootCertificatesPath = *result.Signing.TrustedRootCertificatesPath
	}
	rendered, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(rendered))
	return nil
}
