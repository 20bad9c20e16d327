package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/redact"
	"github.com/thoreinstein/agx/pkg/fileutil"
)

var (
	exportOutput      string
	exportWithSecrets bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportWithSecrets, "with-secrets", false,
		"include raw API keys and secret access keys")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Export profiles as YAML",
	Long: `Export all stored profiles, or a single named one, as YAML.

Secrets are masked by default; a masked export cannot be imported
back as working credentials. Pass --with-secrets for a portable copy.

Examples:
  agx export
  agx export work --with-secrets -o work.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

// exportProfile mirrors ProviderProfile with YAML field names matching
// the persisted JSON document.
type exportProfile struct {
	Provider           string `yaml:"provider"`
	BaseURL            string `yaml:"baseUrl"`
	APIKey             string `yaml:"apiKey,omitempty"`
	AWSSecretAccessKey string `yaml:"awsSecretAccessKey,omitempty"`
	AWSRegion          string `yaml:"awsRegion,omitempty"`
	AWSProfile         string `yaml:"awsProfile,omitempty"`
	Model              string `yaml:"model,omitempty"`
	Timeout            *int   `yaml:"timeout,omitempty"`
	Debug              bool   `yaml:"debug,omitempty"`
}

type exportDoc struct {
	Version       int                      `yaml:"version"`
	ActiveProfile string                   `yaml:"activeProfile,omitempty"`
	Profiles      map[string]exportProfile `yaml:"profiles"`
}

func runExport(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return runExportWithWriter(cmd.OutOrStdout(), name)
}

// runExportWithWriter allows injecting a writer for testing.
func runExportWithWriter(w io.Writer, name string) error {
	doc, err := newRegistry().Store().Load()
	if err != nil {
		if errors.Is(err, profile.ErrConfigNotFound) {
			return errors.NewUserError(err, "Run: agx setup")
		}
		return errors.NewSystemError(err, "Run: agx doctor")
	}

	out := exportDoc{
		Version:       profile.SchemaVersion,
		ActiveProfile: doc.ActiveProfile,
		Profiles:      make(map[string]exportProfile),
	}

	if name != "" {
		p, ok := doc.Profiles[name]
		if !ok {
			return errors.NewUserError(
				errors.Wrapf(profile.ErrProfileNotFound, "%q", name),
				"Run 'agx list' to see stored profiles")
		}
		out.Profiles[name] = toExportProfile(p)
		out.ActiveProfile = ""
	} else {
		for n, p := range doc.Profiles {
			out.Profiles[n] = toExportProfile(p)
		}
	}

	if exportOutput != "" {
		// Raw credentials get the same permissions as the profile
		// document itself.
		var writeErr error
		if exportWithSecrets {
			writeErr = fileutil.AtomicWriteYAMLWithPerm(exportOutput, out, 0o600)
		} else {
			writeErr = fileutil.AtomicWriteYAML(exportOutput, out)
		}
		if writeErr != nil {
			return errors.NewSystemError(writeErr, "")
		}
		names := make([]string, 0, len(out.Profiles))
		for n := range out.Profiles {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Fprintf(w, "Exported %d profile(s) to %s\n", len(names), exportOutput)
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encoding YAML")
	}
	return enc.Close()
}

func toExportProfile(p profile.ProviderProfile) exportProfile {
	out := exportProfile{
		Provider:           p.Provider,
		BaseURL:            p.BaseURL,
		APIKey:             p.APIKey,
		AWSSecretAccessKey: p.AWSSecretAccessKey,
		AWSRegion:          p.AWSRegion,
		AWSProfile:         p.AWSProfile,
		Model:              p.Model,
		Timeout:            p.Timeout,
		Debug:              p.Debug,
	}
	if !exportWithSecrets {
		// The sentinel is not a secret and must survive a round trip.
		if out.APIKey != "" && out.APIKey != profile.AWSProfileSentinel {
			out.APIKey = redact.MaskValue(out.APIKey)
		}
		if out.AWSSecretAccessKey != "" {
			out.AWSSecretAccessKey = redact.MaskValue(out.AWSSecretAccessKey)
		}
	}
	return out
}
