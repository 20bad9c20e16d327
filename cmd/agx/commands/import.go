package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/profile/validator"
	"github.com/thoreinstein/agx/pkg/fileutil"
)

var importForce bool

func init() {
	importCmd.Flags().BoolVar(&importForce, "force", false,
		"replace existing profiles with the same names")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import profiles from a YAML export",
	Long: `Import profiles from a file produced by 'agx export'.

Every imported profile is validated first; one invalid entry rejects
the whole file and nothing is written. Exports made without
--with-secrets carry masked keys and are refused.

Examples:
  agx import work.yaml
  agx import team-profiles.yaml --force`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	return runImportWithWriter(cmd.OutOrStdout(), args[0])
}

// runImportWithWriter allows injecting a writer for testing.
func runImportWithWriter(w io.Writer, path string) error {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	var in exportDoc
	if err := yaml.Unmarshal(data, &in); err != nil {
		return errors.NewUserError(errors.Wrap(err, "parsing import file"), "")
	}
	if len(in.Profiles) == 0 {
		return errors.NewUserError(errors.New("import file has no profiles"), "")
	}

	names := make([]string, 0, len(in.Profiles))
	for name := range in.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	// Validate everything before the first write.
	incoming := make(map[string]profile.ProviderProfile, len(in.Profiles))
	for _, name := range names {
		e := in.Profiles[name]
		if maskedSecret(e.APIKey) || maskedSecret(e.AWSSecretAccessKey) {
			err := errors.Newf("profile %q carries masked secrets", name)
			return errors.NewUserError(err, "Re-export with: agx export --with-secrets")
		}

		p := profile.ProviderProfile{
			Provider:           e.Provider,
			BaseURL:            e.BaseURL,
			APIKey:             e.APIKey,
			AWSSecretAccessKey: e.AWSSecretAccessKey,
			AWSRegion:          e.AWSRegion,
			AWSProfile:         e.AWSProfile,
			Model:              e.Model,
			Timeout:            e.Timeout,
			Debug:              e.Debug,
		}
		if res := validator.Validate(p); !res.Valid() {
			err := errors.Newf("profile %q is incomplete: missing %s",
				name, strings.Join(res.Fields(), ", "))
			return errors.NewUserError(err, "")
		}
		incoming[name] = p
	}

	reg := newRegistry()
	for _, name := range names {
		if importForce {
			if err := reg.Delete(name); err != nil &&
				!errors.Is(err, profile.ErrProfileNotFound) &&
				!errors.Is(err, profile.ErrConfigNotFound) {
				return errors.NewSystemError(err, "")
			}
		}
		if err := reg.Add(name, incoming[name]); err != nil {
			if errors.Is(err, profile.ErrDuplicateProfile) {
				return errors.NewUserError(err, "Use --force to replace existing profiles")
			}
			return errors.NewSystemError(err, "Run: agx doctor")
		}
	}

	fmt.Fprintf(w, "Imported %d profile(s): %s\n", len(names), strings.Join(names, ", "))
	return nil
}

// maskedSecret reports whether a value looks like redacted output.
func maskedSecret(v string) bool {
	return strings.HasPrefix(v, "****")
}
