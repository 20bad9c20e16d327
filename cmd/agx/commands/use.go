package commands

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/logging"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/redact"
)

func init() {
	rootCmd.AddCommand(useCmd)
}

var useCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Switch the active profile",
	Long: `Make the named profile the active one.

With no argument on an interactive terminal, presents a fuzzy picker
over the stored profiles. The switch is all-or-nothing: naming a
profile that does not exist leaves the stored document untouched.

Examples:
  agx use work
  agx use`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUse,
}

func runUse(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return runUseWithWriter(cmd.OutOrStdout(), name)
}

// runUseWithWriter allows injecting a writer for testing.
func runUseWithWriter(w io.Writer, name string) error {
	reg := newRegistry()

	if name == "" {
		picked, err := pickProfile(reg)
		if err != nil {
			return err
		}
		if picked == "" {
			return nil // aborted
		}
		name = picked
	}

	if err := reg.SwitchActive(name); err != nil {
		switch {
		case errors.Is(err, profile.ErrProfileNotFound):
			return errors.NewUserError(err, "Run 'agx list' to see stored profiles")
		case errors.Is(err, profile.ErrConfigNotFound):
			return errors.NewUserError(err, "Run: agx setup")
		default:
			return errors.NewSystemError(err, "Run: agx doctor")
		}
	}

	fmt.Fprintf(w, "Active profile is now %q\n", name)
	return nil
}

// pickProfile runs the interactive fuzzy picker. Returns "" when the
// user aborted.
func pickProfile(reg *profile.Registry) (string, error) {
	if !logging.IsTTY(os.Stdout) {
		return "", errors.NewUserError(
			errors.New("no profile name given"),
			"Pass a name, or run interactively: agx use <name>")
	}

	entries, err := reg.List()
	if err != nil {
		if errors.Is(err, profile.ErrConfigNotFound) {
			return "", errors.NewUserError(err, "Run: agx setup")
		}
		return "", errors.NewSystemError(err, "Run: agx doctor")
	}
	if len(entries) == 0 {
		return "", errors.NewUserError(
			errors.New("no profiles stored"), "Run: agx setup")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			marker := "  "
			if entries[i].Active {
				marker = "* "
			}
			return fmt.Sprintf("%s%s (%s)", marker, entries[i].Name, entries[i].Profile.Provider)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			e := entries[i]
			return fmt.Sprintf("Name: %s\nProvider: %s\nBase URL: %s\nAPI key: %s\nModel: %s\nTimeout: %ds",
				e.Name,
				e.Profile.Provider,
				e.Profile.BaseURL,
				redact.MaskValue(e.Profile.APIKey),
				e.Profile.Model,
				e.Profile.TimeoutOrDefault(),
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}

	return entries[idx].Name, nil
}
