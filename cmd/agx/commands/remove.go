package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/profile"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored profile",
	Long: `Delete the named profile from the document.

Deleting the active profile is allowed but clears the active marker;
a later 'agx run' without --profile then fails until another profile
is activated or environment fallback applies.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	return runRemoveWithWriter(cmd.OutOrStdout(), args[0])
}

// runRemoveWithWriter allows injecting a writer for testing.
func runRemoveWithWriter(w io.Writer, name string) error {
	reg := newRegistry()

	doc, err := reg.Store().Load()
	if err != nil {
		if errors.Is(err, profile.ErrConfigNotFound) {
			return errors.NewUserError(err, "Run: agx setup")
		}
		return errors.NewSystemError(err, "Run: agx doctor")
	}
	wasActive := doc.ActiveProfile == name

	if err := reg.Delete(name); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return errors.NewUserError(err, "Run 'agx list' to see stored profiles")
		}
		return errors.NewSystemError(err, "Run: agx doctor")
	}

	fmt.Fprintf(w, "Removed profile %q\n", name)
	if wasActive {
		fmt.Fprintf(w, "%sWarning:%s the active profile was removed; run 'agx use' to pick another\n",
			colorYellow, colorReset)
	}
	return nil
}
