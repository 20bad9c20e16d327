package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/redact"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	Long: `List all stored profiles with the active one marked.

API keys are always shown masked; use 'agx export --with-secrets' when
you need the raw values.

Examples:
  agx list
  agx list --json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	return runListWithWriter(cmd.OutOrStdout())
}

// listEntry is the JSON rendering of one stored profile.
type listEntry struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	BaseURL  string `json:"baseUrl"`
	APIKey   string `json:"apiKey"`
	Model    string `json:"model,omitempty"`
	Active   bool   `json:"active"`
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer) error {
	entries, err := newRegistry().List()
	if err != nil {
		if errors.Is(err, profile.ErrConfigNotFound) {
			if listJSON {
				fmt.Fprintln(w, "[]")
				return nil
			}
			fmt.Fprintln(w, "No profiles stored. Run: agx setup")
			return nil
		}
		return errors.NewSystemError(err, "Run: agx doctor")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	if listJSON {
		out := make([]listEntry, len(entries))
		for i, e := range entries {
			out[i] = listEntry{
				Name:     e.Name,
				Provider: e.Profile.Provider,
				BaseURL:  e.Profile.BaseURL,
				APIKey:   redact.MaskValue(e.Profile.APIKey),
				Model:    e.Profile.Model,
				Active:   e.Active,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No profiles stored. Run: agx setup")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tPROVIDER\tBASE URL\tMODEL")
	for _, e := range entries {
		marker := " "
		if e.Active {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n",
			marker, e.Name, e.Profile.Provider,
			truncate(e.Profile.BaseURL, 48), e.Profile.Model)
	}
	return tw.Flush()
}
