package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/profile/validator"
	"github.com/thoreinstein/agx/internal/redact"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show profile overview",
	Long: `Show every stored profile with its validation state and the
active marker.

Unlike 'agx list' this runs credential validation per profile, so an
incomplete profile is visible before it fails an 'agx run'.

Examples:
  agx status
  agx status --json`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return runStatusWithWriter(cmd.OutOrStdout())
}

// profileStatus is one profile's resolved view.
type profileStatus struct {
	Name     string   `json:"name"`
	Provider string   `json:"provider"`
	BaseURL  string   `json:"baseUrl"`
	APIKey   string   `json:"apiKey"`
	Model    string   `json:"model,omitempty"`
	Timeout  int      `json:"timeout"`
	IsActive bool     `json:"isActive"`
	Valid    bool     `json:"valid"`
	Missing  []string `json:"missing,omitempty"`
}

type statusOutput struct {
	ActiveProfile string          `json:"activeProfile"`
	Profiles      []profileStatus `json:"profiles"`
}

// runStatusWithWriter allows injecting a writer for testing.
func runStatusWithWriter(w io.Writer) error {
	doc, err := newRegistry().Store().Load()
	if err != nil {
		if errors.Is(err, profile.ErrConfigNotFound) {
			fmt.Fprintln(w, "No profiles stored. Run: agx setup")
			return nil
		}
		return errors.NewSystemError(err, "Run: agx doctor")
	}

	names := make([]string, 0, len(doc.Profiles))
	for name := range doc.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	out := statusOutput{ActiveProfile: doc.ActiveProfile}
	for _, name := range names {
		p := doc.Profiles[name]
		res := validator.Validate(p)
		out.Profiles = append(out.Profiles, profileStatus{
			Name:     name,
			Provider: p.Provider,
			BaseURL:  p.BaseURL,
			APIKey:   redact.MaskValue(p.APIKey),
			Model:    p.Model,
			Timeout:  p.TimeoutOrDefault(),
			IsActive: name == doc.ActiveProfile,
			Valid:    res.Valid(),
			Missing:  res.Fields(),
		})
	}

	if statusJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if out.ActiveProfile == "" {
		fmt.Fprintf(w, "Active profile: %s(none)%s\n", colorGray, colorReset)
	} else {
		fmt.Fprintf(w, "Active profile: %s%s%s\n", colorCyan+colorBold, out.ActiveProfile, colorReset)
	}

	for _, p := range out.Profiles {
		marker := " "
		if p.IsActive {
			marker = "*"
		}
		fmt.Fprintf(w, "\n%s %s%s%s (%s)\n", marker, colorBold, p.Name, colorReset, p.Provider)
		fmt.Fprintf(w, "    Base URL: %s\n", p.BaseURL)
		fmt.Fprintf(w, "    API key:  %s\n", p.APIKey)
		if p.Model != "" {
			fmt.Fprintf(w, "    Model:    %s\n", p.Model)
		}
		fmt.Fprintf(w, "    Timeout:  %ds\n", p.Timeout)
		if p.Valid {
			fmt.Fprintf(w, "    %svalid%s\n", colorGreen, colorReset)
		} else {
			fmt.Fprintf(w, "    %sincomplete:%s missing", colorYellow, colorReset)
			for _, m := range p.Missing {
				fmt.Fprintf(w, " %s", m)
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}
