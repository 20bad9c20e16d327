package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/agx/internal/doctor"
	"github.com/thoreinstein/agx/internal/errors"
)

var (
	doctorJSON    bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show all checks including passed ones")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose profile and agent configuration",
	Long: `Run diagnostic checks over the profile document, the AWS
credentials file, and the agent binaries on PATH.

All checks are structural; nothing talks to a provider.

Exit codes:
  0 - no errors (warnings allowed)
  2 - one or more checks failed`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	return runDoctorWithWriter(cmd.OutOrStdout(), doctor.Run(doctor.Options{}))
}

// runDoctorWithWriter allows injecting a writer and report for testing.
func runDoctorWithWriter(w io.Writer, report *doctor.Report) error {
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		outputDoctorText(w, report)
	}

	if !report.Healthy() {
		return errors.NewExitError(errors.New("doctor found problems"), errors.ExitSystem)
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	pass := color.New(color.FgGreen).SprintFunc()
	info := color.New(color.FgCyan).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	for _, r := range report.Results {
		if r.Status == doctor.SeverityPass && !doctorVerbose {
			continue
		}

		var marker string
		switch r.Status {
		case doctor.SeverityPass:
			marker = pass("ok")
		case doctor.SeverityInfo:
			marker = info("--")
		case doctor.SeverityWarning:
			marker = warn("warn")
		default:
			marker = fail("FAIL")
		}

		fmt.Fprintf(w, "%-6s %s: %s\n", marker, r.Name, r.Message)
		if r.FixHint != "" && r.Status >= doctor.SeverityWarning {
			fmt.Fprintf(w, "       %s\n", r.FixHint)
		}
	}

	s := report.Summary
	total := s.Passed + s.Info + s.Warnings + s.Errors
	fmt.Fprintf(w, "\n%d checks: %d passed, %d info, %d warnings, %d errors\n",
		total, s.Passed, s.Info, s.Warnings, s.Errors)
}
