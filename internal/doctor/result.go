// Package doctor provides diagnostic checks for agx configuration.
//
// Checks are structural only: they read the profile document, the AWS
// credentials file, and the PATH, but never talk to a provider.
package doctor

// Severity indicates the importance level of a check result.
type Severity int

const (
	// SeverityPass indicates the check passed without issues.
	SeverityPass Severity = iota

	// SeverityInfo indicates informational output, not a problem.
	SeverityInfo

	// SeverityWarning indicates a potential issue that doesn't prevent operation.
	SeverityWarning

	// SeverityError indicates a problem that prevents proper operation.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// CheckResult represents the outcome of a single diagnostic check.
type CheckResult struct {
	// Name is the identifier for this check.
	Name string `json:"name"`

	// Category groups related checks (e.g., "config", "profiles", "agents").
	Category string `json:"category"`

	// Status indicates the severity of the check result.
	Status Severity `json:"status"`

	// Message describes the check outcome.
	Message string `json:"message"`

	// Details contains additional context about the check result.
	// Secret values are masked before they land here.
	Details map[string]any `json:"details,omitempty"`

	// FixHint provides guidance on how to resolve the issue.
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary aggregates counts of check results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Report is the full outcome of a doctor run.
type Report struct {
	Results []CheckResult `json:"results"`
	Summary Summary       `json:"summary"`
}

// Healthy reports whether the run produced no errors.
func (r *Report) Healthy() bool {
	return r.Summary.Errors == 0
}

// summarize tallies results into a Summary.
func summarize(results []CheckResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case SeverityPass:
			s.Passed++
		case SeverityInfo:
			s.Info++
		case SeverityWarning:
			s.Warnings++
		case SeverityError:
			s.Errors++
		}
	}
	return s
}
