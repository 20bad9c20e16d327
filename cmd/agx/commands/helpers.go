package commands

import (
	"github.com/thoreinstein/agx/internal/awscreds"
	"github.com/thoreinstein/agx/internal/profile"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// newRegistry builds a registry over the standard store location. The
// --config-dir flag has already been folded into the environment by the
// time any RunE executes.
func newRegistry() *profile.Registry {
	return profile.NewRegistry(profile.NewStore())
}

// newCredentials returns the AWS credentials file at its standard
// location, honoring AWS_SHARED_CREDENTIALS_FILE.
func newCredentials() *awscreds.File {
	return awscreds.Default()
}
