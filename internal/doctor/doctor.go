package doctor

import (
	"github.com/thoreinstein/agx/internal/awscreds"
	"github.com/thoreinstein/agx/internal/profile"
)

// Options configures a doctor run.
type Options struct {
	// Store is the profile document to diagnose. Defaults to the
	// standard location.
	Store *profile.Store

	// Credentials is the AWS credentials file consulted for bedrock
	// named-profile entries. Defaults to the standard location.
	Credentials *awscreds.File

	// SkipAgents disables the PATH lookups, for hermetic tests.
	SkipAgents bool
}

// Run executes all diagnostic checks and returns the aggregated report.
func Run(opts Options) *Report {
	if opts.Store == nil {
		opts.Store = profile.NewStore()
	}
	if opts.Credentials == nil {
		opts.Credentials = awscreds.Default()
	}

	results := []CheckResult{checkConfigDir()}

	docResult, doc := checkDocument(opts.Store)
	results = append(results, docResult)

	if doc != nil {
		results = append(results, checkActiveProfile(doc))
		results = append(results, checkProfiles(doc)...)
		results = append(results, checkAWSCredentials(doc, opts.Credentials)...)
	}

	if !opts.SkipAgents {
		results = append(results, checkAgentBinaries()...)
	}

	return &Report{
		Results: results,
		Summary: summarize(results),
	}
}
