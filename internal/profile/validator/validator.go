// Package validator provides structural completeness checks for
// provider profiles.
//
// Validation answers one question: does this profile carry enough to
// authenticate against its provider? It never performs network I/O;
// live connectivity checking belongs to the doctor's callers.
package validator

import (
	"github.com/thoreinstein/agx/internal/profile"
)

// Field identifies a profile field named in a validation result.
type Field string

// Fields reported as missing or invalid.
const (
	FieldProvider           Field = "provider"
	FieldBaseURL            Field = "baseUrl"
	FieldAPIKey             Field = "apiKey"
	FieldAWSSecretAccessKey Field = "awsSecretAccessKey"
	FieldAWSRegion          Field = "awsRegion"
	FieldAWSProfile         Field = "awsProfile"
	FieldTimeout            Field = "timeout"
)

// Result is the outcome of validating one profile. An empty Missing
// list means the profile is complete.
type Result struct {
	Missing []Field
}

// Valid reports whether the profile passed validation.
func (r *Result) Valid() bool {
	return len(r.Missing) == 0
}

// Fields returns the missing fields as plain strings for reporting.
func (r *Result) Fields() []string {
	out := make([]string, len(r.Missing))
	for i, f := range r.Missing {
		out[i] = string(f)
	}
	return out
}

func (r *Result) add(f Field) {
	r.Missing = append(r.Missing, f)
}

// Validate checks a profile for structural completeness.
//
// litellm requires baseUrl and apiKey. bedrock requires baseUrl and
// awsRegion plus one satisfiable auth mode: a named AWS profile, or the
// apiKey/awsSecretAccessKey static pair. When neither mode is
// satisfiable the result names every field that would complete either
// mode, so the caller can report actionable guidance. A timeout, if
// set, must be positive; it is reported rather than clamped.
//
// The provider set is closed and small, so this is an exhaustive switch
// rather than polymorphic dispatch.
func Validate(p profile.ProviderProfile) *Result {
	res := &Result{}

	switch p.Provider {
	case profile.ProviderLiteLLM:
		if p.BaseURL == "" {
			res.add(FieldBaseURL)
		}
		if p.APIKey == "" {
			res.add(FieldAPIKey)
		}

	case profile.ProviderBedrock:
		if p.BaseURL == "" {
			res.add(FieldBaseURL)
		}
		if p.AWSRegion == "" {
			res.add(FieldAWSRegion)
		}
		if !bedrockAuthSatisfiable(p) {
			res.add(FieldAWSProfile)
			if staticKeyEmpty(p.APIKey) {
				res.add(FieldAPIKey)
			}
			if p.AWSSecretAccessKey == "" {
				res.add(FieldAWSSecretAccessKey)
			}
		}

	default:
		res.add(FieldProvider)
	}

	if p.Timeout != nil && *p.Timeout <= 0 {
		res.add(FieldTimeout)
	}

	return res
}

// bedrockAuthSatisfiable reports whether at least one bedrock auth mode
// is complete: a named AWS profile, or both static key fields. The
// sentinel apiKey value counts toward the named-profile mode, not the
// static pair.
func bedrockAuthSatisfiable(p profile.ProviderProfile) bool {
	if p.AWSProfile != "" {
		return true
	}
	return !staticKeyEmpty(p.APIKey) && p.AWSSecretAccessKey != ""
}

// staticKeyEmpty reports whether apiKey is unusable as a static access
// key id: empty, or the named-profile sentinel.
func staticKeyEmpty(apiKey string) bool {
	return apiKey == "" || apiKey == profile.AWSProfileSentinel
}
