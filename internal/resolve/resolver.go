// Package resolve merges command-line overrides, the stored active
// profile, and environment variables into one effective configuration
// for a single invocation.
//
// Precedence, highest first: an explicit --profile flag names the base
// stored profile; otherwise the document's activeProfile; otherwise,
// only when there is no stored profile to fall back on, provider-scoped
// environment variables form a synthetic base. Field-level flag
// overrides are applied on top of whichever base won, and the result is
// validated before it is handed to the agent launcher.
package resolve

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/profile/validator"
)

// ErrNoActiveProfile indicates no base profile could be determined from
// flags, the stored document, or the environment.
var ErrNoActiveProfile = errors.New("no active profile")

// EnvProfileName is the synthetic profile name reported when resolution
// fell back to environment variables.
const EnvProfileName = "env"

// IncompleteProfileError reports a resolved profile that fails
// structural validation, carrying the exact missing fields.
type IncompleteProfileError struct {
	// Profile is the name of the base profile that was resolved.
	Profile string

	// Missing lists the fields that failed validation.
	Missing []validator.Field
}

// Error implements the error interface.
func (e *IncompleteProfileError) Error() string {
	fields := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		fields[i] = string(f)
	}
	return fmt.Sprintf("profile %q is incomplete: missing %s", e.Profile, strings.Join(fields, ", "))
}

// Overrides carries the command-line layer of resolution.
type Overrides struct {
	// Profile substitutes which stored profile is the base before
	// field-level overrides apply.
	Profile string

	// Field-level overrides, applied on top of the base profile.
	// Nil/empty means not supplied.
	Model   string
	BaseURL string
	Timeout *int
	Debug   *bool
}

// EffectiveProfile is the fully resolved, validated configuration for
// one invocation, consumed by the agent launcher.
type EffectiveProfile struct {
	// Name is the base profile's name, or EnvProfileName for the
	// env-fallback path.
	Name string `json:"name"`

	Provider string `json:"provider"`
	BaseURL  string `json:"baseUrl"`

	// APIKey is the gateway key (litellm) or AWS access key id (bedrock).
	// For named-profile auth it holds the resolved access key id, never
	// the sentinel.
	APIKey             string `json:"apiKey"`
	AWSSecretAccessKey string `json:"awsSecretAccessKey,omitempty"`
	AWSRegion          string `json:"awsRegion,omitempty"`

	Model   string `json:"model,omitempty"`
	Timeout int    `json:"timeout"`
	Debug   bool   `json:"debug,omitempty"`

	// IsActive reports whether the resolved profile is the document's
	// persisted active profile. A --profile override for one invocation
	// never mutates, and is never confused with, the persisted marker.
	IsActive bool `json:"isActive"`
}

// CredentialSource looks up static credentials for a named AWS profile.
// Satisfied by *awscreds.File.
type CredentialSource interface {
	LookupStaticCredentials(profileName string) (accessKeyID, secretAccessKey string, err error)
}

// Resolver computes effective profiles. It never mutates the stored
// document.
type Resolver struct {
	creds CredentialSource
}

// New creates a Resolver using the given credential source for bedrock
// named-profile auth.
func New(creds CredentialSource) *Resolver {
	return &Resolver{creds: creds}
}

// Resolve merges the three layers into one effective configuration.
// doc may be nil when the configuration file has never been written.
// env is a snapshot of the relevant environment (see EnvFromOS),
// injected so tests stay hermetic.
func (r *Resolver) Resolve(ov Overrides, doc *profile.MultiProviderConfig, env map[string]string) (*EffectiveProfile, error) {
	name, base, fromEnv, err := selectBase(ov, doc, env)
	if err != nil {
		return nil, err
	}

	applyOverrides(&base, ov)

	if res := validator.Validate(base); !res.Valid() {
		return nil, &IncompleteProfileError{Profile: name, Missing: res.Missing}
	}

	eff := &EffectiveProfile{
		Name:               name,
		Provider:           base.Provider,
		BaseURL:            base.BaseURL,
		APIKey:             base.APIKey,
		AWSSecretAccessKey: base.AWSSecretAccessKey,
		AWSRegion:          base.AWSRegion,
		Model:              base.Model,
		Timeout:            base.TimeoutOrDefault(),
		Debug:              base.Debug,
		IsActive:           doc != nil && !fromEnv && name == doc.ActiveProfile,
	}

	if base.UsesNamedProfileAuth() {
		accessKeyID, secretAccessKey, err := r.creds.LookupStaticCredentials(base.AWSProfile)
		if err != nil {
			return nil, err
		}
		eff.APIKey = accessKeyID
		eff.AWSSecretAccessKey = secretAccessKey
	}

	return eff, nil
}

// selectBase picks the base profile per the precedence order. fromEnv
// reports the environment-fallback path; a stored profile that happens
// to be named "env" is still a stored profile.
func selectBase(ov Overrides, doc *profile.MultiProviderConfig, env map[string]string) (string, profile.ProviderProfile, bool, error) {
	if ov.Profile != "" {
		if doc == nil {
			return "", profile.ProviderProfile{}, false, errors.Wrapf(profile.ErrProfileNotFound, "%q", ov.Profile)
		}
		p, ok := doc.Profiles[ov.Profile]
		if !ok {
			return "", profile.ProviderProfile{}, false, errors.Wrapf(profile.ErrProfileNotFound, "%q", ov.Profile)
		}
		return ov.Profile, p, false, nil
	}

	if doc != nil && doc.ActiveProfile != "" {
		p, ok := doc.Profiles[doc.ActiveProfile]
		if !ok {
			// The invariant says this cannot happen; a hand-edited
			// document can still get here.
			return "", profile.ProviderProfile{}, false, errors.Wrapf(profile.ErrProfileNotFound,
				"active profile %q", doc.ActiveProfile)
		}
		return doc.ActiveProfile, p, false, nil
	}

	// Never-configured fallback: build a synthetic profile from
	// provider-scoped environment variables.
	if p, ok := profileFromEnv(env); ok {
		return EnvProfileName, p, true, nil
	}

	return "", profile.ProviderProfile{}, false, ErrNoActiveProfile
}

// applyOverrides layers field-level flag overrides onto the base.
func applyOverrides(p *profile.ProviderProfile, ov Overrides) {
	if ov.Model != "" {
		p.Model = ov.Model
	}
	if ov.BaseURL != "" {
		p.BaseURL = ov.BaseURL
	}
	if ov.Timeout != nil {
		p.Timeout = ov.Timeout
	}
	if ov.Debug != nil {
		p.Debug = *ov.Debug
	}
}
