package profile

// Provider kinds for the supported LLM backends.
const (
	// ProviderLiteLLM is a LiteLLM-compatible HTTP gateway.
	ProviderLiteLLM = "litellm"

	// ProviderBedrock is AWS Bedrock, authenticated with static keys
	// or a named AWS profile.
	ProviderBedrock = "bedrock"
)

// SchemaVersion is the current version of the persisted document.
// Version 1 documents (a single flat provider configuration) are
// migrated on load; see Store.Load.
const SchemaVersion = 2

// DefaultTimeout is the request timeout in seconds applied when a
// profile does not set one.
const DefaultTimeout = 300

// AWSProfileSentinel is the apiKey value that marks a bedrock profile
// as using named-profile authentication. The real access key is looked
// up in the AWS credentials file at resolution time.
const AWSProfileSentinel = "aws-profile"

// ProviderProfile is a single named provider configuration.
type ProviderProfile struct {
	// Provider is one of the Provider* kinds.
	Provider string `json:"provider"`

	// BaseURL points at the LiteLLM gateway or the regional Bedrock
	// runtime endpoint. Required for both providers.
	BaseURL string `json:"baseUrl"`

	// APIKey is the gateway key for litellm. For bedrock it is the AWS
	// access key id, or AWSProfileSentinel when the profile authenticates
	// through a named AWS profile instead of inline keys.
	APIKey string `json:"apiKey,omitempty"`

	// AWSSecretAccessKey pairs with APIKey for bedrock static-key auth.
	AWSSecretAccessKey string `json:"awsSecretAccessKey,omitempty"`

	// AWSRegion is required for bedrock.
	AWSRegion string `json:"awsRegion,omitempty"`

	// AWSProfile names a section of the AWS credentials file.
	// Mutually exclusive with static keys as an authentication mode.
	AWSProfile string `json:"awsProfile,omitempty"`

	// Model is the default model identifier. Empty means the
	// provider-level default applies.
	Model string `json:"model,omitempty"`

	// Timeout is the request timeout in seconds. Nil means
	// DefaultTimeout. A non-positive value is a validation failure,
	// never clamped.
	Timeout *int `json:"timeout,omitempty"`

	// Debug and Name are diagnostic/display metadata. They never
	// participate in authentication.
	Debug bool   `json:"debug,omitempty"`
	Name  string `json:"name,omitempty"`
}

// UsesNamedProfileAuth reports whether a bedrock profile authenticates
// through a named AWS profile. Named-profile auth is selected when
// AWSProfile is set and APIKey is absent or carries the sentinel; when
// both auth modes are fully populated, static keys win.
func (p ProviderProfile) UsesNamedProfileAuth() bool {
	if p.Provider != ProviderBedrock || p.AWSProfile == "" {
		return false
	}
	return p.APIKey == "" || p.APIKey == AWSProfileSentinel
}

// TimeoutOrDefault returns the configured timeout, or DefaultTimeout
// when none is set. It does not sanitize non-positive values; those are
// rejected by validation.
func (p ProviderProfile) TimeoutOrDefault() int {
	if p.Timeout == nil {
		return DefaultTimeout
	}
	return *p.Timeout
}

// MultiProviderConfig is the persisted multi-profile document.
type MultiProviderConfig struct {
	// Version is the schema tag. Readers reject documents with an
	// unrecognized version rather than misinterpreting fields.
	Version int `json:"version"`

	// ActiveProfile names the profile used when no override is given.
	// Empty means no active profile. If set, it references a key of
	// Profiles.
	ActiveProfile string `json:"activeProfile"`

	// Profiles maps profile name to configuration. Names are unique and
	// case-sensitive. Rename is modeled as add-new + delete-old.
	Profiles map[string]ProviderProfile `json:"profiles"`
}

// NewMultiProviderConfig returns an empty document at the current
// schema version.
func NewMultiProviderConfig() *MultiProviderConfig {
	return &MultiProviderConfig{
		Version:  SchemaVersion,
		Profiles: map[string]ProviderProfile{},
	}
}
