package resolve

import (
	"os"

	"github.com/thoreinstein/agx/internal/profile"
)

// Environment variables consumed by the fallback resolution path.
// They are read only when no stored profile can serve as a base.
const (
	EnvLiteLLMBaseURL = "LITELLM_BASE_URL"
	EnvLiteLLMAPIKey  = "LITELLM_API_KEY"
	EnvLiteLLMModel   = "LITELLM_MODEL"

	EnvBedrockBaseURL = "BEDROCK_BASE_URL"
	EnvBedrockModel   = "BEDROCK_MODEL"

	EnvAWSAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvAWSRegion          = "AWS_REGION"
	EnvAWSProfile         = "AWS_PROFILE"
)

// envVars lists every variable the resolver reads, in one place so
// EnvFromOS and the doctor agree.
var envVars = []string{
	EnvLiteLLMBaseURL,
	EnvLiteLLMAPIKey,
	EnvLiteLLMModel,
	EnvBedrockBaseURL,
	EnvBedrockModel,
	EnvAWSAccessKeyID,
	EnvAWSSecretAccessKey,
	EnvAWSRegion,
	EnvAWSProfile,
}

// EnvFromOS snapshots the process environment variables relevant to
// fallback resolution. Unset variables are omitted from the map.
func EnvFromOS() map[string]string {
	env := make(map[string]string, len(envVars))
	for _, key := range envVars {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			env[key] = v
		}
	}
	return env
}

// profileFromEnv builds a synthetic base profile from provider-scoped
// environment variables. LiteLLM variables are tried first; bedrock is
// selected when BEDROCK_BASE_URL is present. Returns false when neither
// provider has any footprint in the environment.
func profileFromEnv(env map[string]string) (profile.ProviderProfile, bool) {
	if env[EnvLiteLLMBaseURL] != "" || env[EnvLiteLLMAPIKey] != "" {
		return profile.ProviderProfile{
			Provider: profile.ProviderLiteLLM,
			BaseURL:  env[EnvLiteLLMBaseURL],
			APIKey:   env[EnvLiteLLMAPIKey],
			Model:    env[EnvLiteLLMModel],
		}, true
	}

	if env[EnvBedrockBaseURL] != "" {
		p := profile.ProviderProfile{
			Provider:           profile.ProviderBedrock,
			BaseURL:            env[EnvBedrockBaseURL],
			APIKey:             env[EnvAWSAccessKeyID],
			AWSSecretAccessKey: env[EnvAWSSecretAccessKey],
			AWSRegion:          env[EnvAWSRegion],
			AWSProfile:         env[EnvAWSProfile],
			Model:              env[EnvBedrockModel],
		}
		// A profile name with no inline keys selects named-profile auth.
		if p.APIKey == "" && p.AWSProfile != "" {
			p.APIKey = profile.AWSProfileSentinel
		}
		return p, true
	}

	return profile.ProviderProfile{}, false
}
