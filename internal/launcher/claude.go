package launcher

import (
	"strconv"

	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/resolve"
)

// translateClaude maps the effective profile onto the Claude Code CLI.
//
// LiteLLM profiles point the Anthropic client at the gateway. Bedrock
// profiles switch the CLI into its native Bedrock mode and hand it the
// resolved static credentials.
func translateClaude(eff *resolve.EffectiveProfile) (*LaunchSpec, error) {
	env := []string{
		envEntry("API_TIMEOUT_MS", strconv.Itoa(eff.Timeout*1000)),
	}

	switch eff.Provider {
	case profile.ProviderBedrock:
		env = append(env,
			envEntry("CLAUDE_CODE_USE_BEDROCK", "1"),
			envEntry("ANTHROPIC_BEDROCK_BASE_URL", eff.BaseURL),
			envEntry("AWS_ACCESS_KEY_ID", eff.APIKey),
			envEntry("AWS_SECRET_ACCESS_KEY", eff.AWSSecretAccessKey),
			envEntry("AWS_REGION", eff.AWSRegion),
		)
	default:
		env = append(env,
			envEntry("ANTHROPIC_BASE_URL", eff.BaseURL),
			envEntry("ANTHROPIC_API_KEY", eff.APIKey),
		)
	}

	if eff.Model != "" {
		env = append(env, envEntry("ANTHROPIC_MODEL", eff.Model))
	}

	var args []string
	if eff.Debug {
		args = append(args, "--debug")
	}
	return &LaunchSpec{Args: args, Env: env}, nil
}
