package launcher

import (
	"github.com/thoreinstein/agx/internal/resolve"
)

// translateGemini maps the effective profile onto the Gemini CLI.
// Only gateway (litellm) profiles reach this point; bedrock is rejected
// by the capability table.
func translateGemini(eff *resolve.EffectiveProfile) (*LaunchSpec, error) {
	env := []string{
		envEntry("GOOGLE_GEMINI_BASE_URL", eff.BaseURL),
		envEntry("GEMINI_API_KEY", eff.APIKey),
	}

	var args []string
	if eff.Model != "" {
		args = append(args, "--model", eff.Model)
	}
	if eff.Debug {
		args = append(args, "--debug")
	}
	return &LaunchSpec{Args: args, Env: env}, nil
}
