package launcher

import (
	"github.com/thoreinstein/agx/internal/resolve"
)

// translateOpenCode maps the effective profile onto the OpenCode CLI.
func translateOpenCode(eff *resolve.EffectiveProfile) (*LaunchSpec, error) {
	env := []string{
		envEntry("OPENCODE_BASE_URL", eff.BaseURL),
		envEntry("OPENCODE_API_KEY", eff.APIKey),
	}

	var args []string
	if eff.Model != "" {
		args = append(args, "--model", eff.Model)
	}
	return &LaunchSpec{Args: args, Env: env}, nil
}
