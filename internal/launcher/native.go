package launcher

import (
	"strconv"

	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/resolve"
)

// translateNative renders the effective profile as flags for the
// built-in native agent. The native agent runs in-process (LaunchSpec
// Path is empty); the run command hands these flags to it directly.
func translateNative(eff *resolve.EffectiveProfile) (*LaunchSpec, error) {
	args := []string{
		"--base-url", eff.BaseURL,
		"--api-key", eff.APIKey,
		"--timeout", strconv.Itoa(eff.Timeout),
	}
	if eff.Provider == profile.ProviderBedrock {
		args = append(args,
			"--aws-secret-access-key", eff.AWSSecretAccessKey,
			"--aws-region", eff.AWSRegion,
		)
	}
	if eff.Model != "" {
		args = append(args, "--model", eff.Model)
	}
	if eff.Debug {
		args = append(args, "--debug")
	}
	return &LaunchSpec{Args: args}, nil
}
