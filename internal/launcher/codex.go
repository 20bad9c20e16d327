package launcher

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/agx/internal/resolve"
)

// apiKeyEnvVar is the variable the generated codex config reads the
// gateway key from, so the key never lands on disk.
const apiKeyEnvVar = "AGX_CODEX_API_KEY"

// codexConfig is the subset of the Codex CLI's config.toml that agx
// generates to point it at the resolved gateway.
type codexConfig struct {
	Model          string                   `toml:"model,omitempty"`
	ModelProvider  string                   `toml:"model_provider"`
	ModelProviders map[string]codexProvider `toml:"model_providers"`
}

type codexProvider struct {
	Name    string `toml:"name"`
	BaseURL string `toml:"base_url"`
	EnvKey  string `toml:"env_key"`
	WireAPI string `toml:"wire_api"`
}

// translateCodex maps the effective profile onto the Codex CLI. Codex
// is configured through a TOML file in CODEX_HOME, so translation
// renders a one-shot config into a private temp directory and points
// CODEX_HOME at it, leaving the user's real ~/.codex untouched.
func translateCodex(eff *resolve.EffectiveProfile) (*LaunchSpec, error) {
	cfg := codexConfig{
		Model:         eff.Model,
		ModelProvider: "agx",
		ModelProviders: map[string]codexProvider{
			"agx": {
				Name:    "agx gateway",
				BaseURL: eff.BaseURL,
				EnvKey:  apiKeyEnvVar,
				WireAPI: "chat",
			},
		},
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling codex config")
	}

	dir, err := os.MkdirTemp("", "agx-codex-*")
	if err != nil {
		return nil, errors.Wrap(err, "creating codex home")
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), data, 0o600); err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing codex config")
	}

	env := []string{
		envEntry("CODEX_HOME", dir),
		envEntry(apiKeyEnvVar, eff.APIKey),
	}
	return &LaunchSpec{Env: env, TempDir: dir}, nil
}
