package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/agx/internal/paths"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/resolve"
)

func litellmEffective() *resolve.EffectiveProfile {
	return &resolve.EffectiveProfile{
		Name:     "litellm",
		Provider: profile.ProviderLiteLLM,
		BaseURL:  "https://litellm.internal:4000",
		APIKey:   "sk-gateway",
		Model:    "claude-sonnet-4",
		Timeout:  120,
	}
}

func bedrockEffective() *resolve.EffectiveProfile {
	return &resolve.EffectiveProfile{
		Name:               "bedrock",
		Provider:           profile.ProviderBedrock,
		BaseURL:            "https://bedrock-runtime.us-east-1.amazonaws.com",
		APIKey:             "AKIAEXAMPLE",
		AWSSecretAccessKey: "secret",
		AWSRegion:          "us-east-1",
		Timeout:            300,
	}
}

func TestBuild_UnknownAgent(t *testing.T) {
	_, err := Build("cursor", litellmEffective(), nil)
	if !errors.Is(err, ErrUnknownAgent) {
		t.Errorf("Build() = %v, want ErrUnknownAgent", err)
	}
}

func TestBuild_BedrockRejectedForGatewayOnlyAgents(t *testing.T) {
	for _, agent := range []string{paths.AgentGemini, paths.AgentCodex, paths.AgentOpenCode} {
		t.Run(agent, func(t *testing.T) {
			_, err := Build(agent, bedrockEffective(), nil)
			if !errors.Is(err, ErrAgentProviderUnsupported) {
				t.Errorf("Build(%s, bedrock) = %v, want ErrAgentProviderUnsupported", agent, err)
			}
		})
	}
}

func TestBuild_ClaudeLiteLLM(t *testing.T) {
	spec, err := Build(paths.AgentClaude, litellmEffective(), []string{"--continue"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if spec.Path != "claude" {
		t.Errorf("Path = %q, want claude", spec.Path)
	}
	for _, want := range []string{
		"ANTHROPIC_BASE_URL=https://litellm.internal:4000",
		"ANTHROPIC_API_KEY=sk-gateway",
		"ANTHROPIC_MODEL=claude-sonnet-4",
		"API_TIMEOUT_MS=120000",
	} {
		if !slices.Contains(spec.Env, want) {
			t.Errorf("Env missing %q in %v", want, spec.Env)
		}
	}
	if !slices.Contains(spec.Args, "--continue") {
		t.Errorf("passthrough args not appended: %v", spec.Args)
	}
}

func TestBuild_ClaudeBedrock(t *testing.T) {
	spec, err := Build(paths.AgentClaude, bedrockEffective(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, want := range []string{
		"CLAUDE_CODE_USE_BEDROCK=1",
		"AWS_ACCESS_KEY_ID=AKIAEXAMPLE",
		"AWS_SECRET_ACCESS_KEY=secret",
		"AWS_REGION=us-east-1",
	} {
		if !slices.Contains(spec.Env, want) {
			t.Errorf("Env missing %q in %v", want, spec.Env)
		}
	}
	for _, entry := range spec.Env {
		if strings.HasPrefix(entry, "ANTHROPIC_API_KEY=") {
			t.Error("bedrock launch must not set ANTHROPIC_API_KEY")
		}
	}
}

func TestBuild_CodexWritesConfig(t *testing.T) {
	spec, err := Build(paths.AgentCodex, litellmEffective(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var home string
	for _, entry := range spec.Env {
		if v, ok := strings.CutPrefix(entry, "CODEX_HOME="); ok {
			home = v
		}
	}
	if home == "" {
		t.Fatalf("CODEX_HOME not set in %v", spec.Env)
	}
	t.Cleanup(func() { os.RemoveAll(home) })

	data, err := os.ReadFile(filepath.Join(home, "config.toml"))
	if err != nil {
		t.Fatalf("reading generated config: %v", err)
	}

	var cfg codexConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	if cfg.ModelProviders["agx"].BaseURL != "https://litellm.internal:4000" {
		t.Errorf("provider base_url = %q", cfg.ModelProviders["agx"].BaseURL)
	}
	if strings.Contains(string(data), "sk-gateway") {
		t.Error("the API key must not be written to disk")
	}
	if !slices.Contains(spec.Env, "AGX_CODEX_API_KEY=sk-gateway") {
		t.Errorf("key env entry missing: %v", spec.Env)
	}
	if spec.TempDir != home {
		t.Errorf("TempDir = %q, want the generated CODEX_HOME %q", spec.TempDir, home)
	}
}

func TestLaunchSpec_CleanupRemovesTempDir(t *testing.T) {
	spec, err := Build(paths.AgentCodex, litellmEffective(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := os.Stat(spec.TempDir); err != nil {
		t.Fatalf("scratch dir missing before cleanup: %v", err)
	}

	if err := spec.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(spec.TempDir); !os.IsNotExist(err) {
		t.Errorf("scratch dir still present after cleanup: %v", err)
	}
}

func TestLaunchSpec_CleanupNoTempDir(t *testing.T) {
	spec, err := Build(paths.AgentClaude, litellmEffective(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if spec.TempDir != "" {
		t.Errorf("TempDir = %q, want none for claude", spec.TempDir)
	}
	if err := spec.Cleanup(); err != nil {
		t.Errorf("Cleanup() on a spec without a scratch dir: %v", err)
	}
}

func TestBuild_NativeTranslatesFlags(t *testing.T) {
	spec, err := Build(paths.AgentNative, bedrockEffective(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if spec.Path != "" {
		t.Errorf("native agent should run in-process, Path = %q", spec.Path)
	}
	for _, want := range []string{"--base-url", "--api-key", "--aws-region", "--timeout"} {
		if !slices.Contains(spec.Args, want) {
			t.Errorf("Args missing %q: %v", want, spec.Args)
		}
	}
}
