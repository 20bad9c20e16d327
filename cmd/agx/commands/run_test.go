package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/launcher"
	"github.com/thoreinstein/agx/internal/resolve"
)

func TestBuildLaunch_ActiveProfile(t *testing.T) {
	seedConfigDir(t)
	seedProfiles(t)

	spec, eff, err := buildLaunch("claude", resolve.Overrides{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Name != "work" || !eff.IsActive {
		t.Errorf("eff = %+v, want active work", eff)
	}
	if spec.Path != "claude" {
		t.Errorf("Path = %q, want claude", spec.Path)
	}

	var baseURL string
	for _, e := range spec.Env {
		if v, ok := strings.CutPrefix(e, "ANTHROPIC_BASE_URL="); ok {
			baseURL = v
		}
	}
	if baseURL != "https://llm.corp:4000" {
		t.Errorf("ANTHROPIC_BASE_URL = %q", baseURL)
	}
}

func TestBuildLaunch_ProfileOverrideNotActive(t *testing.T) {
	seedConfigDir(t)
	seedProfiles(t)

	_, eff, err := buildLaunch("claude", resolve.Overrides{Profile: "personal"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Name != "personal" || eff.IsActive {
		t.Errorf("eff = %+v, want inactive personal", eff)
	}
}

func TestBuildLaunch_NoBasis(t *testing.T) {
	seedConfigDir(t)

	_, _, err := buildLaunch("claude", resolve.Overrides{}, nil)
	if !errors.Is(err, resolve.ErrNoActiveProfile) {
		t.Fatalf("error = %v, want ErrNoActiveProfile", err)
	}
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitUser {
		t.Errorf("error not mapped to a user error: %v", err)
	}
}

func TestBuildLaunch_EnvFallback(t *testing.T) {
	seedConfigDir(t)
	t.Setenv("LITELLM_BASE_URL", "https://env.llm:4000")
	t.Setenv("LITELLM_API_KEY", "sk-env")

	_, eff, err := buildLaunch("claude", resolve.Overrides{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Name != resolve.EnvProfileName || eff.IsActive {
		t.Errorf("eff = %+v, want inactive env profile", eff)
	}
}

func TestBuildLaunch_UnknownAgent(t *testing.T) {
	seedConfigDir(t)
	seedProfiles(t)

	_, _, err := buildLaunch("emacs", resolve.Overrides{}, nil)
	if !errors.Is(err, launcher.ErrUnknownAgent) {
		t.Fatalf("error = %v, want ErrUnknownAgent", err)
	}
}

func TestBuildLaunch_IncompleteNamesFields(t *testing.T) {
	seedConfigDir(t)
	seedProfiles(t)

	bad := -1
	_, _, err := buildLaunch("claude", resolve.Overrides{Timeout: &bad}, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestPrintLaunch_MasksSecrets(t *testing.T) {
	spec := &launcher.LaunchSpec{
		Path: "claude",
		Env:  []string{"ANTHROPIC_BASE_URL=https://llm.corp:4000", "ANTHROPIC_API_KEY=sk-corp-key-1234"},
	}
	eff := &resolve.EffectiveProfile{Name: "work"}

	var buf bytes.Buffer
	if err := printLaunch(&buf, "claude", spec, eff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "sk-corp-key") {
		t.Errorf("secret leaked:\n%s", out)
	}
	if !strings.Contains(out, "https://llm.corp:4000") {
		t.Errorf("non-secret env masked:\n%s", out)
	}
}

func TestMaskArgs(t *testing.T) {
	in := []string{"--base-url", "https://x", "--api-key", "sk-secret-1234", "--model", "m"}
	out := maskArgs(in)

	if out[3] == "sk-secret-1234" {
		t.Error("api key arg not masked")
	}
	if out[1] != "https://x" || out[5] != "m" {
		t.Errorf("non-secret args changed: %v", out)
	}
	if in[3] != "sk-secret-1234" {
		t.Error("input slice mutated")
	}
}
