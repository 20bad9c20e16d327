package paths

import (
	"path/filepath"
	"testing"
)

func TestConfigDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	if got := ConfigDir(); got != dir {
		t.Errorf("ConfigDir() = %q, want %q", got, dir)
	}
	if got := ProfilesPath(); got != filepath.Join(dir, "profiles.json") {
		t.Errorf("ProfilesPath() = %q", got)
	}
	if got := SettingsPath(); got != filepath.Join(dir, "config.yaml") {
		t.Errorf("SettingsPath() = %q", got)
	}
}

func TestConfigDir_Default(t *testing.T) {
	t.Setenv(ConfigDirEnv, "")

	got := ConfigDir()
	if got == "" {
		t.Fatal("ConfigDir() should not be empty")
	}
	if filepath.Base(got) != AppName {
		t.Errorf("ConfigDir() = %q, want trailing %q component", got, AppName)
	}
}

func TestAWSCredentialsPath_EnvOverride(t *testing.T) {
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/tmp/creds")

	if got := AWSCredentialsPath(); got != "/tmp/creds" {
		t.Errorf("AWSCredentialsPath() = %q, want /tmp/creds", got)
	}
}

func TestValidAgent(t *testing.T) {
	tests := []struct {
		agent string
		want  bool
	}{
		{AgentClaude, true},
		{AgentGemini, true},
		{AgentCodex, true},
		{AgentOpenCode, true},
		{AgentNative, true},
		{"cursor", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.agent, func(t *testing.T) {
			if got := ValidAgent(tt.agent); got != tt.want {
				t.Errorf("ValidAgent(%q) = %v, want %v", tt.agent, got, tt.want)
			}
		})
	}
}

func TestAgentHomeDir(t *testing.T) {
	if dir := AgentHomeDir(AgentClaude); dir == "" {
		t.Error("expected non-empty dir for claude")
	} else if filepath.Base(dir) != ".claude" {
		t.Errorf("claude dir = %q, want trailing .claude", dir)
	}

	if dir := AgentHomeDir(AgentNative); dir != "" {
		t.Errorf("native agent should have no home dir, got %q", dir)
	}
	if dir := AgentHomeDir("bogus"); dir != "" {
		t.Errorf("unknown agent should have no home dir, got %q", dir)
	}
}

func TestAgentBinary(t *testing.T) {
	if got := AgentBinary(AgentOpenCode); got != "opencode" {
		t.Errorf("AgentBinary(opencode) = %q", got)
	}
	if got := AgentBinary(AgentNative); got != "" {
		t.Errorf("AgentBinary(native) = %q, want empty", got)
	}
}
