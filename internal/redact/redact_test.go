package redact

import (
	"testing"
)

func TestShouldMask(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"ANTHROPIC_API_KEY", true},
		{"awsSecretAccessKey", true},
		{"AUTH_TOKEN", true},
		{"baseUrl", false},
		{"model", false},
		{"AWS_REGION", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ShouldMask(tt.key); got != tt.want {
				t.Errorf("ShouldMask(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sk-verylongsecretkey1234", "****1234"},
		{"abcd", "********"},
		{"", "********"},
	}

	for _, tt := range tests {
		if got := MaskValue(tt.in); got != tt.want {
			t.Errorf("MaskValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskSecrets(t *testing.T) {
	env := map[string]string{
		"LITELLM_API_KEY":  "sk-gateway-1234",
		"LITELLM_BASE_URL": "https://litellm.internal:4000",
		"random":           "AKIAEXAMPLE1234",
	}

	masked := MaskSecrets(env)
	if masked["LITELLM_API_KEY"] != "****1234" {
		t.Errorf("api key not masked: %q", masked["LITELLM_API_KEY"])
	}
	if masked["LITELLM_BASE_URL"] != env["LITELLM_BASE_URL"] {
		t.Error("base url should not be masked")
	}
	if masked["random"] != "****1234" {
		t.Error("AKIA-prefixed value should be masked regardless of key")
	}
	if MaskSecrets(nil) != nil {
		t.Error("nil in, nil out")
	}
}
