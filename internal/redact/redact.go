// Package redact masks credentials in human-facing output.
//
// Profiles carry gateway keys and AWS secrets; anything that renders
// them (status tables, doctor details, log attributes) routes values
// through this package first.
package redact

import "strings"

// secretKeyPatterns contains substrings indicating a key likely holds
// sensitive data. Matched case-insensitively.
var secretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes contains known credential prefixes that indicate
// sensitive values regardless of key name.
var tokenPrefixes = []string{
	"sk-",  // OpenAI/Anthropic-style gateway keys
	"pk-",  // public-ish keys that still shouldn't be echoed
	"AKIA", // AWS access key id
	"ghp_", // GitHub personal access token
}

// ShouldMask reports whether a key name indicates a sensitive value.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether a value looks like a credential.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskValue masks a sensitive string. Values with 4 or fewer characters
// are fully masked; longer values keep their last 4 characters.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskSecrets returns a copy of env with sensitive values masked, by
// key pattern or value prefix.
func MaskSecrets(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}

	masked := make(map[string]string, len(env))
	for k, v := range env {
		if ShouldMask(k) || ContainsTokenPrefix(v) {
			masked[k] = MaskValue(v)
		} else {
			masked[k] = v
		}
	}
	return masked
}
