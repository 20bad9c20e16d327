package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the application name used for config directory naming.
const AppName = "agx"

// ConfigDirEnv overrides the agx configuration directory when set.
// Concurrent test runs and CI jobs point this at distinct directories
// to isolate themselves from the user's real configuration.
const ConfigDirEnv = "AGX_CONFIG_DIR"

// Agent identifiers for supported AI coding agents.
const (
	AgentClaude   = "claude"
	AgentGemini   = "gemini"
	AgentCodex    = "codex"
	AgentOpenCode = "opencode"
	AgentNative   = "native"
)

// agentHomeDirs maps agent names to their config directories,
// relative to the user's home directory. The native agent keeps
// no state of its own.
var agentHomeDirs = map[string]string{
	AgentClaude:   ".claude",
	AgentGemini:   ".gemini",
	AgentCodex:    ".codex",
	AgentOpenCode: ".config/opencode",
}

// agentBinaries maps agent names to the executable looked up on PATH.
var agentBinaries = map[string]string{
	AgentClaude:   "claude",
	AgentGemini:   "gemini",
	AgentCodex:    "codex",
	AgentOpenCode: "opencode",
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrUnknownAgent indicates the agent name is not recognized.
	ErrUnknownAgent = errors.New("unknown agent")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string if it
// cannot be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigDir returns the agx configuration directory.
// The AGX_CONFIG_DIR environment variable takes precedence; otherwise
// the XDG config home is used (~/.config/agx on Linux).
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ProfilesPath returns the path of the persisted multi-provider profile document.
func ProfilesPath() string {
	return filepath.Join(ConfigDir(), "profiles.json")
}

// SettingsPath returns the path of the agx application settings file.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// AWSCredentialsPath returns the path of the AWS shared credentials file.
// The AWS_SHARED_CREDENTIALS_FILE environment variable takes precedence.
func AWSCredentialsPath() string {
	if p := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); p != "" {
		return p
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".aws", "credentials")
}

// ValidAgent returns true if the agent name is recognized.
func ValidAgent(agent string) bool {
	if agent == AgentNative {
		return true
	}
	_, ok := agentHomeDirs[agent]
	return ok
}

// Agents returns a slice of all supported agent identifiers.
func Agents() []string {
	return []string{
		AgentClaude,
		AgentGemini,
		AgentCodex,
		AgentOpenCode,
		AgentNative,
	}
}

// AgentHomeDir returns the config directory for an agent.
//
// Agent paths:
//   - claude: ~/.claude/
//   - gemini: ~/.gemini/
//   - codex: ~/.codex/
//   - opencode: ~/.config/opencode/
//
// Returns an empty string for unknown agents or the native agent.
func AgentHomeDir(agent string) string {
	relPath, ok := agentHomeDirs[agent]
	if !ok {
		return ""
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, relPath)
}

// AgentBinary returns the executable name looked up on PATH for an agent.
// Returns an empty string for the native agent, which runs in-process.
func AgentBinary(agent string) string {
	return agentBinaries[agent]
}
