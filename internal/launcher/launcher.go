// Package launcher translates an effective profile into the
// environment and arguments of a concrete AI coding agent.
//
// Each agent is described by a small capability struct; the shared
// build routine is parameterized by it rather than dispatching through
// a type hierarchy. Translation is the boundary of this package:
// spawning and supervising the agent process belongs to the caller.
package launcher

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/agx/internal/paths"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/resolve"
)

// Sentinel errors for launch translation.
var (
	// ErrUnknownAgent indicates the agent name is not recognized.
	ErrUnknownAgent = errors.New("unknown agent")

	// ErrAgentProviderUnsupported indicates the agent cannot speak the
	// resolved provider's protocol (e.g. gemini against raw Bedrock).
	ErrAgentProviderUnsupported = errors.New("agent does not support provider")
)

// LaunchSpec is everything the caller needs to exec an agent.
type LaunchSpec struct {
	// Path is the executable looked up on PATH. Empty for the built-in
	// native agent, which runs in-process.
	Path string

	// Args are the agent's command-line arguments.
	Args []string

	// Env holds KEY=VALUE entries appended to the parent environment.
	Env []string

	// TempDir is a scratch directory the translation rendered config
	// into, consumed by the agent via Env. Callers call Cleanup once
	// the agent has exited.
	TempDir string
}

// Cleanup removes the scratch directory, if the translation made one.
func (s *LaunchSpec) Cleanup() error {
	if s.TempDir == "" {
		return nil
	}
	return os.RemoveAll(s.TempDir)
}

// translateFunc produces the agent's launch spec; Build fills in Path
// and passthrough arguments.
type translateFunc func(eff *resolve.EffectiveProfile) (*LaunchSpec, error)

// capability describes one agent target.
type capability struct {
	binary          string
	supportsBedrock bool
	translate       translateFunc
}

// agents is the closed set of launch targets.
var agents = map[string]capability{
	paths.AgentClaude: {
		binary:          paths.AgentBinary(paths.AgentClaude),
		supportsBedrock: true,
		translate:       translateClaude,
	},
	paths.AgentGemini: {
		binary:    paths.AgentBinary(paths.AgentGemini),
		translate: translateGemini,
	},
	paths.AgentCodex: {
		binary:    paths.AgentBinary(paths.AgentCodex),
		translate: translateCodex,
	},
	paths.AgentOpenCode: {
		binary:    paths.AgentBinary(paths.AgentOpenCode),
		translate: translateOpenCode,
	},
	paths.AgentNative: {
		supportsBedrock: true,
		translate:       translateNative,
	},
}

// Build translates the effective profile for the named agent.
// extraArgs are passed through to the agent untouched, after the
// translated arguments.
func Build(agent string, eff *resolve.EffectiveProfile, extraArgs []string) (*LaunchSpec, error) {
	target, ok := agents[agent]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAgent, "%q", agent)
	}

	if eff.Provider == profile.ProviderBedrock && !target.supportsBedrock {
		return nil, errors.Wrapf(ErrAgentProviderUnsupported, "%s cannot authenticate against bedrock", agent)
	}

	spec, err := target.translate(eff)
	if err != nil {
		return nil, err
	}

	spec.Path = target.binary
	spec.Args = append(spec.Args, extraArgs...)
	return spec, nil
}

// envEntry formats one KEY=VALUE environment entry.
func envEntry(key, value string) string {
	return fmt.Sprintf("%s=%s", key, value)
}
