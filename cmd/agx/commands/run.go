package commands

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/agx/internal/awscreds"
	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/launcher"
	"github.com/thoreinstein/agx/internal/paths"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/redact"
	"github.com/thoreinstein/agx/internal/resolve"
)

var (
	runProfile string
	runModel   string
	runBaseURL string
	runTimeout int
	runDebug   bool
	runDryRun  bool
)

func init() {
	runCmd.Flags().StringVar(&runProfile, "profile", "",
		"use this stored profile for one invocation without switching")
	runCmd.Flags().StringVar(&runModel, "model", "", "override the model")
	runCmd.Flags().StringVar(&runBaseURL, "base-url", "", "override the endpoint URL")
	runCmd.Flags().IntVar(&runTimeout, "timeout", 0, "override the timeout in seconds")
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "launch the agent with debug output")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false,
		"print the launch translation instead of executing")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [agent] [-- agent-args...]",
	Short: "Launch an agent against the resolved profile",
	Long: `Resolve the effective profile and launch an AI coding agent
against it.

Resolution layers, strongest first: flags given here, then the stored
active profile (or --profile), then LITELLM_*/BEDROCK_* environment
variables when nothing is stored. The result is validated before any
process starts; an incomplete profile names its missing fields.

The agent defaults to 'default_agent' from the settings file. Known
agents: ` + strings.Join(paths.Agents(), ", ") + `. Arguments after --
are passed to the agent untouched.

Examples:
  agx run claude
  agx run claude --profile personal -- --continue
  agx run gemini --model gemini-2.5-pro
  agx run native --dry-run`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	agent := ""
	if len(args) > 0 {
		agent = args[0]
		args = args[1:]
	}
	if agent == "" && appConfig != nil {
		agent = appConfig.DefaultAgent
	}

	ov := resolve.Overrides{
		Profile: runProfile,
		Model:   runModel,
		BaseURL: runBaseURL,
	}
	if cmd.Flags().Changed("timeout") {
		t := runTimeout
		ov.Timeout = &t
	}
	if cmd.Flags().Changed("debug") {
		d := runDebug
		ov.Debug = &d
	}

	spec, eff, err := buildLaunch(agent, ov, args)
	if err != nil {
		return err
	}
	defer func() {
		if cleanupErr := spec.Cleanup(); cleanupErr != nil {
			slog.Warn("removing scratch directory", "dir", spec.TempDir, "error", cleanupErr)
		}
	}()

	slog.Debug("resolved profile",
		"profile", eff.Name,
		"provider", eff.Provider,
		"agent", agent,
		"isActive", eff.IsActive)

	if runDryRun || spec.Path == "" {
		return printLaunch(cmd.OutOrStdout(), agent, spec, eff)
	}

	return execAgent(cmd, spec)
}

// buildLaunch resolves the effective profile and translates it for the
// agent, mapping each failure to a user-facing error.
func buildLaunch(agent string, ov resolve.Overrides, extraArgs []string) (*launcher.LaunchSpec, *resolve.EffectiveProfile, error) {
	doc, err := newRegistry().Store().Load()
	if err != nil && !errors.Is(err, profile.ErrConfigNotFound) {
		return nil, nil, errors.NewSystemError(err, "Run: agx doctor")
	}

	eff, err := resolve.New(newCredentials()).Resolve(ov, doc, resolve.EnvFromOS())
	if err != nil {
		var incomplete *resolve.IncompleteProfileError
		switch {
		case errors.Is(err, resolve.ErrNoActiveProfile):
			return nil, nil, errors.NewUserError(err, "Run 'agx use <name>' or 'agx setup'")
		case errors.Is(err, profile.ErrProfileNotFound):
			return nil, nil, errors.NewUserError(err, "Run 'agx list' to see stored profiles")
		case errors.As(err, &incomplete):
			return nil, nil, errors.NewUserError(err, "Fix the profile with: agx setup --force")
		case errors.Is(err, awscreds.ErrProfileNotFoundInCredentialsFile):
			return nil, nil, errors.NewUserError(err, "Check "+paths.AWSCredentialsPath())
		default:
			return nil, nil, errors.NewSystemError(err, "Run: agx doctor")
		}
	}

	spec, err := launcher.Build(agent, eff, extraArgs)
	if err != nil {
		switch {
		case errors.Is(err, launcher.ErrUnknownAgent):
			suggestion := "Known agents: " + strings.Join(paths.Agents(), ", ")
			return nil, nil, errors.NewUserError(err, suggestion)
		case errors.Is(err, launcher.ErrAgentProviderUnsupported):
			return nil, nil, errors.NewUserError(err, "Use 'claude' or 'native' with bedrock profiles")
		default:
			return nil, nil, errors.NewSystemError(err, "")
		}
	}
	return spec, eff, nil
}

// launchView is the printable form of a launch translation. Secret env
// values are masked.
type launchView struct {
	Agent   string   `json:"agent"`
	Profile string   `json:"profile"`
	Path    string   `json:"path,omitempty"`
	Args    []string `json:"args,omitempty"`
	Env     []string `json:"env,omitempty"`
}

// printLaunch renders the translation without executing. Used for
// --dry-run and for the in-process native agent, which has no binary.
func printLaunch(w io.Writer, agent string, spec *launcher.LaunchSpec, eff *resolve.EffectiveProfile) error {
	view := launchView{
		Agent:   agent,
		Profile: eff.Name,
		Path:    spec.Path,
		Args:    maskArgs(spec.Args),
	}
	for _, entry := range spec.Env {
		key, value, _ := strings.Cut(entry, "=")
		if redact.ShouldMask(key) || redact.ContainsTokenPrefix(value) {
			value = redact.MaskValue(value)
		}
		view.Env = append(view.Env, key+"="+value)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

// maskArgs masks the value following any flag that names a secret.
func maskArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if redact.ShouldMask(strings.TrimLeft(out[i], "-")) {
			out[i+1] = redact.MaskValue(out[i+1])
		}
	}
	return out
}

// execAgent runs the agent with the translated environment, passing
// the terminal through and propagating the agent's exit code.
func execAgent(cmd *cobra.Command, spec *launcher.LaunchSpec) error {
	path, err := exec.LookPath(spec.Path)
	if err != nil {
		return errors.NewUserError(
			errors.Wrapf(err, "agent binary %q not found", spec.Path),
			"Install the agent or run: agx doctor")
	}

	proc := exec.CommandContext(cmd.Context(), path, spec.Args...)
	proc.Env = append(os.Environ(), spec.Env...)
	proc.Stdin = os.Stdin
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr

	if err := proc.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errors.NewExitError(
				errors.Newf("%s exited with code %d", spec.Path, exitErr.ExitCode()),
				exitErr.ExitCode())
		}
		return errors.NewSystemError(err, "")
	}
	return nil
}
