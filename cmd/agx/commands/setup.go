package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/agx/internal/errors"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/profile/validator"
)

var (
	setupName               string
	setupProvider           string
	setupBaseURL            string
	setupAPIKey             string
	setupAWSSecretAccessKey string
	setupAWSRegion          string
	setupAWSProfile         string
	setupModel              string
	setupTimeout            int
	setupDebug              bool
	setupActivate           bool
	setupForce              bool
)

func init() {
	setupCmd.Flags().StringVar(&setupName, "name", "", "profile name")
	setupCmd.Flags().StringVar(&setupProvider, "provider", "",
		"provider kind: litellm, bedrock")
	setupCmd.Flags().StringVar(&setupBaseURL, "base-url", "", "provider endpoint URL")
	setupCmd.Flags().StringVar(&setupAPIKey, "api-key", "",
		"gateway API key (litellm) or AWS access key ID (bedrock)")
	setupCmd.Flags().StringVar(&setupAWSSecretAccessKey, "aws-secret-access-key", "",
		"AWS secret access key (bedrock static credentials)")
	setupCmd.Flags().StringVar(&setupAWSRegion, "aws-region", "", "AWS region (bedrock)")
	setupCmd.Flags().StringVar(&setupAWSProfile, "aws-profile", "",
		"named AWS profile from the shared credentials file (bedrock)")
	setupCmd.Flags().StringVar(&setupModel, "model", "", "default model identifier")
	setupCmd.Flags().IntVar(&setupTimeout, "timeout", 0,
		fmt.Sprintf("request timeout in seconds (default %d)", profile.DefaultTimeout))
	setupCmd.Flags().BoolVar(&setupDebug, "debug", false, "launch agents with debug output")
	setupCmd.Flags().BoolVar(&setupActivate, "activate", false,
		"make this the active profile")
	setupCmd.Flags().BoolVar(&setupForce, "force", false,
		"replace an existing profile with the same name")
	_ = setupCmd.MarkFlagRequired("name")
	_ = setupCmd.MarkFlagRequired("provider")
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create a provider profile",
	Long: `Create a named provider profile from flags.

The first successful setup creates the profile document. Profiles are
validated before anything is written; an incomplete profile is rejected
with the exact missing fields named.

A bedrock profile authenticates either with static credentials
(--api-key holds the access key ID, plus --aws-secret-access-key) or by
naming a profile from the AWS shared credentials file (--aws-profile).

Examples:
  # LiteLLM gateway profile, made active immediately
  agx setup --name work --provider litellm \
    --base-url https://llm.corp:4000 --api-key sk-corp... --activate

  # Bedrock via a named AWS profile
  agx setup --name bedrock-dev --provider bedrock \
    --base-url https://bedrock-runtime.us-east-1.amazonaws.com \
    --aws-profile dev --aws-region us-east-1`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, _ []string) error {
	return runSetupWithWriter(cmd.OutOrStdout(), cmd.Flags().Changed("timeout"))
}

// runSetupWithWriter allows injecting a writer for testing.
func runSetupWithWriter(w io.Writer, timeoutSet bool) error {
	p := profile.ProviderProfile{
		Provider:           setupProvider,
		BaseURL:            setupBaseURL,
		APIKey:             setupAPIKey,
		AWSSecretAccessKey: setupAWSSecretAccessKey,
		AWSRegion:          setupAWSRegion,
		AWSProfile:         setupAWSProfile,
		Model:              setupModel,
		Debug:              setupDebug,
	}
	if timeoutSet {
		t := setupTimeout
		p.Timeout = &t
	}
	if p.APIKey == "" && p.AWSProfile != "" {
		p.APIKey = profile.AWSProfileSentinel
	}

	if res := validator.Validate(p); !res.Valid() {
		err := errors.Newf("profile %q is incomplete: missing %s",
			setupName, strings.Join(res.Fields(), ", "))
		return errors.NewUserError(err, "Supply the missing flags and retry")
	}

	reg := newRegistry()

	// Replacing the active profile keeps it active; the delete below
	// clears the marker as a side effect.
	wasActive := false
	if setupForce {
		if doc, err := reg.Store().Load(); err == nil {
			wasActive = doc.ActiveProfile == setupName
		}
		if err := reg.Delete(setupName); err != nil &&
			!errors.Is(err, profile.ErrProfileNotFound) &&
			!errors.Is(err, profile.ErrConfigNotFound) {
			return errors.NewSystemError(err, "")
		}
	}

	if err := reg.Add(setupName, p); err != nil {
		if errors.Is(err, profile.ErrDuplicateProfile) {
			return errors.NewUserError(err, "Use --force to replace it")
		}
		return errors.NewSystemError(err, "Run: agx doctor")
	}

	if setupActivate || wasActive {
		if err := reg.SwitchActive(setupName); err != nil {
			return errors.NewSystemError(err, "Run: agx doctor")
		}
	}

	fmt.Fprintf(w, "Created profile %q (%s)\n", setupName, setupProvider)
	switch {
	case setupActivate:
		fmt.Fprintf(w, "Active profile is now %q\n", setupName)
	case wasActive:
		fmt.Fprintf(w, "Active profile remains %q\n", setupName)
	}
	return nil
}
