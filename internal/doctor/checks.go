package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/agx/internal/awscreds"
	"github.com/thoreinstein/agx/internal/paths"
	"github.com/thoreinstein/agx/internal/profile"
	"github.com/thoreinstein/agx/internal/profile/validator"
	"github.com/thoreinstein/agx/internal/redact"
)

// checkConfigDir verifies the configuration directory is resolvable.
func checkConfigDir() CheckResult {
	dir := paths.ConfigDir()
	result := CheckResult{
		Name:     "config-dir",
		Category: "config",
		Details:  map[string]any{"path": dir},
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "configuration directory does not exist yet"
		result.FixHint = "Run: agx setup"
		return result
	}

	result.Status = SeverityPass
	result.Message = "configuration directory present"
	return result
}

// checkDocument loads the profile document, mapping each load failure
// kind to its own outcome. Returns the document when it loaded.
func checkDocument(store *profile.Store) (CheckResult, *profile.MultiProviderConfig) {
	result := CheckResult{
		Name:     "profile-document",
		Category: "config",
		Details:  map[string]any{"path": store.Path()},
	}

	doc, err := store.Load()
	switch {
	case err == nil:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("document loads, %d profile(s)", len(doc.Profiles))
		return result, doc

	case errors.Is(err, profile.ErrConfigNotFound):
		result.Status = SeverityWarning
		result.Message = "no profiles configured"
		result.FixHint = "Run: agx setup"
		return result, nil

	case errors.Is(err, profile.ErrVersionUnsupported):
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "The document was written by an incompatible agx version"
		return result, nil

	default:
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "Fix or remove the file; agx does not attempt repair"
		return result, nil
	}
}

// checkActiveProfile verifies the active marker references an existing profile.
func checkActiveProfile(doc *profile.MultiProviderConfig) CheckResult {
	result := CheckResult{
		Name:     "active-profile",
		Category: "profiles",
	}

	if doc.ActiveProfile == "" {
		result.Status = SeverityWarning
		result.Message = "no active profile set"
		result.FixHint = "Run: agx use <name>"
		return result
	}

	if _, ok := doc.Profiles[doc.ActiveProfile]; !ok {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("active profile %q does not exist", doc.ActiveProfile)
		result.FixHint = "Run: agx use <name>"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("active profile is %q", doc.ActiveProfile)
	return result
}

// checkProfiles runs credential validation over every stored profile.
func checkProfiles(doc *profile.MultiProviderConfig) []CheckResult {
	names := make([]string, 0, len(doc.Profiles))
	for name := range doc.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]CheckResult, 0, len(names))
	for _, name := range names {
		p := doc.Profiles[name]
		result := CheckResult{
			Name:     "profile:" + name,
			Category: "profiles",
			Details: map[string]any{
				"provider": p.Provider,
				"baseUrl":  p.BaseURL,
				"apiKey":   redact.MaskValue(p.APIKey),
			},
		}

		if res := validator.Validate(p); !res.Valid() {
			result.Status = SeverityError
			result.Message = fmt.Sprintf("incomplete: missing %v", res.Fields())
			result.FixHint = "Recreate the profile with: agx setup"
		} else {
			result.Status = SeverityPass
			result.Message = "complete"
		}
		results = append(results, result)
	}
	return results
}

// checkAWSCredentials verifies every bedrock profile using named-profile
// auth resolves in the AWS credentials file.
func checkAWSCredentials(doc *profile.MultiProviderConfig, creds *awscreds.File) []CheckResult {
	var results []CheckResult
	for name, p := range doc.Profiles {
		if !p.UsesNamedProfileAuth() {
			continue
		}

		result := CheckResult{
			Name:     "aws-credentials:" + name,
			Category: "credentials",
			Details:  map[string]any{"awsProfile": p.AWSProfile},
		}

		if _, _, err := creds.LookupStaticCredentials(p.AWSProfile); err != nil {
			result.Status = SeverityError
			result.Message = fmt.Sprintf("AWS profile %q not resolvable", p.AWSProfile)
			result.FixHint = "Add the section to " + paths.AWSCredentialsPath()
		} else {
			result.Status = SeverityPass
			result.Message = fmt.Sprintf("AWS profile %q resolves", p.AWSProfile)
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

// checkAgentBinaries looks up each launchable agent on PATH.
func checkAgentBinaries() []CheckResult {
	var results []CheckResult
	for _, agent := range paths.Agents() {
		binary := paths.AgentBinary(agent)
		if binary == "" {
			continue // built-in
		}

		result := CheckResult{
			Name:     "agent:" + agent,
			Category: "agents",
			Details:  map[string]any{"binary": binary},
		}

		if path, err := exec.LookPath(binary); err != nil {
			result.Status = SeverityInfo
			result.Message = "not installed"
		} else {
			result.Status = SeverityPass
			result.Message = "found at " + path
		}
		results = append(results, result)
	}
	return results
}
