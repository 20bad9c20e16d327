// Package awscreds resolves static credentials from the AWS shared
// credentials file for bedrock profiles that use named-profile auth.
//
// Only the aws_access_key_id / aws_secret_access_key pair is read.
// Session tokens, SSO, and other AWS auth methods are deliberately
// not supported here.
package awscreds

import (
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/ini.v1"

	"github.com/thoreinstein/agx/internal/paths"
)

// ErrProfileNotFoundInCredentialsFile indicates the named profile has
// no usable section in the credentials file. A missing file is reported
// the same way as a missing section.
var ErrProfileNotFoundInCredentialsFile = errors.New("profile not found in AWS credentials file")

// File reads one AWS shared credentials file.
type File struct {
	path string
}

// Default returns a File at the standard location
// (AWS_SHARED_CREDENTIALS_FILE override, else ~/.aws/credentials).
func Default() *File {
	return &File{path: paths.AWSCredentialsPath()}
}

// NewFile returns a File backed by an explicit path.
func NewFile(path string) *File {
	return &File{path: path}
}

// LookupStaticCredentials extracts the access key pair for the named
// profile. Section headers are matched case-insensitively. Returns
// ErrProfileNotFoundInCredentialsFile when the file, the section, or
// either key field is absent.
func (f *File) LookupStaticCredentials(profileName string) (accessKeyID, secretAccessKey string, err error) {
	if f.path == "" {
		return "", "", errors.Wrapf(ErrProfileNotFoundInCredentialsFile, "%q", profileName)
	}

	cfg, err := ini.Load(f.path)
	if err != nil {
		// Absence of the file is reported the same as an absent section.
		return "", "", errors.Wrapf(ErrProfileNotFoundInCredentialsFile, "%q", profileName)
	}

	section := findSection(cfg, profileName)
	if section == nil {
		return "", "", errors.Wrapf(ErrProfileNotFoundInCredentialsFile, "%q", profileName)
	}

	accessKeyID = sectionValue(section, "aws_access_key_id")
	secretAccessKey = sectionValue(section, "aws_secret_access_key")
	if accessKeyID == "" || secretAccessKey == "" {
		return "", "", errors.Wrapf(ErrProfileNotFoundInCredentialsFile,
			"%q: section is missing aws_access_key_id or aws_secret_access_key", profileName)
	}

	return accessKeyID, secretAccessKey, nil
}

// findSection locates a section by name, case-insensitively. The
// implicit top-level section ini creates for key-less files is skipped
// so it cannot shadow a real [default] header.
func findSection(cfg *ini.File, name string) *ini.Section {
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		if strings.EqualFold(section.Name(), name) {
			return section
		}
	}
	return nil
}

// sectionValue reads a key from a section, matching the key name
// case-insensitively to tolerate hand-edited files.
func sectionValue(section *ini.Section, key string) string {
	for _, k := range section.Keys() {
		if strings.EqualFold(k.Name(), key) {
			return strings.TrimSpace(k.Value())
		}
	}
	return ""
}
