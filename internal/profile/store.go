package profile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/agx/internal/paths"
	"github.com/thoreinstein/agx/pkg/fileutil"
)

// Sentinel errors for document persistence.
var (
	// ErrConfigNotFound indicates the profile document has never been
	// written. Callers distinguish this from corruption so they can fall
	// back to environment variables or prompt for setup.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrConfigCorrupt indicates the document exists but its top-level
	// JSON structure does not parse. No best-effort recovery is attempted.
	ErrConfigCorrupt = errors.New("configuration file is corrupt")

	// ErrVersionUnsupported indicates the document's version field is
	// missing or not one this build knows how to read or migrate.
	ErrVersionUnsupported = errors.New("unsupported configuration version")
)

// Store reads and writes the persisted multi-profile document.
// The location is resolved once at construction time.
type Store struct {
	path string
}

// NewStore creates a Store at the default document location
// (AGX_CONFIG_DIR override, else the agx XDG config directory).
func NewStore() *Store {
	return &Store{path: paths.ProfilesPath()}
}

// NewStoreAt creates a Store backed by an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// legacyConfig is the version 1 document shape: one flat provider
// configuration with no profiles map.
type legacyConfig struct {
	Version            int    `json:"version"`
	Provider           string `json:"provider"`
	BaseURL            string `json:"baseUrl"`
	APIKey             string `json:"apiKey"`
	AWSSecretAccessKey string `json:"awsSecretAccessKey"`
	AWSRegion          string `json:"awsRegion"`
	AWSProfile         string `json:"awsProfile"`
	Model              string `json:"model"`
	Timeout            *int   `json:"timeout"`
	Debug              bool   `json:"debug"`
}

// Load reads the document.
//
// A missing file returns ErrConfigNotFound. Unparsable JSON returns
// ErrConfigCorrupt. A missing or unrecognized version field returns
// ErrVersionUnsupported. Version 1 documents are migrated in memory to
// the current schema; the migrated shape is persisted on the next Save.
func (s *Store) Load() (*MultiProviderConfig, error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrConfigNotFound, "%s", s.path)
		}
		return nil, err
	}

	// Probe the version before committing to a shape.
	var probe struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrapf(ErrConfigCorrupt, "%s: %v", s.path, err)
	}
	if probe.Version == nil {
		return nil, errors.Wrapf(ErrVersionUnsupported, "%s: missing version field", s.path)
	}

	switch *probe.Version {
	case SchemaVersion:
		var doc MultiProviderConfig
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(ErrConfigCorrupt, "%s: %v", s.path, err)
		}
		if doc.Profiles == nil {
			doc.Profiles = map[string]ProviderProfile{}
		}
		return &doc, nil

	case 1:
		var legacy legacyConfig
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, errors.Wrapf(ErrConfigCorrupt, "%s: %v", s.path, err)
		}
		return migrateLegacy(legacy), nil

	default:
		return nil, errors.Wrapf(ErrVersionUnsupported, "%s: version %d", s.path, *probe.Version)
	}
}

// migrateLegacy lifts a v1 flat document into a v2 document with a
// single "default" profile.
func migrateLegacy(legacy legacyConfig) *MultiProviderConfig {
	doc := NewMultiProviderConfig()
	doc.ActiveProfile = "default"
	doc.Profiles["default"] = ProviderProfile{
		Provider:           legacy.Provider,
		BaseURL:            legacy.BaseURL,
		APIKey:             legacy.APIKey,
		AWSSecretAccessKey: legacy.AWSSecretAccessKey,
		AWSRegion:          legacy.AWSRegion,
		AWSProfile:         legacy.AWSProfile,
		Model:              legacy.Model,
		Timeout:            legacy.Timeout,
		Debug:              legacy.Debug,
	}
	return doc
}

// Save persists the document atomically: write to a temp file in the
// same directory, then rename over the target. A crash or concurrent
// reader never observes a half-written document.
func (s *Store) Save(doc *MultiProviderConfig) error {
	if doc.Profiles == nil {
		doc.Profiles = map[string]ProviderProfile{}
	}
	doc.Version = SchemaVersion

	if err := paths.EnsureDir(filepath.Dir(s.path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fileutil.AtomicWriteJSON(s.path, doc)
}
