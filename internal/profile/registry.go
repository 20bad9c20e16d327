package profile

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for registry operations.
var (
	// ErrProfileNotFound indicates the named profile does not exist in
	// the document.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrDuplicateProfile indicates an add collided with an existing
	// name. There is no implicit upsert; delete first to overwrite.
	ErrDuplicateProfile = errors.New("profile already exists")

	// ErrMissingName indicates a required profile name is empty.
	ErrMissingName = errors.New("profile name is required")
)

// Entry is one stored profile together with its active marker, as
// consumed by the status and list renderers.
type Entry struct {
	Name    string          `json:"name"`
	Profile ProviderProfile `json:"profile"`
	Active  bool            `json:"active"`
}

// Registry provides CRUD over named profiles. Every mutation is a full
// read-modify-write of the whole document through the Store; there is
// no cross-process locking, so concurrent mutations are last-writer-wins
// on the whole document.
type Registry struct {
	store *Store
}

// NewRegistry creates a Registry backed by the given store.
func NewRegistry(store *Store) *Registry {
	return &Registry{store: store}
}

// Store returns the backing store.
func (r *Registry) Store() *Store {
	return r.store
}

// List returns all profiles with their active marker. Order is not
// defined; rendering layers sort for display.
func (r *Registry) List() ([]Entry, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(doc.Profiles))
	for name, p := range doc.Profiles {
		entries = append(entries, Entry{
			Name:    name,
			Profile: p,
			Active:  name == doc.ActiveProfile,
		})
	}
	return entries, nil
}

// Get returns a single profile by name.
func (r *Registry) Get(name string) (ProviderProfile, error) {
	doc, err := r.store.Load()
	if err != nil {
		return ProviderProfile{}, err
	}
	p, ok := doc.Profiles[name]
	if !ok {
		return ProviderProfile{}, errors.Wrapf(ErrProfileNotFound, "%q", name)
	}
	return p, nil
}

// Add inserts a new named profile. The first successful Add creates the
// document. Returns ErrDuplicateProfile if the name already exists.
func (r *Registry) Add(name string, p ProviderProfile) error {
	if name == "" {
		return ErrMissingName
	}

	doc, err := r.store.Load()
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			return err
		}
		doc = NewMultiProviderConfig()
	}

	if _, ok := doc.Profiles[name]; ok {
		return errors.Wrapf(ErrDuplicateProfile, "%q", name)
	}

	doc.Profiles[name] = p
	return r.store.Save(doc)
}

// SwitchActive makes the named profile the active one. The mutation is
// all-or-nothing: a missing name fails before any write, leaving the
// stored document byte-for-byte unchanged, and a successful switch
// rewrites only activeProfile.
func (r *Registry) SwitchActive(name string) error {
	doc, err := r.store.Load()
	if err != nil {
		return err
	}

	if _, ok := doc.Profiles[name]; !ok {
		return errors.Wrapf(ErrProfileNotFound, "%q", name)
	}

	doc.ActiveProfile = name
	return r.store.Save(doc)
}

// Delete removes the named profile. Deleting the currently active
// profile proceeds but clears activeProfile; a subsequent resolution
// with no flags and no env fallback then fails with no active profile.
// Returns ErrProfileNotFound if the name is absent.
func (r *Registry) Delete(name string) error {
	doc, err := r.store.Load()
	if err != nil {
		return err
	}

	if _, ok := doc.Profiles[name]; !ok {
		return errors.Wrapf(ErrProfileNotFound, "%q", name)
	}

	delete(doc.Profiles, name)
	if doc.ActiveProfile == name {
		doc.ActiveProfile = ""
	}
	return r.store.Save(doc)
}
