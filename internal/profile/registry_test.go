package profile

import (
	"errors"
	"os"
	"reflect"
	"testing"
)

func seededRegistry(t *testing.T) *Registry {
	t.Helper()
	s := testStore(t)
	if err := s.Save(sampleDoc()); err != nil {
		t.Fatal(err)
	}
	return NewRegistry(s)
}

func TestRegistry_List(t *testing.T) {
	r := seededRegistry(t)

	entries, err := r.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	activeCount := 0
	for _, e := range entries {
		if e.Active {
			activeCount++
			if e.Name != "litellm" {
				t.Errorf("active entry = %q, want litellm", e.Name)
			}
		}
	}
	if activeCount != 1 {
		t.Errorf("active entries = %d, want exactly 1", activeCount)
	}
}

func TestRegistry_AddDuplicate(t *testing.T) {
	r := seededRegistry(t)

	err := r.Add("litellm", ProviderProfile{Provider: ProviderLiteLLM})
	if !errors.Is(err, ErrDuplicateProfile) {
		t.Errorf("Add() duplicate = %v, want ErrDuplicateProfile", err)
	}
}

func TestRegistry_AddEmptyName(t *testing.T) {
	r := seededRegistry(t)

	if err := r.Add("", ProviderProfile{}); !errors.Is(err, ErrMissingName) {
		t.Errorf("Add(\"\") = %v, want ErrMissingName", err)
	}
}

func TestRegistry_AddCreatesDocument(t *testing.T) {
	r := NewRegistry(testStore(t))

	err := r.Add("first", ProviderProfile{
		Provider: ProviderLiteLLM,
		BaseURL:  "https://litellm.internal:4000",
		APIKey:   "sk-gateway",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	doc, err := r.Store().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := doc.Profiles["first"]; !ok {
		t.Error("expected profile to be persisted")
	}
	if doc.ActiveProfile != "" {
		t.Errorf("Add should not set activeProfile, got %q", doc.ActiveProfile)
	}
}

func TestRegistry_SwitchActive(t *testing.T) {
	r := seededRegistry(t)

	if err := r.SwitchActive("bedrock-creds"); err != nil {
		t.Fatalf("SwitchActive() error = %v", err)
	}

	entries, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Active != (e.Name == "bedrock-creds") {
			t.Errorf("entry %q Active = %v", e.Name, e.Active)
		}
	}
}

func TestRegistry_SwitchActivePreservesBodies(t *testing.T) {
	r := seededRegistry(t)

	before, err := r.Store().Load()
	if err != nil {
		t.Fatal(err)
	}

	if err := r.SwitchActive("bedrock-profile"); err != nil {
		t.Fatal(err)
	}

	after, err := r.Store().Load()
	if err != nil {
		t.Fatal(err)
	}
	for name, p := range before.Profiles {
		got := after.Profiles[name]
		if !reflect.DeepEqual(got, p) {
			t.Errorf("profile %q changed across switch:\n before %+v\n after  %+v", name, p, got)
		}
	}
}

func TestRegistry_SwitchActiveNotFoundLeavesBytesUnchanged(t *testing.T) {
	r := seededRegistry(t)

	before, err := os.ReadFile(r.Store().Path())
	if err != nil {
		t.Fatal(err)
	}

	if err := r.SwitchActive("nope"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("SwitchActive() = %v, want ErrProfileNotFound", err)
	}

	after, err := os.ReadFile(r.Store().Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("failed switch must leave the document byte-identical")
	}
}

func TestRegistry_DeleteActiveClearsActive(t *testing.T) {
	r := seededRegistry(t)

	if err := r.Delete("litellm"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	doc, err := r.Store().Load()
	if err != nil {
		t.Fatal(err)
	}
	if doc.ActiveProfile != "" {
		t.Errorf("ActiveProfile = %q, want cleared", doc.ActiveProfile)
	}
	if _, ok := doc.Profiles["litellm"]; ok {
		t.Error("profile should be removed")
	}
}

func TestRegistry_DeleteInactiveKeepsActive(t *testing.T) {
	r := seededRegistry(t)

	if err := r.Delete("bedrock-creds"); err != nil {
		t.Fatal(err)
	}

	doc, err := r.Store().Load()
	if err != nil {
		t.Fatal(err)
	}
	if doc.ActiveProfile != "litellm" {
		t.Errorf("ActiveProfile = %q, want litellm", doc.ActiveProfile)
	}
}

func TestRegistry_DeleteNotFound(t *testing.T) {
	r := seededRegistry(t)

	if err := r.Delete("nope"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Delete() = %v, want ErrProfileNotFound", err)
	}
}

func TestRegistry_DeleteLastProfileLeavesEmptyMap(t *testing.T) {
	r := NewRegistry(testStore(t))
	if err := r.Add("only", ProviderProfile{Provider: ProviderLiteLLM}); err != nil {
		t.Fatal(err)
	}
	if err := r.SwitchActive("only"); err != nil {
		t.Fatal(err)
	}

	if err := r.Delete("only"); err != nil {
		t.Fatal(err)
	}

	doc, err := r.Store().Load()
	if err != nil {
		t.Fatal(err)
	}
	if doc.ActiveProfile != "" {
		t.Errorf("ActiveProfile = %q, want cleared", doc.ActiveProfile)
	}
	if doc.Profiles == nil || len(doc.Profiles) != 0 {
		t.Errorf("Profiles = %v, want empty map", doc.Profiles)
	}
}
