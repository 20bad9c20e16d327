package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/agx/internal/profile"
)

func TestRunExport_MasksByDefault(t *testing.T) {
	seedConfigDir(t)
	seedProfiles(t)

	var buf bytes.Buffer
	if err := runExportWithWriter(&buf, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out exportDoc
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(out.Profiles) != 2 {
		t.Fatalf("len(Profiles) = %d, want 2", len(out.Profiles))
	}
	if key := out.Profiles["work"].APIKey; strings.Contains(key, "corp-key") {
		t.Errorf("exported key not masked: %q", key)
	}
}

func TestRunExport_SingleUnknown(t *testing.T) {
	seedConfigDir(t)
	seedProfiles(t)

	var buf bytes.Buffer
	if err := runExportWithWriter(&buf, "missing"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestExportImport_RoundTripWithSecrets(t *testing.T) {
	dir := seedConfigDir(t)
	seedProfiles(t)

	exportWithSecrets = true
	exportOutput = filepath.Join(dir, "export.yaml")
	t.Cleanup(func() {
		exportWithSecrets = false
		exportOutput = ""
	})

	var buf bytes.Buffer
	if err := runExportWithWriter(&buf, ""); err != nil {
		t.Fatalf("export: %v", err)
	}

	info, err := os.Stat(exportOutput)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("export with secrets has mode %o, want 600", perm)
	}

	// Import into a fresh config dir.
	fresh := t.TempDir()
	t.Setenv("AGX_CONFIG_DIR", fresh)

	if err := runImportWithWriter(&buf, exportOutput); err != nil {
		t.Fatalf("import: %v", err)
	}

	doc, err := profile.NewStore().Load()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Profiles["work"].APIKey != "sk-corp-key-1234" {
		t.Errorf("round trip lost the key: %+v", doc.Profiles["work"])
	}
}

func TestRunImport_RefusesMaskedSecrets(t *testing.T) {
	dir := seedConfigDir(t)

	in := []byte(`version: 2
profiles:
  work:
    provider: litellm
    baseUrl: https://llm.corp:4000
    apiKey: "****1234"
`)
	path := filepath.Join(dir, "masked.yaml")
	if err := os.WriteFile(path, in, 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err := runImportWithWriter(&buf, path)
	if err == nil {
		t.Fatal("expected refusal")
	}
	if !strings.Contains(err.Error(), "masked") {
		t.Errorf("error = %q, want masked-secret refusal", err)
	}
}

func TestRunImport_ValidatesBeforeWrite(t *testing.T) {
	dir := seedConfigDir(t)

	in := []byte(`version: 2
profiles:
  good:
    provider: litellm
    baseUrl: https://llm.corp:4000
    apiKey: sk-good
  bad:
    provider: litellm
    baseUrl: https://llm.corp:4000
`)
	path := filepath.Join(dir, "mixed.yaml")
	if err := os.WriteFile(path, in, 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runImportWithWriter(&buf, path); err == nil {
		t.Fatal("expected validation error")
	}

	// Rejection is all-or-nothing: the good profile was not written.
	if _, err := profile.NewStore().Load(); err == nil {
		t.Error("document written despite invalid entry")
	}
}
