package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func TestSetupLogging_QuietVerboseConflict(t *testing.T) {
	quiet = true
	verbosity = 2
	t.Cleanup(func() {
		quiet = false
		verbosity = 0
	})

	cmd := &cobra.Command{}
	cmd.SetErr(&bytes.Buffer{})

	if err := setupLogging(cmd); err == nil {
		t.Fatal("expected conflict error")
	}
}

func TestSetupLogging_JSONFormat(t *testing.T) {
	logFormat = "json"
	t.Cleanup(func() { logFormat = "text" })

	cmd := &cobra.Command{}
	cmd.SetErr(&bytes.Buffer{})

	if err := setupLogging(cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckConfigLoad_SkipsHelp(t *testing.T) {
	configLoadErr = assertErr
	t.Cleanup(func() { configLoadErr = nil })

	help := &cobra.Command{Use: "help"}
	if err := checkConfigLoad(help); err != nil {
		t.Errorf("help must not surface config errors: %v", err)
	}

	other := &cobra.Command{Use: "list"}
	if err := checkConfigLoad(other); err == nil {
		t.Error("config load error swallowed")
	}
}

// assertErr is a fixed error value for checkConfigLoad tests.
var assertErr = errTest{}

type errTest struct{}

func (errTest) Error() string { return "test error" }
