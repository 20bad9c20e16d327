package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/agx/internal/doctor"
	"github.com/thoreinstein/agx/internal/errors"
)

func testReport(results ...doctor.CheckResult) *doctor.Report {
	r := &doctor.Report{Results: results}
	for _, res := range results {
		switch res.Status {
		case doctor.SeverityPass:
			r.Summary.Passed++
		case doctor.SeverityWarning:
			r.Summary.Warnings++
		case doctor.SeverityError:
			r.Summary.Errors++
		}
	}
	return r
}

func TestRunDoctor_HealthyHidesPassesByDefault(t *testing.T) {
	report := testReport(
		doctor.CheckResult{Name: "config-dir", Status: doctor.SeverityPass, Message: "present"},
	)

	var buf bytes.Buffer
	if err := runDoctorWithWriter(&buf, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "config-dir") {
		t.Errorf("passed check shown without --verbose:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "1 passed") {
		t.Errorf("summary missing:\n%s", buf.String())
	}
}

func TestRunDoctor_ErrorsExitNonzero(t *testing.T) {
	report := testReport(
		doctor.CheckResult{
			Name:    "profile:broken",
			Status:  doctor.SeverityError,
			Message: "incomplete",
			FixHint: "Recreate the profile with: agx setup",
		},
	)

	var buf bytes.Buffer
	err := runDoctorWithWriter(&buf, report)
	if err == nil {
		t.Fatal("expected exit error")
	}
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitSystem {
		t.Errorf("error = %v, want exit code %d", err, errors.ExitSystem)
	}
	if !strings.Contains(buf.String(), "profile:broken") {
		t.Errorf("failing check not shown:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "agx setup") {
		t.Errorf("fix hint not shown:\n%s", buf.String())
	}
}

func TestRunDoctor_JSON(t *testing.T) {
	doctorJSON = true
	t.Cleanup(func() { doctorJSON = false })

	report := testReport(
		doctor.CheckResult{Name: "config-dir", Status: doctor.SeverityPass, Message: "present"},
	)

	var buf bytes.Buffer
	if err := runDoctorWithWriter(&buf, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"config-dir"`) {
		t.Errorf("JSON output missing check:\n%s", buf.String())
	}
}
