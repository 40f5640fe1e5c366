package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	greetAPIPath       = "../../testdata/greet_api.json"
	validRequestPath   = "../../testdata/valid_request.yaml"
	invalidRequestPath = "../../testdata/invalid_request.yaml"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestValidate_ValidRequest(t *testing.T) {
	out, err := run(t, "validate", "--spec", greetAPIPath, "--request", validRequestPath)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "✅") {
		t.Errorf("output = %q", out)
	}
}

func TestValidate_InvalidRequest(t *testing.T) {
	out, err := run(t, "validate", "-s", greetAPIPath, invalidRequestPath)
	if !errors.Is(err, errInvalidRequest) {
		t.Fatalf("validate error = %v, want errInvalidRequest", err)
	}
	if !strings.Contains(out, "body") {
		t.Errorf("output should list the body violation: %q", out)
	}
}

func TestValidate_Raise(t *testing.T) {
	out, err := run(t, "validate", "-s", greetAPIPath, "--raise", invalidRequestPath)
	if !errors.Is(err, errInvalidRequest) {
		t.Fatalf("validate error = %v, want errInvalidRequest", err)
	}
	if !strings.Contains(out, "request validation failed") {
		t.Errorf("output = %q", out)
	}
}

func TestValidate_Report(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.json")

	_, err := run(t, "validate", "-s", greetAPIPath, "-o", output, invalidRequestPath)
	if !errors.Is(err, errInvalidRequest) {
		t.Fatalf("validate error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	var got report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if got.Valid || len(got.Errors) == 0 {
		t.Errorf("report = %+v", got)
	}
}

func TestValidate_RaiseRemovesStaleReport(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.yaml")
	if err := os.WriteFile(output, []byte("valid: true\n"), 0644); err != nil {
		t.Fatalf("Failed to write report: %v", err)
	}

	_, err := run(t, "validate", "-s", greetAPIPath, "-o", output, "--raise", invalidRequestPath)
	if !errors.Is(err, errInvalidRequest) {
		t.Fatalf("validate error = %v", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("stale report should be removed")
	}
}

func TestValidate_SpecFromEnv(t *testing.T) {
	t.Setenv("REQCHECK_SPEC", greetAPIPath)

	if _, err := run(t, "validate", validRequestPath); err != nil {
		t.Fatalf("validate error = %v", err)
	}
}

func TestValidate_MissingArguments(t *testing.T) {
	_, err := run(t, "validate")
	if err == nil || errors.Is(err, errInvalidRequest) {
		t.Errorf("validate error = %v, want usage error", err)
	}
}

func TestCheckSpec(t *testing.T) {
	out, err := run(t, "check-spec", greetAPIPath)
	if err != nil {
		t.Fatalf("check-spec error = %v", err)
	}
	if !strings.Contains(out, "Greet API 1.0.0") {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, "check-spec", "--spec", "nonexistent.json"); err == nil {
		t.Error("check-spec expected error for nonexistent file")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if out != "reqcheck version "+version+"\n" {
		t.Errorf("output = %q", out)
	}
}
