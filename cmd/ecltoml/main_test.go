// Package main provides tests for the ecltoml CLI.
package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/ecltoml/internal/cli"
	"github.com/leapstack-labs/ecltoml/internal/cli/commands"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	// Get the absolute path to testdata directory
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	return filepath.Join(wd, "..", "..", "testdata")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir()) // keep ./ecltoml.yaml lookups hermetic
	cmd := cli.NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, _, err := run(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(output, "ecltoml") {
		t.Errorf("version output should contain 'ecltoml', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, _, err := run(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	expectedCommands := []string{"translate", "check", "tokens", "ast", "repl", "version"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestTranslateGolden(t *testing.T) {
	td := testdataDir(t)
	want, err := os.ReadFile(filepath.Join(td, "app.toml"))
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}

	output, errOutput, err := run(t, "translate", filepath.Join(td, "app.ecl"))
	if err != nil {
		t.Fatalf("translate command error = %v\n%s", err, errOutput)
	}
	if output != string(want) {
		t.Errorf("translate output mismatch\ngot:\n%s\nwant:\n%s", output, want)
	}
}

func TestTranslateCheckGolden(t *testing.T) {
	td := testdataDir(t)

	output, _, err := run(t, "translate", filepath.Join(td, "app.ecl"),
		"-o", filepath.Join(td, "app.toml"), "--check")
	if err != nil {
		t.Errorf("golden file is stale: %v\n%s", err, output)
	}
}

func TestTranslateBroken(t *testing.T) {
	td := testdataDir(t)
	input := filepath.Join(td, "broken.ecl")

	output, errOutput, err := run(t, "translate", "--snippets=false", input)
	if !errors.Is(err, commands.ErrTranslationFailed) {
		t.Fatalf("expected ErrTranslationFailed, got %v", err)
	}
	if output != "" {
		t.Errorf("no output expected on error, got: %s", output)
	}

	lines := strings.Split(strings.TrimSpace(errOutput), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d:\n%s", len(lines), errOutput)
	}
	if !strings.HasPrefix(lines[0], input+":2:10: error: circular constant reference") {
		t.Errorf("first diagnostic = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], input+`:5:8: error: undefined constant "HOST"`) {
		t.Errorf("second diagnostic = %q", lines[1])
	}
}

func TestCheckCommand(t *testing.T) {
	td := testdataDir(t)

	output, _, err := run(t, "check", "--format", "json",
		filepath.Join(td, "app.ecl"), filepath.Join(td, "broken.ecl"))
	if !errors.Is(err, commands.ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
	if !strings.Contains(output, `"ok": true`) || !strings.Contains(output, `"ok": false`) {
		t.Errorf("check output should report both files, got: %s", output)
	}
}
