package support

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/MeKo-Tech/lingua/internal/testutil"
)

// TestContext holds the state for CLI integration tests.
type TestContext struct {
	// Command execution state
	LastCommand  string
	LastOutput   string
	LastError    error
	LastExitCode int
	LastDuration time.Duration

	// Test environment
	WorkingDir string
	TempDir    string
	EnvVars    []string
}

// NewTestContext creates a new test context rooted at the project directory.
func NewTestContext() (*TestContext, error) {
	workingDir, err := testutil.GetProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "lingua-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &TestContext{
		WorkingDir: workingDir,
		TempDir:    tempDir,
		EnvVars:    []string{},
	}, nil
}

// Cleanup removes test artifacts.
func (testCtx *TestContext) Cleanup() error {
	if testCtx.TempDir != "" {
		return os.RemoveAll(testCtx.TempDir)
	}
	return nil
}

// AddEnvVar adds an environment variable for subsequent command runs.
func (testCtx *TestContext) AddEnvVar(name, value string) {
	testCtx.EnvVars = append(testCtx.EnvVars, name+"="+value)
}

// RunCommand executes a lingua CLI invocation through the shell, so quoted
// arguments inside feature files survive intact.
func (testCtx *TestContext) RunCommand(commandLine string) error {
	testCtx.LastCommand = commandLine

	cmd := exec.Command("sh", "-c", commandLine) //nolint:gosec // G204: commands come from feature files
	cmd.Dir = testCtx.TempDir
	cmd.Env = append(os.Environ(), testCtx.EnvVars...)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	testCtx.LastDuration = time.Since(start)

	testCtx.LastOutput = string(output)
	testCtx.LastError = err
	if cmd.ProcessState != nil {
		testCtx.LastExitCode = cmd.ProcessState.ExitCode()
	} else {
		testCtx.LastExitCode = -1
	}
	return nil
}

// WriteTempFile creates a file in the scenario's temp directory.
func (testCtx *TestContext) WriteTempFile(name, content string) error {
	path := filepath.Join(testCtx.TempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

// InstallFakeDetector writes a stand-in polyglot binary into the scenario's
// temp directory and prepends it to PATH for command runs. The stand-in
// mirrors the real tool's contract: a bare invocation reports "Too few
// arguments", detect echoes each input line behind a language label.
func (testCtx *TestContext) InstallFakeDetector(language string) error {
	script := fmt.Sprintf(`#!/bin/sh
if [ "$#" -eq 0 ]; then
	echo "Too few arguments" >&2
	exit 2
fi
while IFS= read -r line || [ -n "$line" ]; do
	[ -z "$line" ] && continue
	printf '%%s                  %%s\n' %q "$line"
done < "$3"
`, language)

	binDir := filepath.Join(testCtx.TempDir, "fakebin")
	if err := os.MkdirAll(binDir, 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(binDir, "polyglot"), []byte(script), 0o700); err != nil { //nolint:gosec // executable test stub
		return err
	}

	path := binDir + string(os.PathListSeparator) + os.Getenv("PATH")
	testCtx.EnvVars = append(testCtx.EnvVars, "PATH="+path)
	return nil
}

// catalogDir locates the language catalog fixtures shared with the unit tests.
func catalogDir() (string, error) {
	root, err := testutil.GetProjectRoot()
	if err != nil {
		return "", fmt.Errorf("failed to find catalog fixtures: %w", err)
	}
	return filepath.Join(root, "testdata", "languages"), nil
}

// hasOutputLine reports whether a full line of the last output matches.
func (testCtx *TestContext) hasOutputLine(expected string) bool {
	for _, line := range strings.Split(testCtx.LastOutput, "\n") {
		if strings.TrimSpace(line) == expected {
			return true
		}
	}
	return false
}
