package support

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"github.com/MeKo-Tech/lingua/internal/testutil"
)

// RegisterSteps wires the CLI step definitions into a godog scenario context.
func RegisterSteps(sc *godog.ScenarioContext, testCtx *TestContext) {
	sc.Step(`^a language catalog with entries for "([^"]*)"$`, testCtx.aLanguageCatalogFor)
	sc.Step(`^a detector that reports "([^"]*)"$`, testCtx.aDetectorThatReports)
	sc.Step(`^no detector is installed$`, testCtx.noDetectorInstalled)
	sc.Step(`^a file "([^"]*)" containing:$`, testCtx.aFileContaining)
	sc.Step(`^I run "([^"]*)"$`, testCtx.iRun)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the output should not contain "([^"]*)"$`, testCtx.theOutputShouldNotContain)
	sc.Step(`^the output should have line "([^"]*)"$`, testCtx.theOutputShouldHaveLine)
	sc.Step(`^the output should be valid JSON$`, testCtx.theOutputShouldBeValidJSON)
	sc.Step(`^the JSON should contain "([^"]*)" with value "([^"]*)"$`, testCtx.theJSONShouldContain)
}

func (testCtx *TestContext) aLanguageCatalogFor(_ string) error {
	dir, err := catalogDir()
	if err != nil {
		return err
	}
	testCtx.AddEnvVar("LINGUA_CATALOG_DIR", dir)
	return nil
}

func (testCtx *TestContext) aDetectorThatReports(language string) error {
	return testCtx.InstallFakeDetector(language)
}

func (testCtx *TestContext) noDetectorInstalled() error {
	root, err := testutil.GetProjectRoot()
	if err != nil {
		return err
	}

	// Restrict PATH to a directory that holds the CLI itself, the shell,
	// and nothing resembling a detector.
	binDir := filepath.Join(testCtx.TempDir, "emptybin")
	if err := os.MkdirAll(binDir, 0o750); err != nil {
		return err
	}
	if err := os.Symlink(filepath.Join(root, "bin", "lingua"), filepath.Join(binDir, "lingua")); err != nil {
		return err
	}
	testCtx.AddEnvVar("PATH", binDir+string(os.PathListSeparator)+"/bin"+string(os.PathListSeparator)+"/usr/bin")
	return nil
}

func (testCtx *TestContext) aFileContaining(name string, content *godog.DocString) error {
	return testCtx.WriteTempFile(name, content.Content)
}

func (testCtx *TestContext) iRun(commandLine string) error {
	return testCtx.RunCommand(commandLine)
}

func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastExitCode != 0 {
		return fmt.Errorf("expected success, got exit code %d\noutput:\n%s",
			testCtx.LastExitCode, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastExitCode == 0 {
		return fmt.Errorf("expected failure, but command succeeded\noutput:\n%s", testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(testCtx.LastOutput, expected) {
		return fmt.Errorf("output does not contain %q\noutput:\n%s", expected, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldNotContain(unexpected string) error {
	if strings.Contains(testCtx.LastOutput, unexpected) {
		return fmt.Errorf("output unexpectedly contains %q\noutput:\n%s", unexpected, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldBeValidJSON() error {
	if _, err := testCtx.decodeJSONResults(); err != nil {
		return err
	}
	return nil
}

func (testCtx *TestContext) theJSONShouldContain(key, value string) error {
	results, err := testCtx.decodeJSONResults()
	if err != nil {
		return err
	}
	for _, result := range results {
		if got, ok := result[key].(string); ok && got == value {
			return nil
		}
	}
	return fmt.Errorf("no result has %q = %q\noutput:\n%s", key, value, testCtx.LastOutput)
}

func (testCtx *TestContext) decodeJSONResults() ([]map[string]any, error) {
	var results []map[string]any
	if err := json.Unmarshal([]byte(testCtx.LastOutput), &results); err != nil {
		return nil, fmt.Errorf("output is not a JSON result list: %w\noutput:\n%s", err, testCtx.LastOutput)
	}
	return results, nil
}

func (testCtx *TestContext) theOutputShouldHaveLine(expected string) error {
	if !testCtx.hasOutputLine(expected) {
		return fmt.Errorf("output has no line %q\noutput:\n%s", expected, testCtx.LastOutput)
	}
	return nil
}
