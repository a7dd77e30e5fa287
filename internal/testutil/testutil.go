package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// GetProjectRoot returns the project root directory by finding go.mod.
func GetProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("failed to get caller information")
	}
	dir := filepath.Dir(filename)

	// Walk up the directory tree to find go.mod
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find go.mod file starting from %s", filepath.Dir(filename))
}

// GetTestDataDir returns the path to the shared testdata directory.
func GetTestDataDir(t *testing.T) string {
	t.Helper()

	root, err := GetProjectRoot()
	require.NoError(t, err, "Failed to find project root")

	return filepath.Join(root, "testdata")
}

// GetLanguagesDir returns the per-locale language table fixtures.
func GetLanguagesDir(t *testing.T) string {
	t.Helper()

	return filepath.Join(GetTestDataDir(t), "languages")
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return !os.IsNotExist(err) && info.IsDir()
}

// fakeDetectorScript mimics the external detector binary: invoked with no
// arguments it reports the "Too few arguments" diagnostic used by the health
// probe; invoked with "detect --input <file>" it echoes each input line
// prefixed with a language label and a wide space separator, matching the
// real tool's output format. The label defaults to English and can be set
// through FAKE_DETECT_LANGUAGE.
const fakeDetectorScript = `#!/bin/sh
if [ "$#" -eq 0 ]; then
	echo "Too few arguments" >&2
	exit 2
fi
if [ "$1" != "detect" ] || [ "$2" != "--input" ] || [ -z "$3" ]; then
	echo "usage: detect --input FILE" >&2
	exit 2
fi
lang="${FAKE_DETECT_LANGUAGE:-English}"
while IFS= read -r line || [ -n "$line" ]; do
	[ -z "$line" ] && continue
	printf '%s                  %s\n' "$lang" "$line"
done < "$3"
`

// InstallFakeDetector writes a stand-in detector binary into a temp
// directory and prepends it to PATH for the duration of the test.
// It returns the binary name.
func InstallFakeDetector(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "polyglot")
	require.NoError(t, os.WriteFile(path, []byte(fakeDetectorScript), 0o700)) //nolint:gosec // executable test stub

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return "polyglot"
}

// InstallSilentDetector installs a detector binary that passes the health
// probe but prints nothing for detect invocations, as the real tool does for
// inputs it cannot classify.
func InstallSilentDetector(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	script := "#!/bin/sh\nif [ \"$#\" -eq 0 ]; then\n\techo \"Too few arguments\" >&2\n\texit 2\nfi\nexit 1\n"
	path := filepath.Join(dir, "polyglot")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o700)) //nolint:gosec // executable test stub

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return "polyglot"
}

// InstallBrokenDetector installs a detector binary that fails its health
// probe by reporting something other than the expected diagnostic.
func InstallBrokenDetector(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	script := "#!/bin/sh\necho \"No module named icu\" >&2\nexit 1\n"
	path := filepath.Join(dir, "polyglot")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o700)) //nolint:gosec // executable test stub

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return "polyglot"
}
