package detector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/lingua/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultBinary, cfg.Binary)
	assert.NotEmpty(t, cfg.ScratchDir)
	assert.NotEmpty(t, cfg.QuarantineDir)
	assert.Positive(t, cfg.MaxWorkers)
}

func TestNewFillsDefaults(t *testing.T) {
	g := New(Config{})
	assert.Equal(t, DefaultBinary, g.cfg.Binary)
	assert.Positive(t, g.cfg.MaxWorkers)
}

func TestHealth(t *testing.T) {
	t.Run("healthy install", func(t *testing.T) {
		binary := testutil.InstallFakeDetector(t)
		g := New(Config{Binary: binary})
		require.NoError(t, g.Health())
	})

	t.Run("binary not installed", func(t *testing.T) {
		g := New(Config{Binary: "definitely-not-installed-binary"})
		err := g.Health()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("broken runtime environment", func(t *testing.T) {
		binary := testutil.InstallBrokenDetector(t)
		g := New(Config{Binary: binary})
		err := g.Health()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Contains(t, err.Error(), "No module named icu")
	})
}

func TestDetectFile(t *testing.T) {
	binary := testutil.InstallFakeDetector(t)
	g := New(Config{Binary: binary, ScratchDir: t.TempDir()})

	path, err := g.WriteInput("req-1", "the quick brown fox\n")
	require.NoError(t, err)

	lines, err := g.DetectFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	language, fragment, ok := ParseLine(lines[0])
	require.True(t, ok)
	assert.Equal(t, "English", language)
	assert.Equal(t, "the quick brown fox", fragment)
}

func TestDetectFileRespectsLanguageOverride(t *testing.T) {
	binary := testutil.InstallFakeDetector(t)
	t.Setenv("FAKE_DETECT_LANGUAGE", "German")
	g := New(Config{Binary: binary, ScratchDir: t.TempDir()})

	path, err := g.WriteInput("req-1", "schnelle braune Füchse\n")
	require.NoError(t, err)

	lines, err := g.DetectFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	language, _, ok := ParseLine(lines[0])
	require.True(t, ok)
	assert.Equal(t, "German", language)
}

func TestDetectBatch(t *testing.T) {
	binary := testutil.InstallFakeDetector(t)
	g := New(Config{Binary: binary, ScratchDir: t.TempDir(), MaxWorkers: 4})

	texts := []string{
		"the quick brown fox\n",
		"jumps over the lazy dog\n",
		"a third independent request\n",
	}
	var paths []string
	for i, text := range texts {
		path, err := g.WriteInput("req-"+strings.Repeat("x", i+1), text)
		require.NoError(t, err)
		paths = append(paths, path)
	}

	lines, err := g.DetectBatch(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	fragments := make(map[string]bool)
	for _, line := range lines {
		_, fragment, ok := ParseLine(line)
		require.True(t, ok)
		fragments[fragment] = true
	}
	for _, text := range texts {
		assert.True(t, fragments[strings.TrimSpace(text)], "missing result for %q", text)
	}
}

func TestDetectBatchEmpty(t *testing.T) {
	g := New(Config{Binary: "polyglot"})
	lines, err := g.DetectBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDetectBatchCancelledContext(t *testing.T) {
	binary := testutil.InstallFakeDetector(t)
	g := New(Config{Binary: binary, ScratchDir: t.TempDir()})

	path, err := g.WriteInput("req-1", "some text\n")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = g.DetectBatch(ctx, []string{path})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteAndRemoveInputs(t *testing.T) {
	g := New(Config{Binary: "polyglot", ScratchDir: filepath.Join(t.TempDir(), "scratch")})

	path, err := g.WriteInput("abc-123", "hello world\n")
	require.NoError(t, err)
	assert.Equal(t, g.InputPath("abc-123"), path)

	content, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(content))

	g.RemoveInputs([]string{path})
	assert.NoFileExists(t, path)
}

func TestQuarantine(t *testing.T) {
	scratch := t.TempDir()
	g := New(Config{
		Binary:        "polyglot",
		ScratchDir:    scratch,
		QuarantineDir: filepath.Join(t.TempDir(), "failed"),
	})

	path, err := g.WriteInput("req-9", "undetectable gibberish\n")
	require.NoError(t, err)

	target := g.Quarantine("batch-1", path)
	require.NotEmpty(t, target)
	assert.NoFileExists(t, path)
	assert.FileExists(t, target)
	assert.Equal(t, filepath.Base(path), filepath.Base(target))
	assert.Contains(t, target, "batch-1")
}
