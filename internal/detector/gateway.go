package detector

// Package detector is the boundary to the external language detection
// binary. The binary only accepts input files, so every detection request
// is written to a transient scratch file first; its stdout is the sole
// result channel and stderr is discarded because the tool mixes diagnostics
// ("text is too short") into it even for successful detections.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

const (
	// DefaultBinary is the external detector executable name.
	DefaultBinary = "polyglot"

	// healthDiagnostic is printed by the detector when invoked without
	// arguments; any other bare-invocation output means a broken install
	// (missing runtime dependencies, typically).
	healthDiagnostic = "Too few arguments"

	// inputFileExtension for scratch input files.
	inputFileExtension = ".txt"
)

// ErrUnavailable indicates the detector binary is missing or cannot execute.
var ErrUnavailable = errors.New("language detector unavailable")

// Config holds detector gateway settings.
type Config struct {
	// Binary is the detector executable, looked up on PATH.
	Binary string

	// ScratchDir holds the transient per-request input files.
	ScratchDir string

	// QuarantineDir receives input files whose detection failed, grouped
	// per batch for offline inspection.
	QuarantineDir string

	// MaxWorkers bounds the parallel subprocess fan-out in batch mode
	// (0 = runtime.NumCPU()).
	MaxWorkers int
}

// DefaultConfig returns sensible gateway defaults.
func DefaultConfig() Config {
	return Config{
		Binary:        DefaultBinary,
		ScratchDir:    filepath.Join(os.TempDir(), "lingua"),
		QuarantineDir: filepath.Join(os.TempDir(), "lingua-failed"),
		MaxWorkers:    runtime.NumCPU(),
	}
}

// Gateway invokes the external detector binary.
type Gateway struct {
	cfg Config
}

// New creates a gateway with the given configuration, filling in defaults
// for unset fields.
func New(cfg Config) *Gateway {
	defaults := DefaultConfig()
	if cfg.Binary == "" {
		cfg.Binary = defaults.Binary
	}
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = defaults.ScratchDir
	}
	if cfg.QuarantineDir == "" {
		cfg.QuarantineDir = defaults.QuarantineDir
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaults.MaxWorkers
	}
	return &Gateway{cfg: cfg}
}

// Health verifies the detector binary is installed and executes cleanly.
// A healthy install invoked without arguments reports a "too few arguments"
// diagnostic; anything else is an environment failure.
func (g *Gateway) Health() error {
	if _, err := exec.LookPath(g.cfg.Binary); err != nil {
		return fmt.Errorf("%w: binary %q not installed: %w", ErrUnavailable, g.cfg.Binary, err)
	}

	// The bare invocation exits non-zero by design; only the output matters.
	out, _ := exec.Command(g.cfg.Binary).CombinedOutput() //nolint:gosec // G204: binary name from configuration
	if !bytes.Contains(out, []byte(healthDiagnostic)) {
		return fmt.Errorf("%w: unexpected probe output: %s", ErrUnavailable, string(out))
	}
	return nil
}

// DetectFile runs the detector over a single input file and returns its
// non-empty stdout lines. A failing subprocess is not an error: the tool
// exits non-zero for undetectable inputs while still printing whatever it
// managed to classify.
func (g *Gateway) DetectFile(ctx context.Context, path string) ([]string, error) {
	cmd := exec.CommandContext(ctx, g.cfg.Binary, "detect", "--input", path) //nolint:gosec // G204: binary name from configuration
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Debug("detector exited non-zero", "path", path, "error", err)
	}

	return splitLines(stdout.String()), nil
}

// DetectBatch runs the detector over every input file concurrently, one
// subprocess per file over a bounded worker pool, and blocks until the whole
// group finished. The merged output lines carry no identifiers and arrive
// in no particular order; correlation is the caller's concern.
func (g *Gateway) DetectBatch(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	workers := g.cfg.MaxWorkers
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan string, len(paths))
	results := make(chan []string, len(paths))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				lines, err := g.DetectFile(ctx, path)
				if err != nil {
					// Context cancellation; remaining jobs drain below.
					results <- nil
					continue
				}
				results <- lines
			}
		}()
	}

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged []string
	for lines := range results {
		merged = append(merged, lines...)
	}
	return merged, nil
}

// InputPath returns the scratch file path for a request ID.
func (g *Gateway) InputPath(requestID string) string {
	return filepath.Join(g.cfg.ScratchDir, requestID+inputFileExtension)
}

// WriteInput persists one detection input under its request ID and returns
// the file path.
func (g *Gateway) WriteInput(requestID, text string) (string, error) {
	if err := os.MkdirAll(g.cfg.ScratchDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create scratch dir: %w", err)
	}
	path := g.InputPath(requestID)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("failed to write detector input %s: %w", path, err)
	}
	return path, nil
}

// RemoveInputs deletes scratch input files. Best-effort: the scratch dir is
// wiped on reboot anyway, so failures are ignored.
func (g *Gateway) RemoveInputs(paths []string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}

// Quarantine relocates a failed input file into the per-batch quarantine
// folder for offline inspection and returns the new location. Quarantine
// failures are logged, never escalated.
func (g *Gateway) Quarantine(batchID, path string) string {
	dir := filepath.Join(g.cfg.QuarantineDir, batchID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create quarantine folder", "dir", dir, "error", err)
		return ""
	}
	target := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, target); err != nil {
		slog.Error("failed to quarantine detector input", "path", path, "error", err)
		return ""
	}
	return target
}

// splitLines splits detector stdout into non-empty lines. The tool
// occasionally emits blank lines between results.
func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimRight(line, "\r") == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	return lines
}
