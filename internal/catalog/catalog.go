package catalog

// Package catalog resolves language codes to localized display names using
// per-locale language tables in the umpirsky/language-list data layout
// (<dataDir>/<locale>/language.json).

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

const (
	// DefaultDataDir is the default location of the per-locale language tables.
	DefaultDataDir = "data/languages"

	// EnvDataDir overrides the language table location.
	EnvDataDir = "LINGUA_CATALOG_DIR"

	// tableFileName is the per-locale table file inside each locale directory.
	tableFileName = "language.json"

	// maxLoadRetries bounds the reload attempts for a transiently empty table.
	// Under concurrent load the table file occasionally reads back empty even
	// though it exists; re-reading resolves it. Root cause unknown.
	maxLoadRetries = 20
)

var (
	// ErrNameNotFound indicates a language code missing from a locale's table.
	ErrNameNotFound = errors.New("no language name for code in locale")

	// ErrCodeNotFound indicates a language name with no exact match in a
	// locale's table. The reverse lookup is an exact string comparison, so
	// casing and spelling must match the table entry.
	ErrCodeNotFound = errors.New("no language code for name in locale")
)

// ResolveDataDir returns the language table directory, honoring the
// environment override.
func ResolveDataDir(configured string) string {
	if env := os.Getenv(EnvDataDir); env != "" {
		return env
	}
	if configured != "" {
		return configured
	}
	return DefaultDataDir
}

// Catalog loads and caches per-locale language-code to display-name tables.
// Tables are immutable after the first successful load; loading the same
// locale twice concurrently is harmless, the second result simply wins.
type Catalog struct {
	dataDir  string
	tables   sync.Map // locale -> map[string]string
	readFile func(name string) ([]byte, error)
}

// New creates a catalog backed by the given data directory. An empty
// directory falls back to the environment override or the default location.
func New(dataDir string) *Catalog {
	if dataDir == "" {
		dataDir = ResolveDataDir("")
	}
	return &Catalog{dataDir: dataDir, readFile: os.ReadFile}
}

// NamesForLocale returns the code-to-name table for a locale. Unsupported
// locales yield an empty table and no error; a malformed table file is an
// error. Results are cached for the process lifetime.
func (c *Catalog) NamesForLocale(locale string) (map[string]string, error) {
	normalized, ok := normalizeLocale(locale)
	if !ok {
		slog.Warn("given locale is not supported", "locale", locale)
		return map[string]string{}, nil
	}

	if cached, ok := c.tables.Load(normalized); ok {
		return cached.(map[string]string), nil
	}

	table, err := c.loadLocale(normalized)
	if err != nil {
		return nil, err
	}
	if len(table) > 0 {
		c.tables.Store(normalized, table)
	}
	return table, nil
}

// NameFor resolves a language code into its display name in the given locale.
func (c *Catalog) NameFor(code, locale string) (string, error) {
	table, err := c.NamesForLocale(locale)
	if err != nil {
		return "", err
	}
	name, ok := table[code]
	if !ok {
		return "", fmt.Errorf("code %q in locale %q: %w", code, locale, ErrNameNotFound)
	}
	return name, nil
}

// CodeFor resolves a display name back into its language code via exact
// string match against the locale's table. When several codes share one
// display name ("no" and "nb" both map to "Norwegian" in full tables) the
// lowest code wins, so repeated lookups stay stable.
func (c *Catalog) CodeFor(name, locale string) (string, error) {
	table, err := c.NamesForLocale(locale)
	if err != nil {
		return "", err
	}
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if table[code] == name {
			return code, nil
		}
	}
	return "", fmt.Errorf("name %q in locale %q: %w", name, locale, ErrCodeNotFound)
}

// loadLocale reads a locale's table file, retrying while the decoded table
// comes back empty even though the file exists.
func (c *Catalog) loadLocale(locale string) (map[string]string, error) {
	path := filepath.Join(c.dataDir, locale, tableFileName)

	table := map[string]string{}
	for attempt := 0; len(table) == 0 && attempt < maxLoadRetries; attempt++ {
		data, err := c.readFile(path) //nolint:gosec // G304: path built from configured data dir and a validated locale
		if err != nil {
			if os.IsNotExist(err) {
				slog.Warn("given locale is not supported", "locale", locale, "path", path)
				return map[string]string{}, nil
			}
			return nil, fmt.Errorf("failed to read language table for locale %s: %w", locale, err)
		}

		table = map[string]string{}
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to decode language table for locale %s: %w", locale, err)
		}
	}

	return table, nil
}

// normalizeLocale validates a locale string and converts it to the
// underscore form used by the table directory layout (en, de_AT, zh_Hant).
func normalizeLocale(locale string) (string, bool) {
	if locale == "" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	return strings.ReplaceAll(tag.String(), "-", "_"), true
}
