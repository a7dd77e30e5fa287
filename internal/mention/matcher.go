package mention

// Package mention detects which other languages are named inside a text,
// e.g. a German sentence mentioning "Englisch und Polnisch". Matching runs
// in two passes: a cheap half-name containment pre-filter followed by a
// containment-or-similarity confirmation over the surviving pairs.

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/MeKo-Tech/lingua/internal/catalog"
)

// DefaultSimilarityThreshold is the minimal similarity percentage between a
// word and a full language name for the word to count as a mention.
const DefaultSimilarityThreshold = 85.0

var (
	markupPattern  = regexp.MustCompile(`<[^>]*>`)
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_]`)
)

// Config holds mention matching settings.
type Config struct {
	// SimilarityThreshold is the acceptance percentage for the fuzzy pass.
	SimilarityThreshold float64

	// SupportedCodes restricts which languages are eligible for matching.
	SupportedCodes []string
}

// DefaultConfig returns the default mention matching settings.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: DefaultSimilarityThreshold,
		SupportedCodes:      DefaultSupportedCodes(),
	}
}

// Matcher finds languages mentioned by name inside a text.
type Matcher struct {
	catalog   *catalog.Catalog
	threshold float64
	supported map[string]struct{}
}

// New creates a matcher resolving language names through the given catalog.
func New(cat *catalog.Catalog, cfg Config) *Matcher {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if len(cfg.SupportedCodes) == 0 {
		cfg.SupportedCodes = DefaultSupportedCodes()
	}
	supported := make(map[string]struct{}, len(cfg.SupportedCodes))
	for _, code := range cfg.SupportedCodes {
		supported[code] = struct{}{}
	}
	return &Matcher{
		catalog:   cat,
		threshold: cfg.SimilarityThreshold,
		supported: supported,
	}
}

// candidate pairs a filtered word with the language whose half-name it
// contains. A word is paired with the first matching language only; a word
// whose best match is a later language is dropped, a known imprecision kept
// for speed.
type candidate struct {
	word string
	code string
	name string
}

// FindMentioned returns the names of languages mentioned inside haystack,
// deduplicated in first-seen order. Names are searched using searchLocale's
// language tables; when displayLocale is non-empty and differs from
// searchLocale, results are translated into displayLocale instead.
func (m *Matcher) FindMentioned(haystack, searchLocale, displayLocale string) ([]string, error) {
	convert := displayLocale != "" && displayLocale != searchLocale

	languages, err := m.catalog.NamesForLocale(searchLocale)
	if err != nil {
		return nil, err
	}

	var matched []string
	seen := make(map[string]struct{})
	emit := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		matched = append(matched, name)
	}

	for _, cand := range m.filterWords(haystack, languages) {
		// The word containing the full language name is the common case and
		// avoids the expensive similarity computation.
		hit := strings.Contains(cand.word, cand.name)
		if !hit {
			hit = SimilarityPercent(cand.word, cand.name) >= m.threshold
		}
		if !hit {
			continue
		}

		if !convert {
			emit(cand.name)
			continue
		}
		translated, err := m.catalog.NameFor(cand.code, displayLocale)
		if err != nil {
			return nil, err
		}
		emit(translated)
	}

	return matched, nil
}

// filterWords is the pre-filter pass: it tokenizes the haystack and keeps
// only words containing the first half of a supported language's name.
// Without this pass the similarity computation would run over every
// (word x language) pair, which is far too slow for real texts.
func (m *Matcher) filterWords(haystack string, languages map[string]string) []candidate {
	// Deterministic scan order; map iteration alone would make the
	// first-match-wins policy flap between runs.
	codes := make([]string, 0, len(languages))
	for code := range languages {
		if _, ok := m.supported[code]; ok {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	var candidates []candidate
	seenWords := make(map[string]struct{})

	for _, token := range strings.Fields(markupPattern.ReplaceAllString(haystack, " ")) {
		word := nonWordPattern.ReplaceAllString(token, "")
		if word == "" {
			continue
		}
		if _, dup := seenWords[word]; dup {
			continue
		}
		seenWords[word] = struct{}{}

		for _, code := range codes {
			name := languages[code]
			if name == "" {
				continue
			}
			if strings.Contains(word, halfName(name)) {
				candidates = append(candidates, candidate{word: word, code: code, name: name})
				break
			}
		}
	}

	return candidates
}

// halfName returns the first half of a language name, rounded up on odd
// lengths, measured in runes.
func halfName(name string) string {
	runes := []rune(name)
	half := int(math.Round(float64(len(runes)) / 2.0))
	return string(runes[:half])
}
