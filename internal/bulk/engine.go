package bulk

// Package bulk orchestrates batch language detection: it fans texts out to
// the external detector, correlates the detector's unordered and unlabeled
// output lines back to the originating requests, and enriches each result
// with catalog names, ISO codes and mentioned languages.

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/MeKo-Tech/lingua/internal/catalog"
	"github.com/MeKo-Tech/lingua/internal/common"
	"github.com/MeKo-Tech/lingua/internal/detector"
	"github.com/MeKo-Tech/lingua/internal/mention"
)

// detectionLocale is the locale the detector reports language names in.
const detectionLocale = "en"

// LanguageInformation is one classification result for one input text.
type LanguageInformation struct {
	// ID is the request identifier issued for the originating text,
	// unique per engine call.
	ID string `json:"id" yaml:"id"`

	// Text is the original input, before normalization.
	Text string `json:"text" yaml:"text"`

	// Language is the language display name, translated into the caller's
	// display locale when one was requested.
	Language string `json:"language" yaml:"language"`

	// Code is the ISO 639-1 two-letter code, empty when the detected name
	// could not be resolved against the catalog.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	// ThreeLetterCode is the ISO 639-2 code, resolved from Code when known.
	ThreeLetterCode string `json:"threeLetterCode,omitempty" yaml:"threeLetterCode,omitempty"`

	// MentionedLanguages lists languages the text talks about, deduplicated
	// in first-seen order.
	MentionedLanguages []string `json:"mentionedLanguages,omitempty" yaml:"mentionedLanguages,omitempty"`
}

// Engine drives bulk detection across the detector gateway, the language
// catalog and the mention matcher.
type Engine struct {
	gateway *detector.Gateway
	catalog *catalog.Catalog
	matcher *mention.Matcher
}

// NewEngine assembles a detection engine from its collaborators.
func NewEngine(gw *detector.Gateway, cat *catalog.Catalog, m *mention.Matcher) *Engine {
	return &Engine{gateway: gw, catalog: cat, matcher: m}
}

// request tracks one input text through a batch.
type request struct {
	id         string
	original   string
	normalized string
	path       string
}

// Detect classifies a single text. It returns nil when the detector could
// not identify a language for the input.
func (e *Engine) Detect(ctx context.Context, text, displayLocale string) (*LanguageInformation, error) {
	results, err := e.DetectMany(ctx, []string{text}, displayLocale)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// DetectMany classifies a batch of texts. Each text receives a fresh UUID
// request ID; the detector output lines carry no identifiers, so every line
// is matched back to its request by scanning for the request's normalized
// text as a substring. Inputs whose result cannot be correlated or parsed
// are quarantined and skipped; the batch itself only fails when the detector
// is unusable.
func (e *Engine) DetectMany(ctx context.Context, texts []string, displayLocale string) ([]LanguageInformation, error) {
	if err := e.gateway.Health(); err != nil {
		return nil, err
	}

	batchID := uuid.NewString()

	var requests []*request
	for _, text := range texts {
		normalized := Normalize(text)
		if normalized == "" {
			// Nothing the detector could classify; not a failure.
			continue
		}
		requests = append(requests, &request{
			id:         uuid.NewString(),
			original:   text,
			normalized: normalized,
		})
	}
	if len(requests) == 0 {
		return nil, nil
	}

	var paths []string
	for _, req := range requests {
		// The detector is line oriented and ignores input without a
		// terminating newline.
		path, err := e.gateway.WriteInput(req.id, req.normalized+"\n")
		if err != nil {
			return nil, err
		}
		req.path = path
		paths = append(paths, path)
	}
	defer e.gateway.RemoveInputs(paths)

	timer := common.NewNamedTimer("detect-batch")
	lines, err := e.gateway.DetectBatch(ctx, paths)
	if err != nil {
		return nil, err
	}
	slog.Debug("detector batch finished",
		"batch", batchID,
		"inputs", len(requests),
		"lines", len(lines),
		"duration", timer.Stop(),
	)

	var results []LanguageInformation
	for _, req := range requests {
		line, ok := e.claimLine(req, &lines)
		if !ok {
			e.quarantine(batchID, req, "no detector output matched input")
			continue
		}

		languageName, _, ok := detector.ParseLine(line)
		if !ok {
			e.quarantine(batchID, req, "unparseable detector output")
			continue
		}

		results = append(results, e.buildResult(req, languageName, displayLocale))
	}
	return results, nil
}

// claimLine finds the first detector output line containing the request's
// persisted normalized text and removes it from the candidate pool, so a
// later request with identical content cannot claim the same line twice.
// The persisted file is re-read rather than trusting the in-memory copy;
// the write path is the single source of truth for what the detector saw.
func (e *Engine) claimLine(req *request, lines *[]string) (string, bool) {
	content, err := os.ReadFile(req.path) //nolint:gosec // G304: path built from our own scratch dir
	if err != nil {
		slog.Error("failed to re-read detector input", "id", req.id, "error", err)
		return "", false
	}
	needle := strings.TrimSpace(string(content))
	if needle == "" {
		return "", false
	}

	for i, line := range *lines {
		if strings.Contains(line, needle) {
			*lines = append((*lines)[:i], (*lines)[i+1:]...)
			return line, true
		}
	}
	return "", false
}

func (e *Engine) quarantine(batchID string, req *request, reason string) {
	target := e.gateway.Quarantine(batchID, req.path)
	slog.Error("language detection failed for input",
		"id", req.id,
		"batch", batchID,
		"reason", reason,
		"quarantined", target,
	)
}

// buildResult resolves codes and names for one correlated detection and
// gathers the languages the text mentions. Lookup misses degrade the result
// instead of failing it: a name the catalog does not know simply yields no
// codes.
func (e *Engine) buildResult(req *request, languageName, displayLocale string) LanguageInformation {
	info := LanguageInformation{
		ID:       req.id,
		Text:     req.original,
		Language: languageName,
	}

	code, err := e.catalog.CodeFor(languageName, detectionLocale)
	if err != nil {
		slog.Warn("detected language not in catalog", "language", languageName, "error", err)
	} else {
		info.Code = code
		if three, err := catalog.ThreeLetterCode(code); err == nil {
			info.ThreeLetterCode = three
		}
		if displayLocale != "" && displayLocale != detectionLocale {
			if name, err := e.catalog.NameFor(code, displayLocale); err == nil {
				info.Language = name
			} else {
				slog.Warn("no localized name for detected language",
					"code", code, "locale", displayLocale, "error", err)
			}
		}
	}

	// Mentions are searched in the text's own language, so a Polish text
	// naming languages in Polish is matched against the pl table. Only an
	// unresolvable detection falls back to the detection locale.
	searchLocale := detectionLocale
	if info.Code != "" {
		searchLocale = info.Code
	}
	mentioned, err := e.matcher.FindMentioned(req.original, searchLocale, displayLocale)
	if err != nil {
		slog.Warn("mention matching failed", "id", req.id, "error", err)
	} else {
		info.MentionedLanguages = mentioned
	}
	return info
}
