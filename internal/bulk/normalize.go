package bulk

import (
	"regexp"
	"strings"
)

// MaxTextLength bounds the normalized text handed to the detector. Longer
// inputs add subprocess latency without improving classification.
const MaxTextLength = 1000

var (
	markupPattern     = regexp.MustCompile(`<[^>]*>`)
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}_]`)
	multiSpacePattern = regexp.MustCompile(` {2,}`)
)

// Normalize reduces free-form input to the plain word sequence the detector
// sees: markup and punctuation removed, whitespace collapsed, truncated to
// MaxTextLength runes. The same function is applied before writing the
// detector input and when correlating its output back, so both sides compare
// identical strings.
func Normalize(text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	flat = strings.ReplaceAll(flat, "\r", " ")
	flat = markupPattern.ReplaceAllString(flat, " ")
	flat = nonWordPattern.ReplaceAllString(flat, " ")
	flat = multiSpacePattern.ReplaceAllString(flat, " ")
	flat = strings.TrimSpace(flat)

	runes := []rune(flat)
	if len(runes) > MaxTextLength {
		flat = strings.TrimSpace(string(runes[:MaxTextLength]))
	}
	return flat
}
