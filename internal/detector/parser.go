package detector

import "strings"

const (
	// minSeparator prevents splitting on ordinary single spaces inside the
	// echoed text.
	minSeparator = 6

	// maxSeparator bounds the probing attempts per line.
	maxSeparator = 30
)

// ParseLine splits one raw detector output line into the detected language
// label and the echoed text fragment. The detector pads the two columns with
// a varying number of spaces, so widths are probed from narrow to wide until
// a split yields two non-empty parts. Lines that never split are diagnostic
// noise or "could not detect language" chatter and report ok=false.
func ParseLine(line string) (language, fragment string, ok bool) {
	for width := minSeparator; width <= maxSeparator; width++ {
		parts := strings.Split(line, strings.Repeat(" ", width))
		if len(parts) < 2 {
			continue
		}
		language = strings.TrimSpace(parts[0])
		fragment = strings.TrimSpace(parts[1])
		if language != "" && fragment != "" {
			return language, fragment, true
		}
	}
	return "", "", false
}
