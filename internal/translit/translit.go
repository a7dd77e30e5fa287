package translit

// Package translit folds language-specific special characters into their
// ASCII equivalents. Downstream services disagree on the folding convention
// ("ö" becomes "o" for some, "oe" for others), so callers pick between the
// direct single-letter maps and the digraph map where one exists.

import "strings"

var polishMap = map[string]string{
	"ą": "a",
	"ć": "c",
	"ę": "e",
	"ł": "l",
	"ń": "n",
	"ó": "o",
	"ś": "s",
	"ź": "z",
	"ż": "z",
}

var germanMap = map[string]string{
	"ä": "a",
	"ö": "o",
	"ü": "u",
	"ß": "s",
}

var swedishMap = map[string]string{
	"å": "a",
	"ä": "a",
	"ö": "o",
	"é": "e",
	"ü": "u",
}

var norwegianDigraphMap = map[string]string{
	"æ": "ae",
	"ø": "oe",
	"å": "aa",
}

// Escape replaces the special characters of the language named by its ISO
// 639-2 code, preserving letter case. Unsupported codes return the text
// unchanged. With direct=true the single-letter maps apply; direct=false
// selects the digraph convention, currently only defined for Norwegian.
func Escape(text, isoCode3 string, direct bool) string {
	var table map[string]string
	if direct {
		switch strings.ToLower(isoCode3) {
		case "deu":
			table = germanMap
		case "pol":
			table = polishMap
		case "swe":
			table = swedishMap
		}
	} else if strings.ToLower(isoCode3) == "nor" {
		table = norwegianDigraphMap
	}
	if table == nil {
		return text
	}

	for from, to := range table {
		text = strings.ReplaceAll(text, from, to)
		text = strings.ReplaceAll(text, strings.ToUpper(from), strings.ToUpper(to))
	}
	return text
}
