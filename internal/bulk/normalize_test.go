package bulk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text unchanged",
			in:   "the quick brown fox",
			want: "the quick brown fox",
		},
		{
			name: "newlines collapse to spaces",
			in:   "first line\nsecond line\r\nthird line",
			want: "first line second line third line",
		},
		{
			name: "markup stripped",
			in:   "<p>Hello <b>world</b></p>",
			want: "Hello world",
		},
		{
			name: "punctuation stripped",
			in:   "Hello, world! Does it work?",
			want: "Hello world Does it work",
		},
		{
			name: "repeated spaces collapse",
			in:   "too   many    spaces",
			want: "too many spaces",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  padded  ",
			want: "padded",
		},
		{
			name: "accented letters survive",
			in:   "ein Text über Füchse",
			want: "ein Text über Füchse",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "markup-only input",
			in:   "<div></div>\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeTruncates(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("wört ", 400))
	got := Normalize(long)

	runes := []rune(got)
	assert.LessOrEqual(t, len(runes), MaxTextLength)
	assert.True(t, strings.HasPrefix(long, got))
	assert.NotEqual(t, ' ', runes[len(runes)-1])
}
