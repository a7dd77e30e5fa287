package mention

import (
	"testing"

	"github.com/MeKo-Tech/lingua/internal/catalog"
	"github.com/MeKo-Tech/lingua/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	return New(catalog.New(testutil.GetLanguagesDir(t)), DefaultConfig())
}

func TestFindMentioned_GermanTextMentioningLanguages(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.FindMentioned("Dies ist ein Text über Englisch und Polnisch", "de", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Englisch", "Polnisch"}, got)
}

func TestFindMentioned_TranslatedIntoDisplayLocale(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.FindMentioned("Dies ist ein Text über Englisch und Polnisch", "de", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"English", "Polish"}, got)
}

func TestFindMentioned_EmptyHaystack(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.FindMentioned("", "de", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindMentioned_UnsupportedLocale(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.FindMentioned("some text naming English", "this is no locale", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindMentioned_NoMentions(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.FindMentioned("Der Hund läuft schnell durch den Garten", "de", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindMentioned_Deduplicates(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.FindMentioned("English and more English and even more English", "en", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"English"}, got)
}

func TestFindMentioned_StripsMarkup(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.FindMentioned("<p>Ein Absatz über <b>Polnisch</b></p>", "de", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Polnisch"}, got)
}

func TestFindMentioned_FuzzyMatchTolleratesInflection(t *testing.T) {
	m := newTestMatcher(t)

	// "Englische" shares the half-name prefix and scores above the
	// similarity threshold against "Englisch".
	got, err := m.FindMentioned("Eine englische Konversation über Englische Literatur", "de", "")
	require.NoError(t, err)
	assert.Contains(t, got, "Englisch")
}

func TestFindMentioned_RejectsDissimilarWords(t *testing.T) {
	m := newTestMatcher(t)

	// "Engl" passes the half-name pre-filter for "Englisch" but falls
	// well short of the similarity threshold.
	got, err := m.FindMentioned("Engl", "de", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindMentioned_PunctuationAroundNames(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.FindMentioned("Sprachen: Englisch, Polnisch.", "de", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Englisch", "Polnisch"}, got)
}

func TestHalfName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Englisch", "Engl"},
		{"English", "Engl"}, // 7 runes round up to 4
		{"Polnisch", "Poln"},
		{"chiński", "chiń"},
		{"a", "a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, halfName(tt.name), "half of %q", tt.name)
	}
}
