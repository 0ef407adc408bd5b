package lyric

import (
	"testing"

	"github.com/coddhisatva/Synthaia-public-version/model"
	"github.com/stretchr/testify/assert"
)

func equalNotes(count int, duration float64) []model.Note {
	notes := make([]model.Note, count)
	for i := range notes {
		notes[i] = model.Note{Pitch: uint8(60 + i), Duration: duration}
	}
	return notes
}

func TestMapWordsOneNotePerWord(t *testing.T) {
	assert := assert.New(t)

	mappings := MapWords([]string{"la", "la", "la", "la"}, equalNotes(4, 1.0))
	assert.Len(mappings, 4)
	for i, m := range mappings {
		assert.Equal("la", m.Word)
		assert.Equal(uint8(60+i), m.Pitch)
		assert.Equal(float64(i), m.StartSecs)
		assert.Equal(1.0, m.DurSecs)
	}
}

func TestMapWordsCountInvariant(t *testing.T) {
	assert := assert.New(t)

	// fewer words than notes: exactly len(words) entries
	mappings := MapWords([]string{"hello", "world"}, equalNotes(7, 0.5))
	assert.Len(mappings, 2)

	// last word absorbs the remainder
	assert.Equal(3*0.5, mappings[0].DurSecs)
	assert.Equal(4*0.5, mappings[1].DurSecs)
}

func TestMapWordsMoreWordsThanNotes(t *testing.T) {
	// groups past the note count are skipped
	mappings := MapWords([]string{"a", "b", "c", "d"}, equalNotes(2, 1.0))
	assert.Len(t, mappings, 2)
}

func TestMapWordsLongestNoteWins(t *testing.T) {
	assert := assert.New(t)

	notes := []model.Note{
		{Pitch: 60, Duration: 0.5},
		{Pitch: 64, Duration: 2.0},
		{Pitch: 67, Duration: 2.0}, // tie: first occurrence (64) wins
	}
	mappings := MapWords([]string{"word"}, notes)
	assert.Len(mappings, 1)
	assert.Equal(uint8(64), mappings[0].Pitch)
	assert.Equal(0.0, mappings[0].StartSecs)
	assert.Equal(4.5, mappings[0].DurSecs)
}

func TestMapWordsEmptyInputs(t *testing.T) {
	assert.Empty(t, MapWords(nil, equalNotes(4, 1.0)))
	assert.Empty(t, MapWords([]string{"la"}, nil))
}

func TestMapWordsMonotonicStarts(t *testing.T) {
	notes := []model.Note{
		{Pitch: 60, Duration: 0.25},
		{Pitch: 62, Duration: 1.5},
		{Pitch: 64, Duration: 0.75},
		{Pitch: 65, Duration: 2.0},
		{Pitch: 67, Duration: 0.5},
	}
	mappings := MapWords([]string{"one", "two"}, notes)
	for i := 1; i < len(mappings); i++ {
		assert.GreaterOrEqual(t, mappings[i].StartSecs, mappings[i-1].StartSecs)
	}
}

func TestFirstVerse(t *testing.T) {
	assert := assert.New(t)

	lyrics := `[Verse 1]
Walking down the empty street
Shadows falling at my feet

[Chorus]
This should not appear`

	verse := FirstVerse(lyrics)
	assert.Equal("Walking down the empty street\nShadows falling at my feet", verse)
}

func TestFirstVerseSkipsParenMarkers(t *testing.T) {
	lyrics := "(Verse 1)\nFirst line\nSecond line"
	assert.Equal(t, "First line\nSecond line", FirstVerse(lyrics))
}

func TestFirstVerseCapsAtFourLines(t *testing.T) {
	lyrics := "one\ntwo\nthree\nfour\nfive\nsix"
	assert.Equal(t, "one\ntwo\nthree\nfour", FirstVerse(lyrics))
}

func TestSanitizeTypographicPunctuation(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("don't", Sanitize("don’t"))
	assert.Equal(`"quoted"`, Sanitize("“quoted”"))
	assert.Equal("wait...", Sanitize("wait…"))
	assert.Equal("side-by-side", Sanitize("side—by–side"))
	assert.Equal("plain space", Sanitize("plain space"))
}

func TestSanitizeDropsUnmappable(t *testing.T) {
	// no ASCII equivalent: dropped rather than failing
	assert.Equal(t, "note", Sanitize("note♪"))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Words("a b\nc"))
	assert.Empty(t, Words("  \n "))
}
