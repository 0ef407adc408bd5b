// Package lyric distributes lyric words across note sequences and
// prepares lyric text for embedding as MIDI meta-events.
package lyric

import (
	"regexp"
	"strings"

	"github.com/coddhisatva/Synthaia-public-version/model"
)

// MapWords partitions notes into one contiguous group per word and
// emits a WordMapping per non-empty group. The representative pitch is
// the longest note in the group (first occurrence wins ties), start is
// the group's first note's cumulative start, duration is the group sum.
// Empty words or notes produce an empty result; that is a valid
// degenerate case, not an error.
func MapWords(words []string, notes []model.Note) []model.WordMapping {
	if len(words) == 0 || len(notes) == 0 {
		return nil
	}

	// cumulative start per note
	starts := make([]float64, len(notes))
	var cursor float64
	for i, n := range notes {
		starts[i] = cursor
		cursor += n.Duration
	}

	notesPerWord := len(notes) / len(words)
	if notesPerWord < 1 {
		notesPerWord = 1
	}

	var res []model.WordMapping
	for i, word := range words {
		start := i * notesPerWord
		end := start + notesPerWord
		if i == len(words)-1 {
			// last word absorbs the remainder
			end = len(notes)
		}
		if start >= len(notes) {
			break
		}
		if end > len(notes) {
			end = len(notes)
		}
		group := notes[start:end]
		if len(group) == 0 {
			continue
		}

		longest := 0
		var total float64
		for j, n := range group {
			if n.Duration > group[longest].Duration {
				longest = j
			}
			total += n.Duration
		}

		res = append(res, model.WordMapping{
			Word:      word,
			Pitch:     group[longest].Pitch,
			StartSecs: starts[start],
			DurSecs:   total,
		})
	}
	return res
}

// Words splits verse text into plain words.
func Words(verse string) []string {
	var res []string
	for _, w := range strings.Fields(strings.ReplaceAll(verse, "\n", " ")) {
		if w = strings.TrimSpace(w); w != "" {
			res = append(res, w)
		}
	}
	return res
}

var parenMarker = regexp.MustCompile(`^\s*\([A-Za-z\s\d]+\)\s*$`)

// FirstVerse extracts the first verse from full lyrics text. It stops
// at later section markers, skips structural markers like [Verse 1] or
// (Chorus), and caps the verse at 4 lines to fit an 8-measure
// arrangement.
func FirstVerse(lyrics string) string {
	stopMarkers := []string{"[Chorus]", "[Verse 2]", "[Bridge]", "[Outro]"}

	var verse []string
	for _, line := range strings.Split(lyrics, "\n") {
		stopped := false
		for _, m := range stopMarkers {
			if strings.Contains(line, m) {
				stopped = true
				break
			}
		}
		if stopped {
			break
		}
		if parenMarker.MatchString(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
			verse = append(verse, line)
		}
		if len(verse) >= 4 {
			break
		}
	}
	return strings.Join(verse, "\n")
}

// MIDI lyric meta-events are single-byte text, so typographic
// punctuation from upstream text generation has to be transliterated
// before encoding.
var transliterations = strings.NewReplacer(
	"’", "'", // right single quote
	"‘", "'", // left single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"„", `"`, // double low-9 quote
	"‟", `"`, // double high-reversed-9 quote
	"—", "-", // em dash
	"–", "-", // en dash
	"‒", "-", // figure dash
	"―", "-", // horizontal bar
	"…", "...", // ellipsis
	"•", "*", // bullet
	" ", " ", // non-breaking space
	" ", " ", // en space
	" ", " ", // em space
	" ", " ", // thin space
	"«", `"`, // left guillemet
	"»", `"`, // right guillemet
	"′", "'", // prime
	"″", `"`, // double prime
	"ʼ", "'", // modifier letter apostrophe
)

// Sanitize transliterates typographic punctuation to ASCII equivalents
// and drops any character that still has no single-byte representation.
func Sanitize(word string) string {
	replaced := transliterations.Replace(word)
	var b strings.Builder
	for _, r := range replaced {
		if r <= 0xFF {
			b.WriteRune(r)
		}
	}
	return b.String()
}
