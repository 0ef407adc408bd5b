package gen

import (
	"context"
	"fmt"
	"strings"

	"github.com/coddhisatva/Synthaia-public-version/lyric"
	"github.com/coddhisatva/Synthaia-public-version/model"
	"github.com/coddhisatva/Synthaia-public-version/track"
)

const maxAttempts = 3

// completeTrack asks the client for JSON note data and parses it,
// retrying on malformed responses.
func completeTrack(ctx context.Context, c Client, system, prompt string, temperature float64, maxTokens int) (model.Track, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		raw, err := c.Complete(ctx, system, prompt, temperature, maxTokens)
		if err != nil {
			lastErr = err
			continue
		}
		tr, err := track.ParseNotes(raw)
		if err != nil {
			lastErr = err
			continue
		}
		return tr, nil
	}
	return model.Track{}, fmt.Errorf("no valid response after %d attempts: %w", maxAttempts, lastErr)
}

func GenerateIdea(ctx context.Context, c Client, theme string, count int, temperature float64) (string, error) {
	if count < 1 {
		count = 1
	}
	prompt := fmt.Sprintf("Generate %d song ideas based on this theme: %s", count, theme)
	return c.Complete(ctx, ideaSystemPrompt, prompt, temperature, 0)
}

// GenerateLyrics writes full structured lyrics for a concept. Any
// commentary the model emits before the first verse marker is dropped.
func GenerateLyrics(ctx context.Context, c Client, concept, genre, mood string, temperature float64) (string, error) {
	prompt := fmt.Sprintf("Write complete song lyrics for this concept:\n\n%s", concept)
	if genre != "" {
		prompt += fmt.Sprintf("\n\nGenre: %s", genre)
	}
	if mood != "" {
		prompt += fmt.Sprintf("\nMood: %s", mood)
	}

	resp, err := c.Complete(ctx, lyricsSystemPrompt, prompt, temperature, 2500)
	if err != nil {
		return "", err
	}

	lines := strings.Split(resp, "\n")
	for i, line := range lines {
		if strings.Contains(line, "[Verse 1]") || strings.Contains(line, "(Verse 1)") {
			return strings.Join(lines[i:], "\n"), nil
		}
	}
	return resp, nil
}

func GenerateMelody(ctx context.Context, c Client, description string, temperature float64) (model.Track, error) {
	prompt := fmt.Sprintf("Create a melody for: %s", description)
	return completeTrack(ctx, c, melodySystemPrompt, prompt, temperature, 4000)
}

// ContinueMelody generates a phrase that follows the given melody. The
// continuation keeps the original tempo regardless of what the model
// returns.
func ContinueMelody(ctx context.Context, c Client, original model.Track, temperature float64) (model.Track, error) {
	var pitches []string
	for i, n := range original.Notes {
		if i == 8 {
			break
		}
		pitches = append(pitches, fmt.Sprintf("pitch %d", n.Pitch))
	}

	prompt := fmt.Sprintf(`Continue this melody:

Original melody:
- Tempo: %d BPM
- Number of notes: %d
- First notes: %s

Generate a continuation of approximately %d notes that completes this musical idea.`,
		original.Tempo, len(original.Notes), strings.Join(pitches, ", "), len(original.Notes))

	tr, err := completeTrack(ctx, c, continuationSystemPrompt, prompt, temperature, 6000)
	if err != nil {
		return model.Track{}, err
	}
	tr.Tempo = original.Tempo
	return tr, nil
}

// CombineParts concatenates two extracted tracks into one sequence,
// shifting the second part to start where the first ends.
func CombineParts(part1, part2 model.Track) model.Track {
	end := part1.End()
	notes := make([]model.Note, 0, len(part1.Notes)+len(part2.Notes))
	notes = append(notes, part1.Notes...)
	for _, n := range part2.Notes {
		n.StartTime += end
		notes = append(notes, n)
	}
	return model.Track{
		Tempo:        part1.Tempo,
		Key:          part1.Key,
		Scale:        part1.Scale,
		Notes:        notes,
		TicksPerBeat: part1.TicksPerBeat,
	}
}

// Harmonize generates a harmony line spanning both melody parts played
// back to back.
func Harmonize(ctx context.Context, c Client, part1, part2 model.Track, temperature float64) (model.Track, error) {
	combined := CombineParts(part1, part2)

	var preview []string
	for i, n := range combined.Notes {
		if i == 10 {
			break
		}
		preview = append(preview, fmt.Sprintf("pitch %d at beat %g (duration: %g)", n.Pitch, n.StartTime, n.Duration))
	}

	prompt := fmt.Sprintf(`Create a harmony/counter-melody for this combined melody:

Original melody:
- Tempo: %d BPM
- Total notes: %d
- Total duration: %.2f beats
- Structure: %d notes in part 1, %d notes in part 2
- First notes (with durations): %s

CRITICAL REQUIREMENTS:
1. Generate EXACTLY %d notes - no more, no less
2. Match the rhythm pattern of the original melody
3. Total duration should be approximately %.2f beats
4. Transpose notes DOWN by approximately 12 semitones; follow closely during the first %d notes
5. Gradually diverge more in the second half (counter-melody)

Return ONLY valid JSON, no text before or after.`,
		combined.Tempo, len(combined.Notes), combined.End(),
		len(part1.Notes), len(part2.Notes), strings.Join(preview, ", "),
		len(combined.Notes), combined.End(), len(part1.Notes))

	tr, err := completeTrack(ctx, c, harmonizeSystemPrompt, prompt, temperature, 10000)
	if err != nil {
		return model.Track{}, err
	}
	tr.Tempo = combined.Tempo
	return tr, nil
}

// GenerateDrums produces a percussion pattern at the given tempo. Notes
// carry explicit start times so simultaneous hits survive encoding; the
// returned track is assigned to the percussion channel.
func GenerateDrums(ctx context.Context, c Client, tempo int, description string, measures int, temperature float64) (model.Track, error) {
	if measures <= 0 {
		measures = 8
	}
	totalBeats := measures * 4

	prompt := fmt.Sprintf(`Generate a drum pattern with this vibe:

"%s"

Requirements:
- Tempo: %d BPM
- Time signature: 4/4
- MUST be exactly %d measures = %d beats long
- Pattern MUST span from beat 0.0 all the way to beat %d.0
- Use dynamics and fills to match the described vibe
- Remember: multiple drums can play at the same time (same start_time)

Return pure JSON only, with no comments.`,
		description, tempo, measures, totalBeats, totalBeats)

	tr, err := completeTrack(ctx, c, drumsSystemPrompt, prompt, temperature, 15000)
	if err != nil {
		return model.Track{}, err
	}
	tr.Tempo = tempo
	tr.Channel = model.RoleChannels[model.RoleDrums]
	return tr, nil
}

// GenerateVocals composes a vocal melody over the instrumental parts
// and maps the first verse of the lyrics onto it.
func GenerateVocals(ctx context.Context, c Client, melody, continuation, harmony model.Track, lyricsText string, temperature float64) (model.Track, []model.WordMapping, error) {
	verse := lyric.FirstVerse(lyricsText)
	totalMelodyNotes := len(melody.Notes) + len(continuation.Notes)

	prompt := fmt.Sprintf(`Generate a vocal melody for this arrangement:

Instrumental context:
- Tempo: %d BPM
- Length: 8 measures (32 beats total in 4/4 time)
- Main melody: %d notes (piano/lead)
- Counter-melody: %d notes (guitar/synth, lower octave)

First verse lyrics:
%s

CRITICAL REQUIREMENT - LENGTH:
The vocal melody MUST span the full 8 measures (32 beats).
Write roughly one note per syllable so the verse fits the melody.`,
		melody.Tempo, totalMelodyNotes, len(harmony.Notes), verse)

	tr, err := completeTrack(ctx, c, vocalsSystemPrompt, prompt, temperature, 10000)
	if err != nil {
		return model.Track{}, nil, err
	}
	tr.Tempo = melody.Tempo
	tr.Channel = model.RoleChannels[model.RoleVocals]

	words := lyric.MapWords(lyric.Words(verse), tr.Notes)
	return tr, words, nil
}
