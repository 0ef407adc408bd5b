package song

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coddhisatva/Synthaia-public-version/config"
	"github.com/coddhisatva/Synthaia-public-version/track"
)

// orderedClient replays one response per pipeline call:
// idea, lyrics, melody, continuation, harmony, drums, vocals.
type orderedClient struct {
	responses []string
	calls     int
}

func (c *orderedClient) Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	i := c.calls
	if i >= len(c.responses) {
		i = len(c.responses) - 1
	}
	c.calls++
	return c.responses[i], nil
}

const pipelineMelody = `{"tempo": 120, "key": "C", "scale": "major", "notes": [
	{"pitch": 60, "duration": 1.0}, {"pitch": 62, "duration": 1.0},
	{"pitch": 64, "duration": 1.0}, {"pitch": 65, "duration": 1.0}
]}`

const pipelineDrums = `{"tempo": 120, "notes": [
	{"pitch": 36, "start_time": 0.0, "duration": 0.25},
	{"pitch": 42, "start_time": 0.0, "duration": 0.25},
	{"pitch": 38, "start_time": 1.0, "duration": 0.25}
]}`

func TestCreatePipeline(t *testing.T) {
	assert := assert.New(t)

	client := &orderedClient{responses: []string{
		"### Midnight Trains\nA song about leaving quietly.",
		"[Verse 1]\nmidnight trains are leaving now\nevery window holds a face\nI am learning to let go\nof this familiar place\n\n[Chorus]\nnot reached",
		pipelineMelody,
		pipelineMelody,
		pipelineMelody,
		pipelineDrums,
		pipelineMelody,
	}}

	cfg := config.Config{
		OutputDir:   t.TempDir(),
		Velocity:    64,
		Temperature: 0.7,
	}

	var steps []int
	var messages []string
	progress := func(step, total int, message string) {
		assert.Equal(7, total)
		steps = append(steps, step)
		messages = append(messages, message)
	}

	res, err := Create(context.Background(), cfg, client, "midnight trains", false, progress)
	assert.NoError(err)
	assert.Equal(7, client.calls)
	assert.Equal([]int{1, 2, 3, 4, 5, 6, 7}, steps)
	assert.Contains(messages[6], "Arranging")

	// lyrics file carries concept and lyrics
	body, err := os.ReadFile(res.LyricsPath)
	assert.NoError(err)
	assert.Contains(string(body), "Midnight Trains")
	assert.Contains(string(body), "[Verse 1]")

	// arranged MIDI exists and parses
	s, err := track.ReadFile(res.MidiPath)
	assert.NoError(err)
	assert.NotEmpty(s.Tracks)

	// all intermediate parts were left on disk
	midiDir := filepath.Dir(res.MidiPath)
	entries, err := os.ReadDir(midiDir)
	assert.NoError(err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	joined := strings.Join(names, " ")
	for _, suffix := range []string{"_continuation.mid", "_harmony.mid", "_drums.mid", "_vocals.mid", "_complete.mid"} {
		assert.Contains(joined, suffix)
	}

	assert.Empty(res.AudioPath)
}

func TestCreateFailsOnBadResponses(t *testing.T) {
	client := &orderedClient{responses: []string{
		"idea", "[Verse 1]\nla la la la", "this is not json",
	}}
	cfg := config.Config{OutputDir: t.TempDir(), Velocity: 64}

	_, err := Create(context.Background(), cfg, client, "x", false, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "melody")
}

func TestBaseName(t *testing.T) {
	a := baseName("Midnight Trains!")
	b := baseName("Midnight Trains!")
	assert.True(t, strings.HasPrefix(a, "midnight-trains-"))
	assert.NotEqual(t, a, b)

	assert.True(t, strings.HasPrefix(baseName("???"), "song-"))
}
