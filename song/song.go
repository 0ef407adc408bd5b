package song

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/coddhisatva/Synthaia-public-version/arrange"
	"github.com/coddhisatva/Synthaia-public-version/config"
	"github.com/coddhisatva/Synthaia-public-version/gen"
	"github.com/coddhisatva/Synthaia-public-version/render"
	"github.com/coddhisatva/Synthaia-public-version/track"
	"github.com/coddhisatva/Synthaia-public-version/util"
)

// Progress reports pipeline advancement. step counts from 1.
type Progress func(step, total int, message string)

// Result points at everything the pipeline produced.
type Result struct {
	Theme      string
	LyricsPath string
	MidiPath   string
	AudioPath  string
}

const harmonyVelocity = 80
const drumVelocity = 80

// baseName derives a unique, filesystem-safe stem for a song's
// artifacts.
func baseName(theme string) string {
	safe := util.SafeFilename(theme)
	if len(safe) > 30 {
		safe = safe[:30]
	}
	if safe == "" {
		safe = "song"
	}
	return safe + "-" + uuid.NewString()[:8]
}

// Create runs the whole generation pipeline: lyrics, the three
// instrumental parts, drums, vocals, and the final arrangement.
// Every intermediate part is written to disk so a failed run leaves
// usable artifacts behind.
func Create(ctx context.Context, cfg config.Config, client gen.Client, theme string, renderAudio bool, progress Progress) (Result, error) {
	if progress == nil {
		progress = func(int, int, string) {}
	}
	total := 7
	if renderAudio {
		total = 8
	}

	name := baseName(theme)
	songsDir := filepath.Join(cfg.OutputDir, "songs")
	midiDir := filepath.Join(cfg.OutputDir, "midi")
	for _, d := range []string{songsDir, midiDir} {
		if err := os.MkdirAll(d, 0777); err != nil {
			return Result{}, fmt.Errorf("create output dir: %w", err)
		}
	}

	res := Result{Theme: theme}

	progress(1, total, "Generating lyrics")
	idea, err := gen.GenerateIdea(ctx, client, theme, 1, cfg.Temperature)
	if err != nil {
		return res, fmt.Errorf("generate idea: %w", err)
	}
	lyrics, err := gen.GenerateLyrics(ctx, client, idea, "", "", cfg.Temperature)
	if err != nil {
		return res, fmt.Errorf("generate lyrics: %w", err)
	}
	res.LyricsPath = filepath.Join(songsDir, name+".txt")
	body := fmt.Sprintf("# Song Concept\n\n%s\n\n# Lyrics\n\n%s", idea, lyrics)
	if err := os.WriteFile(res.LyricsPath, []byte(body), 0644); err != nil {
		return res, fmt.Errorf("write lyrics: %w", err)
	}

	progress(2, total, "Generating melody")
	melody, err := gen.GenerateMelody(ctx, client, theme, cfg.Temperature)
	if err != nil {
		return res, fmt.Errorf("generate melody: %w", err)
	}
	melodySMF, err := track.Encode(melody, nil, cfg.Velocity)
	if err != nil {
		return res, err
	}
	if err := track.WriteFile(melodySMF, filepath.Join(midiDir, name+".mid")); err != nil {
		return res, err
	}

	progress(3, total, "Generating continuation")
	continuation, err := gen.ContinueMelody(ctx, client, melody, cfg.Temperature)
	if err != nil {
		return res, fmt.Errorf("generate continuation: %w", err)
	}
	continuationSMF, err := track.Encode(continuation, nil, cfg.Velocity)
	if err != nil {
		return res, err
	}
	if err := track.WriteFile(continuationSMF, filepath.Join(midiDir, name+"_continuation.mid")); err != nil {
		return res, err
	}

	progress(4, total, "Generating harmony")
	// harmonize against extracted note timings so rests carry through
	melodyX, err := track.Extract(melodySMF)
	if err != nil {
		return res, err
	}
	continuationX, err := track.Extract(continuationSMF)
	if err != nil {
		return res, err
	}
	harmony, err := gen.Harmonize(ctx, client, melodyX, continuationX, cfg.Temperature)
	if err != nil {
		return res, fmt.Errorf("generate harmony: %w", err)
	}
	harmonySMF, err := track.Encode(harmony, nil, harmonyVelocity)
	if err != nil {
		return res, err
	}
	if err := track.WriteFile(harmonySMF, filepath.Join(midiDir, name+"_harmony.mid")); err != nil {
		return res, err
	}

	progress(5, total, "Generating drums")
	drums, err := gen.GenerateDrums(ctx, client, melody.Tempo, "steady beat with emotional fills", 8, cfg.Temperature)
	if err != nil {
		return res, fmt.Errorf("generate drums: %w", err)
	}
	drumsSMF, err := track.EncodeTimed(drums, drumVelocity)
	if err != nil {
		return res, err
	}
	if err := track.WriteFile(drumsSMF, filepath.Join(midiDir, name+"_drums.mid")); err != nil {
		return res, err
	}

	progress(6, total, "Generating vocals")
	harmonyX, err := track.Extract(harmonySMF)
	if err != nil {
		return res, err
	}
	vocals, words, err := gen.GenerateVocals(ctx, client, melodyX, continuationX, harmonyX, lyrics, cfg.Temperature)
	if err != nil {
		return res, fmt.Errorf("generate vocals: %w", err)
	}
	vocalsSMF, err := track.Encode(vocals, words, cfg.Velocity)
	if err != nil {
		return res, err
	}
	if err := track.WriteFile(vocalsSMF, filepath.Join(midiDir, name+"_vocals.mid")); err != nil {
		return res, err
	}

	progress(7, total, "Arranging final song")
	arranged, err := arrange.Arrange(arrange.Inputs{
		Melody:       melodySMF,
		Continuation: continuationSMF,
		Harmony:      harmonySMF,
		Drums:        drumsSMF,
		Vocals:       vocalsSMF,
	}, arrange.Options{})
	if err != nil {
		return res, err
	}
	res.MidiPath = filepath.Join(midiDir, name+"_complete.mid")
	if err := track.WriteFile(arranged, res.MidiPath); err != nil {
		return res, err
	}

	if renderAudio {
		progress(8, total, "Rendering audio")
		audioDir := filepath.Join(cfg.OutputDir, "audio")
		if err := os.MkdirAll(audioDir, 0777); err != nil {
			return res, fmt.Errorf("create audio dir: %w", err)
		}
		res.AudioPath = filepath.Join(audioDir, name+".wav")
		err = render.MidiToWav(ctx, res.MidiPath, res.AudioPath, render.Options{
			SoundfontPath: cfg.SoundfontPath,
			SampleRate:    cfg.SampleRate,
			Gain:          cfg.Gain,
		})
		if err != nil {
			res.AudioPath = ""
			return res, err
		}
	}

	return res, nil
}
