package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/coddhisatva/Synthaia-public-version/channel"
	"github.com/coddhisatva/Synthaia-public-version/model"
	"github.com/coddhisatva/Synthaia-public-version/track"
)

// Quality bundles the fluidsynth settings a preset controls.
type Quality struct {
	SampleRate int
	Gain       float64
}

var QualityPresets = map[string]Quality{
	"low":    {SampleRate: 22050, Gain: 0.8},
	"medium": {SampleRate: 44100, Gain: 1.0},
	"high":   {SampleRate: 48000, Gain: 1.0},
	"ultra":  {SampleRate: 96000, Gain: 1.2},
}

type Options struct {
	SoundfontPath string
	SampleRate    int
	Gain          float64
	// Instruments maps channel to GM program. Nil uses the default
	// arrangement policy.
	Instruments map[uint8]uint8
}

func (o Options) sampleRate() int {
	if o.SampleRate > 0 {
		return o.SampleRate
	}
	return 44100
}

func (o Options) gain() float64 {
	if o.Gain > 0 {
		return o.Gain
	}
	return 1.0
}

// MidiToWav renders a MIDI file to WAV with fluidsynth. The instrument
// policy is baked into a temporary copy of the file first, since most
// arrangement MIDI carries no program changes of its own.
func MidiToWav(ctx context.Context, midiPath, wavPath string, opts Options) error {
	if _, err := os.Stat(opts.SoundfontPath); err != nil {
		return fmt.Errorf("%w: soundfont %v", model.ErrNotFound, opts.SoundfontPath)
	}

	s, err := track.ReadFile(midiPath)
	if err != nil {
		return err
	}

	policy := opts.Instruments
	if policy == nil {
		policy = channel.DefaultInstruments
	}
	prepared := channel.ApplyInstruments(s, policy)

	tmp := filepath.Join(filepath.Dir(wavPath), ".tmp_"+filepath.Base(midiPath))
	if err := track.WriteFile(prepared, tmp); err != nil {
		return err
	}
	defer os.Remove(tmp)

	cmd := exec.CommandContext(ctx, "fluidsynth",
		"-ni",
		"-F", wavPath,
		"-r", strconv.Itoa(opts.sampleRate()),
		"-g", strconv.FormatFloat(opts.gain(), 'f', -1, 64),
		opts.SoundfontPath,
		tmp,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: fluidsynth: %v: %s", model.ErrIO, err, out)
	}
	return nil
}
