// Package track converts between the in-memory note representation
// and Standard MIDI File event streams.
package track

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/coddhisatva/Synthaia-public-version/lyric"
	"github.com/coddhisatva/Synthaia-public-version/model"
	"github.com/coddhisatva/Synthaia-public-version/timing"
)

// DefaultVelocity is used when the caller supplies no override.
const DefaultVelocity uint8 = 64

// ReadFile loads and parses a MIDI file.
func ReadFile(path string) (s *smf.SMF, e error) {
	// the smf reader panics on certain malformed inputs
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = fmt.Errorf("%w: %v", model.ErrFormat, r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: midi file %s", model.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", model.ErrIO, path, err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", model.ErrFormat, path, err)
	}
	return res, nil
}

// WriteFile saves an encoded stream, creating parent directories.
func WriteFile(s *smf.SMF, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("%w: creating %s: %v", model.ErrIO, dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", model.ErrIO, path, err)
	}
	defer f.Close()
	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("%w: writing %s: %v", model.ErrIO, path, err)
	}
	return nil
}

type absEvent struct {
	tick uint32
	msg  smf.Message
}

// Encode serializes a track to an SMF stream: tempo meta-event first,
// 4/4 time signature, then the note events. Rests (pitch 0) advance
// time without a sounding event. When word mappings are present, lyric
// meta-events are merged in by absolute tick with a stable sort before
// delta re-encoding.
func Encode(tr model.Track, words []model.WordMapping, velocity uint8) (*smf.SMF, error) {
	if tr.Tempo <= 0 {
		return nil, fmt.Errorf("%w: tempo %d", model.ErrInvalidTrack, tr.Tempo)
	}
	tpb := tr.TicksPerBeat
	if tpb == 0 {
		tpb = timing.TicksPerBeat
	}
	if velocity == 0 {
		velocity = DefaultVelocity
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(tpb)

	var t smf.Track
	t.Add(0, smf.MetaTempo(float64(tr.Tempo)))
	t.Add(0, smf.MetaMeter(4, 4))

	if len(words) == 0 {
		var rest uint32 // accumulated rest delay carried into the next note-on
		for _, n := range tr.Notes {
			durTicks, err := timing.BeatsToTicks(n.Duration, tpb)
			if err != nil {
				return nil, err
			}
			if n.IsRest() {
				rest += durTicks
				continue
			}
			t.Add(rest, midi.NoteOn(tr.Channel, n.Pitch, velocity))
			t.Add(durTicks, midi.NoteOff(tr.Channel, n.Pitch))
			rest = 0
		}
		t.Close(rest)
		s.Add(t)
		return s, nil
	}

	var events []absEvent
	var cursor uint32
	for _, n := range tr.Notes {
		durTicks, err := timing.BeatsToTicks(n.Duration, tpb)
		if err != nil {
			return nil, err
		}
		if n.IsRest() {
			cursor += durTicks
			continue
		}
		events = append(events, absEvent{cursor, smf.Message(midi.NoteOn(tr.Channel, n.Pitch, velocity))})
		events = append(events, absEvent{cursor + durTicks, smf.Message(midi.NoteOff(tr.Channel, n.Pitch))})
		cursor += durTicks
	}
	for _, w := range words {
		tick, err := timing.SecondsToTicks(w.StartSecs, tr.Tempo, tpb)
		if err != nil {
			return nil, err
		}
		events = append(events, absEvent{tick, smf.Message(smf.MetaLyric(lyric.Sanitize(w.Word)))})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var last uint32
	for _, e := range events {
		t.Add(e.tick-last, e.msg)
		last = e.tick
	}
	t.Close(0)
	s.Add(t)
	return s, nil
}

// EncodeTimed serializes a track whose notes carry explicit start
// times, e.g. drum patterns with simultaneous hits. All events land on
// the track's channel; a program-change is emitted at tick 0 so the
// channel is initialized even on the percussion channel.
func EncodeTimed(tr model.Track, velocity uint8) (*smf.SMF, error) {
	if tr.Tempo <= 0 {
		return nil, fmt.Errorf("%w: tempo %d", model.ErrInvalidTrack, tr.Tempo)
	}
	tpb := tr.TicksPerBeat
	if tpb == 0 {
		tpb = timing.TicksPerBeat
	}
	if velocity == 0 {
		velocity = DefaultVelocity
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(tpb)

	var t smf.Track
	t.Add(0, smf.MetaTempo(float64(tr.Tempo)))
	t.Add(0, smf.MetaMeter(4, 4))
	t.Add(0, midi.ProgramChange(tr.Channel, 0))

	var events []absEvent
	for _, n := range tr.Notes {
		if n.IsRest() {
			continue
		}
		onTick, err := timing.BeatsToTicks(n.StartTime, tpb)
		if err != nil {
			return nil, err
		}
		durTicks, err := timing.BeatsToTicks(n.Duration, tpb)
		if err != nil {
			return nil, err
		}
		events = append(events, absEvent{onTick, smf.Message(midi.NoteOn(tr.Channel, n.Pitch, velocity))})
		events = append(events, absEvent{onTick + durTicks, smf.Message(midi.NoteOff(tr.Channel, n.Pitch))})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var last uint32
	for _, e := range events {
		t.Add(e.tick-last, e.msg)
		last = e.tick
	}
	t.Close(0)
	s.Add(t)
	return s, nil
}

// Extract reconstructs a track from an event stream by pairing note-on
// and note-off events per pitch. A note-on with zero velocity counts as
// a note-off. Tempo comes from the first tempo meta-event, defaulting
// to 120 BPM. A second note-on for an already sounding pitch overwrites
// the pending start marker; same-pitch polyphony is a known
// simplification, not supported.
func Extract(s *smf.SMF) (model.Track, error) {
	if s == nil {
		return model.Track{}, fmt.Errorf("%w: nil stream", model.ErrFormat)
	}
	tpb := uint16(timing.TicksPerBeat)
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		tpb = uint16(mt)
	}

	tr := model.Track{Tempo: timing.DefaultTempo, TicksPerBeat: tpb}
	tempoSet := false

	for _, events := range s.Tracks {
		var absTicks uint32
		pending := make(map[uint8]uint32)
		for _, ev := range events {
			absTicks += ev.Delta
			var bpm float64
			var ch, key, vel uint8
			switch {
			case ev.Message.GetMetaTempo(&bpm):
				if !tempoSet {
					tr.Tempo = int(math.Round(bpm))
					tempoSet = true
				}
			case ev.Message.GetNoteStart(&ch, &key, &vel):
				pending[key] = absTicks
			case ev.Message.GetNoteEnd(&ch, &key):
				start, ok := pending[key]
				if !ok {
					continue
				}
				tr.Notes = append(tr.Notes, model.Note{
					Pitch:     key,
					Duration:  float64(absTicks-start) / float64(tpb),
					StartTime: float64(start) / float64(tpb),
				})
				delete(pending, key)
			}
		}
	}
	return tr, nil
}

// ExtractFile reads and extracts in one step.
func ExtractFile(path string) (model.Track, error) {
	s, err := ReadFile(path)
	if err != nil {
		return model.Track{}, err
	}
	return Extract(s)
}

// ExtractTempo reads only the tempo of a MIDI file.
func ExtractTempo(path string) (int, error) {
	tr, err := ExtractFile(path)
	if err != nil {
		return 0, err
	}
	return tr.Tempo, nil
}

var lineComments = regexp.MustCompile(`(?m)//.*$`)

// CleanJSON strips markdown code fences and //-style comment lines
// that generation models like to wrap around their output.
func CleanJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		lines := strings.Split(cleaned, "\n")
		if len(lines) >= 2 {
			lines = lines[1 : len(lines)-1]
		}
		cleaned = strings.Join(lines, "\n")
	}
	return lineComments.ReplaceAllString(cleaned, "")
}

// ParseNotes parses the note-data JSON shape produced by the
// generation step: {"tempo": int, "key": string, "scale": string,
// "notes": [{"pitch": int, "duration": float}, ...]}. Missing tempo
// defaults to 120 BPM; anything unparseable is a format error.
func ParseNotes(raw string) (model.Track, error) {
	var tr model.Track
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &tr); err != nil {
		return model.Track{}, fmt.Errorf("%w: note json: %v", model.ErrFormat, err)
	}
	if tr.Tempo == 0 {
		tr.Tempo = timing.DefaultTempo
	}
	return tr, nil
}
