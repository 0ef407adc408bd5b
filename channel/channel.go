// Package channel assigns channels and General MIDI instruments to
// encoded tracks.
package channel

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Percussion is the GM drum channel. It never receives a
// program-change; the synthesizer selects the drum kit implicitly.
const Percussion uint8 = 9

// DefaultInstruments is the channel onto GM program policy. Overridable
// per call; unmapped channels fall back to acoustic grand piano (0).
var DefaultInstruments = map[uint8]uint8{
	0: 0,  // melody/continuation: acoustic grand piano
	1: 24, // harmony: acoustic guitar (nylon)
	2: 52, // vocals: choir aahs placeholder
}

// InstrumentNames covers the programs the default policy hands out.
var InstrumentNames = map[uint8]string{
	0:  "Acoustic Grand Piano",
	24: "Acoustic Guitar (nylon)",
	25: "Acoustic Guitar (steel)",
	52: "Choir Aahs",
	53: "Voice Oohs",
}

// InstrumentFor resolves a channel to a GM program under the given
// policy (nil means DefaultInstruments).
func InstrumentFor(ch uint8, policy map[uint8]uint8) uint8 {
	if policy == nil {
		policy = DefaultInstruments
	}
	if p, ok := policy[ch]; ok {
		return p
	}
	return 0
}

// InstrumentName returns a printable name for a GM program number.
func InstrumentName(program uint8) string {
	if name, ok := InstrumentNames[program]; ok {
		return name
	}
	return fmt.Sprintf("GM Program %d", program)
}

// DetectActive returns the channels actually carrying note events,
// sorted ascending.
func DetectActive(s *smf.SMF) []uint8 {
	seen := make(map[uint8]bool)
	for _, events := range s.Tracks {
		for _, ev := range events {
			var ch, key, vel uint8
			if ev.Message.GetNoteOn(&ch, &key, &vel) || ev.Message.GetNoteOff(&ch, &key, &vel) {
				seen[ch] = true
			}
		}
	}
	channels := make([]uint8, 0, len(seen))
	for ch := range seen {
		channels = append(channels, ch)
	}
	sort.Slice(channels, func(i, j int) bool {
		return channels[i] < channels[j]
	})
	return channels
}

// Rewrite returns a copy of the stream with every note-on, note-off,
// program-change and control-change event moved to the given channel.
// Meta events pass through untouched.
func Rewrite(s *smf.SMF, newCh uint8) *smf.SMF {
	res := smf.New()
	res.TimeFormat = s.TimeFormat

	for _, events := range s.Tracks {
		var t smf.Track
		for _, ev := range events {
			var ch, key, vel, prog, cc, val uint8
			switch {
			case ev.Message.GetNoteOn(&ch, &key, &vel):
				t = append(t, smf.Event{Delta: ev.Delta, Message: smf.Message(midi.NoteOn(newCh, key, vel))})
			case ev.Message.GetNoteOff(&ch, &key, &vel):
				t = append(t, smf.Event{Delta: ev.Delta, Message: smf.Message(midi.NoteOff(newCh, key))})
			case ev.Message.GetProgramChange(&ch, &prog):
				t = append(t, smf.Event{Delta: ev.Delta, Message: smf.Message(midi.ProgramChange(newCh, prog))})
			case ev.Message.GetControlChange(&ch, &cc, &val):
				t = append(t, smf.Event{Delta: ev.Delta, Message: smf.Message(midi.ControlChange(newCh, cc, val))})
			default:
				t = append(t, ev)
			}
		}
		res.Add(t)
	}
	return res
}

// ApplyInstruments prepends a setup track holding a program-change per
// active channel so instruments render correctly regardless of
// soundfont defaults. The percussion channel is skipped.
func ApplyInstruments(s *smf.SMF, policy map[uint8]uint8) *smf.SMF {
	res := smf.New()
	res.TimeFormat = s.TimeFormat

	var setup smf.Track
	for _, ch := range DetectActive(s) {
		if ch == Percussion {
			continue
		}
		setup.Add(0, midi.ProgramChange(ch, InstrumentFor(ch, policy)))
	}
	setup.Close(0)
	res.Add(setup)

	for _, events := range s.Tracks {
		t := make(smf.Track, len(events))
		copy(t, events)
		res.Add(t)
	}
	return res
}
