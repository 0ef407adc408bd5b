// Package arrange combines independently generated tracks into one
// synchronized multi-channel composition.
package arrange

import (
	"bytes"
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/coddhisatva/Synthaia-public-version/channel"
	"github.com/coddhisatva/Synthaia-public-version/model"
	"github.com/coddhisatva/Synthaia-public-version/timing"
)

// Inputs holds one encoded stream per role. Melody and Continuation
// are mandatory; the rest are optional overlays.
type Inputs struct {
	Melody       *smf.SMF
	Continuation *smf.SMF
	Harmony      *smf.SMF
	Drums        *smf.SMF
	Vocals       *smf.SMF
}

// Options tunes the arrangement shape. MeasuresPerSection defaults to
// 2, which yields the 8-measure loop with harmony entering at measure 5.
type Options struct {
	MeasuresPerSection int
}

func (o Options) measuresPerSection() int {
	if o.MeasuresPerSection <= 0 {
		return 2
	}
	return o.MeasuresPerSection
}

func resolution(s *smf.SMF) uint16 {
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		return uint16(mt)
	}
	return timing.TicksPerBeat
}

func isEOT(msg smf.Message) bool {
	return bytes.Equal([]byte(msg), []byte(smf.EOT))
}

// cloneTrack copies a track's events without the trailing end-of-track,
// so callers can keep appending before closing.
func cloneTrack(events smf.Track) smf.Track {
	var t smf.Track
	for _, ev := range events {
		if isEOT(ev.Message) {
			continue
		}
		t = append(t, ev)
	}
	return t
}

// CombineSequential copies all of a's tracks and appends b's tracks
// with every first non-meta event delayed by a fixed slot of
// slotMeasures whole measures. The slot is independent of a's actual
// content length, which keeps section boundaries deterministic and
// preserves gaps in either source.
func CombineSequential(a, b *smf.SMF, slotMeasures int) (*smf.SMF, error) {
	tpb := resolution(a)
	offset, err := timing.MeasuresToTicks(slotMeasures, tpb)
	if err != nil {
		return nil, err
	}

	res := smf.New()
	res.TimeFormat = a.TimeFormat

	for _, events := range a.Tracks {
		t := cloneTrack(events)
		t.Close(0)
		res.Add(t)
	}

	for _, events := range b.Tracks {
		var t smf.Track
		pending := offset
		for _, ev := range events {
			if isEOT(ev.Message) {
				continue
			}
			if pending > 0 && !ev.Message.IsMeta() {
				t = append(t, smf.Event{Delta: ev.Delta + pending, Message: ev.Message})
				pending = 0
				continue
			}
			t = append(t, ev)
		}
		t.Close(0)
		res.Add(t)
	}
	return res, nil
}

// AddParallel appends the overlay's tracks onto a copy of the base so
// both play simultaneously, shifting the overlay's first non-meta event
// by startOffset ticks.
func AddParallel(base, overlay *smf.SMF, startOffset uint32) *smf.SMF {
	res := smf.New()
	res.TimeFormat = base.TimeFormat

	for _, events := range base.Tracks {
		t := cloneTrack(events)
		t.Close(0)
		res.Add(t)
	}

	for _, events := range overlay.Tracks {
		var t smf.Track
		pending := startOffset
		for _, ev := range events {
			if isEOT(ev.Message) {
				continue
			}
			if pending > 0 && !ev.Message.IsMeta() {
				t = append(t, smf.Event{Delta: ev.Delta + pending, Message: ev.Message})
				pending = 0
				continue
			}
			t = append(t, ev)
		}
		t.Close(0)
		res.Add(t)
	}
	return res
}

type absEvent struct {
	tick uint32
	msg  smf.Message
}

// Flatten expands every track to absolute ticks, merges them into one
// globally sorted track and re-encodes the deltas. Channel events and
// tempo meta-events survive; other metas are dropped. Naive sequential
// track concatenation would not respect cross-track interleaving after
// repeated combines, so the merge happens on absolute time. The sort is
// stable: tempo metas collected first keep their place at tick 0.
func Flatten(s *smf.SMF) *smf.SMF {
	var events []absEvent
	var tempos []absEvent

	for _, tr := range s.Tracks {
		var abs uint32
		for _, ev := range tr {
			abs += ev.Delta
			var bpm float64
			switch {
			case ev.Message.GetMetaTempo(&bpm):
				tempos = append(tempos, absEvent{abs, ev.Message})
			case ev.Message.IsMeta():
				// dropped: one merged track needs no per-track metas
			default:
				events = append(events, absEvent{abs, ev.Message})
			}
		}
	}

	// keep only the first tempo; all sections share it
	if len(tempos) > 0 {
		events = append([]absEvent{tempos[0]}, events...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var merged smf.Track
	var last uint32
	for _, e := range events {
		merged = append(merged, smf.Event{Delta: e.tick - last, Message: e.msg})
		last = e.tick
	}
	merged.Close(0)

	res := smf.New()
	res.TimeFormat = s.TimeFormat
	res.Add(merged)
	return res
}

// Arrange builds the full composition: melody and continuation are
// looped into a flattened 4-section block, then drums, harmony and
// vocals are overlaid. Harmony enters after the first loop, which with
// the default two measures per section means measure 5. Channel assignment
// per role happens before any merging.
func Arrange(in Inputs, opts Options) (*smf.SMF, error) {
	if in.Melody == nil || in.Continuation == nil {
		return nil, fmt.Errorf("%w: melody and continuation are both required", model.ErrArrangement)
	}

	mps := opts.measuresPerSection()

	melody := channel.Rewrite(in.Melody, model.RoleChannels[model.RoleMelody])
	continuation := channel.Rewrite(in.Continuation, model.RoleChannels[model.RoleContinuation])

	firstPass, err := CombineSequential(melody, continuation, mps)
	if err != nil {
		return nil, err
	}
	secondPass, err := CombineSequential(melody, continuation, mps)
	if err != nil {
		return nil, err
	}
	fullLoop, err := CombineSequential(firstPass, secondPass, 2*mps)
	if err != nil {
		return nil, err
	}

	merged := Flatten(fullLoop)

	if in.Drums != nil {
		drums := channel.Rewrite(in.Drums, model.RoleChannels[model.RoleDrums])
		merged = AddParallel(merged, drums, 0)
	}

	if in.Harmony != nil {
		harmony := channel.Rewrite(in.Harmony, model.RoleChannels[model.RoleHarmony])
		offset, err := timing.MeasuresToTicks(2*mps, resolution(merged))
		if err != nil {
			return nil, err
		}
		merged = AddParallel(merged, harmony, offset)
	}

	if in.Vocals != nil {
		vocals := channel.Rewrite(in.Vocals, model.RoleChannels[model.RoleVocals])
		merged = AddParallel(merged, vocals, 0)
	}

	return merged, nil
}
