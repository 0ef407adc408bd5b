package arrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/coddhisatva/Synthaia-public-version/model"
	"github.com/coddhisatva/Synthaia-public-version/track"
)

func encode(t *testing.T, notes ...model.Note) *smf.SMF {
	t.Helper()
	s, err := track.Encode(model.Track{Tempo: 120, Notes: notes}, nil, 0)
	assert.NoError(t, err)
	return s
}

// firstNoteOnTick finds the absolute tick of the first note-on in the
// given track index.
func firstNoteOnTick(t *testing.T, s *smf.SMF, trackIdx int) uint32 {
	t.Helper()
	var abs uint32
	for _, ev := range s.Tracks[trackIdx] {
		abs += ev.Delta
		var ch, key, vel uint8
		if ev.Message.GetNoteStart(&ch, &key, &vel) {
			return abs
		}
	}
	t.Fatalf("no note-on in track %d", trackIdx)
	return 0
}

func TestCombineSequentialSlotDeterminism(t *testing.T) {
	assert := assert.New(t)

	a := encode(t,
		model.Note{Pitch: 60, Duration: 1.0},
		model.Note{Pitch: 62, Duration: 1.0},
	)
	b := encode(t, model.Note{Pitch: 64, Duration: 1.0})

	combined, err := CombineSequential(a, b, 2)
	assert.NoError(err)
	assert.Len(combined.Tracks, 2)

	// B's first note lands at exactly 2 measures regardless of A's content
	assert.Equal(uint32(2*4*480), firstNoteOnTick(t, combined, 1))
}

func TestCombineSequentialSlotIndependentOfContent(t *testing.T) {
	assert := assert.New(t)

	// A empty: slot boundary must not move
	empty := encode(t)
	b := encode(t, model.Note{Pitch: 64, Duration: 1.0})

	combined, err := CombineSequential(empty, b, 2)
	assert.NoError(err)
	assert.Equal(uint32(3840), firstNoteOnTick(t, combined, 1))

	// A longer than the slot: boundary still fixed
	long := encode(t,
		model.Note{Pitch: 60, Duration: 4.0},
		model.Note{Pitch: 62, Duration: 4.0},
		model.Note{Pitch: 65, Duration: 4.0},
	)
	combined, err = CombineSequential(long, b, 2)
	assert.NoError(err)
	assert.Equal(uint32(3840), firstNoteOnTick(t, combined, 1))
}

func TestAddParallelOffset(t *testing.T) {
	assert := assert.New(t)

	base := encode(t, model.Note{Pitch: 60, Duration: 1.0})
	overlay := encode(t, model.Note{Pitch: 48, Duration: 1.0})

	merged := AddParallel(base, overlay, 960)
	assert.Len(merged.Tracks, 2)
	assert.Equal(uint32(0), firstNoteOnTick(t, merged, 0))
	assert.Equal(uint32(960), firstNoteOnTick(t, merged, 1))

	// zero offset keeps the overlay at the start
	merged = AddParallel(base, overlay, 0)
	assert.Equal(uint32(0), firstNoteOnTick(t, merged, 1))
}

func TestFlattenMergesAndStaysMonotonic(t *testing.T) {
	assert := assert.New(t)

	a := encode(t, model.Note{Pitch: 60, Duration: 2.0})
	b := encode(t, model.Note{Pitch: 64, Duration: 1.0})
	combined, err := CombineSequential(a, b, 2)
	assert.NoError(err)

	flat := Flatten(combined)
	assert.Len(flat.Tracks, 1)

	var abs, prev uint32
	var noteOns int
	tempoSeen := false
	for i, ev := range flat.Tracks[0] {
		abs += ev.Delta
		assert.GreaterOrEqual(abs, prev)
		prev = abs

		var bpm float64
		if ev.Message.GetMetaTempo(&bpm) {
			tempoSeen = true
			assert.Equal(0, i, "tempo meta must lead the merged track")
		}
		var ch, key, vel uint8
		if ev.Message.GetNoteStart(&ch, &key, &vel) {
			noteOns++
		}
	}
	assert.True(tempoSeen)
	assert.Equal(2, noteOns)
}

func TestArrangeRequiresMandatoryRoles(t *testing.T) {
	melody := encode(t, model.Note{Pitch: 60, Duration: 1.0})

	_, err := Arrange(Inputs{Melody: melody}, Options{})
	assert.ErrorIs(t, err, model.ErrArrangement)

	_, err = Arrange(Inputs{Continuation: melody}, Options{})
	assert.ErrorIs(t, err, model.ErrArrangement)
}

func TestArrangeLoopStructure(t *testing.T) {
	assert := assert.New(t)

	melody := encode(t,
		model.Note{Pitch: 60, Duration: 1.0},
		model.Note{Pitch: 62, Duration: 1.0},
	)
	continuation := encode(t, model.Note{Pitch: 64, Duration: 1.0})

	merged, err := Arrange(Inputs{Melody: melody, Continuation: continuation}, Options{})
	assert.NoError(err)
	assert.Len(merged.Tracks, 1)

	// collect note-on ticks per pitch from the flattened loop
	ticksByPitch := make(map[uint8][]uint32)
	var abs uint32
	for _, ev := range merged.Tracks[0] {
		abs += ev.Delta
		var ch, key, vel uint8
		if ev.Message.GetNoteStart(&ch, &key, &vel) {
			assert.Equal(uint8(0), ch, "melody and continuation share channel 0")
			ticksByPitch[key] = append(ticksByPitch[key], abs)
		}
	}

	// melody opens section 1 and repeats at section 3 (measure 5)
	assert.Equal([]uint32{0, 4 * 4 * 480}, ticksByPitch[60])
	// continuation opens section 2 and repeats at section 4
	assert.Equal([]uint32{2 * 4 * 480, 6 * 4 * 480}, ticksByPitch[64])
}

func TestArrangeOverlays(t *testing.T) {
	assert := assert.New(t)

	melody := encode(t, model.Note{Pitch: 60, Duration: 1.0})
	continuation := encode(t, model.Note{Pitch: 64, Duration: 1.0})
	harmony := encode(t, model.Note{Pitch: 48, Duration: 1.0})
	drums := encode(t, model.Note{Pitch: 36, Duration: 0.25})
	vocals := encode(t, model.Note{Pitch: 67, Duration: 1.0})

	merged, err := Arrange(Inputs{
		Melody:       melody,
		Continuation: continuation,
		Harmony:      harmony,
		Drums:        drums,
		Vocals:       vocals,
	}, Options{})
	assert.NoError(err)

	// merged loop + drums + harmony + vocals tracks
	assert.Len(merged.Tracks, 4)

	first := make(map[uint8]uint32)
	for _, events := range merged.Tracks {
		var abs uint32
		for _, ev := range events {
			abs += ev.Delta
			var ch, key, vel uint8
			if ev.Message.GetNoteStart(&ch, &key, &vel) {
				if _, seen := first[ch]; !seen {
					first[ch] = abs
				}
			}
		}
	}

	// drums and vocals play from the start, harmony enters at measure 5
	assert.Equal(uint32(0), first[9])
	assert.Equal(uint32(0), first[2])
	assert.Equal(uint32(4*4*480), first[1])
}

func TestArrangeParameterizedSectionLength(t *testing.T) {
	assert := assert.New(t)

	melody := encode(t, model.Note{Pitch: 60, Duration: 1.0})
	continuation := encode(t, model.Note{Pitch: 64, Duration: 1.0})
	harmony := encode(t, model.Note{Pitch: 48, Duration: 1.0})

	merged, err := Arrange(Inputs{
		Melody:       melody,
		Continuation: continuation,
		Harmony:      harmony,
	}, Options{MeasuresPerSection: 1})
	assert.NoError(err)

	var harmonyFirst uint32
	found := false
	for _, events := range merged.Tracks {
		var abs uint32
		for _, ev := range events {
			abs += ev.Delta
			var ch, key, vel uint8
			if ev.Message.GetNoteStart(&ch, &key, &vel) && ch == 1 && !found {
				harmonyFirst = abs
				found = true
			}
		}
	}
	assert.True(found)
	// sections of 1 measure: harmony enters after 2 measures
	assert.Equal(uint32(2*4*480), harmonyFirst)
}
