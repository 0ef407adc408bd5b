package timing

import (
	"testing"

	"github.com/coddhisatva/Synthaia-public-version/model"
	"github.com/stretchr/testify/assert"
)

func TestBeatsToTicksTruncates(t *testing.T) {
	assert := assert.New(t)

	ticks, err := BeatsToTicks(1.0, 480)
	assert.NoError(err)
	assert.Equal(uint32(480), ticks)

	// 0.9999 beats must land just below one beat, not round up
	ticks, err = BeatsToTicks(0.9999, 480)
	assert.NoError(err)
	assert.Equal(uint32(479), ticks)

	ticks, err = BeatsToTicks(0, 480)
	assert.NoError(err)
	assert.Equal(uint32(0), ticks)
}

func TestTicksToBeatsInverse(t *testing.T) {
	assert := assert.New(t)

	beats, err := TicksToBeats(960, 480)
	assert.NoError(err)
	assert.Equal(2.0, beats)
}

func TestSecondsToTicks(t *testing.T) {
	assert := assert.New(t)

	// 1 second at 120 BPM is 2 beats
	ticks, err := SecondsToTicks(1.0, 120, 480)
	assert.NoError(err)
	assert.Equal(uint32(960), ticks)

	// 0.5 seconds at 60 BPM is half a beat
	ticks, err = SecondsToTicks(0.5, 60, 480)
	assert.NoError(err)
	assert.Equal(uint32(240), ticks)
}

func TestMeasuresToTicks(t *testing.T) {
	assert := assert.New(t)

	ticks, err := MeasuresToTicks(2, 480)
	assert.NoError(err)
	assert.Equal(uint32(2*4*480), ticks)

	ticks, err = MeasuresToTicks(0, 480)
	assert.NoError(err)
	assert.Equal(uint32(0), ticks)
}

func TestInvalidInputsRejected(t *testing.T) {
	cases := []struct {
		name string
		call func() error
	}{
		{"negative beats", func() error { _, err := BeatsToTicks(-1, 480); return err }},
		{"zero resolution", func() error { _, err := BeatsToTicks(1, 0); return err }},
		{"negative seconds", func() error { _, err := SecondsToTicks(-0.1, 120, 480); return err }},
		{"zero tempo", func() error { _, err := SecondsToTicks(1, 0, 480); return err }},
		{"negative measures", func() error { _, err := MeasuresToTicks(-1, 480); return err }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, c.call(), model.ErrInvalidTiming)
		})
	}
}

func TestRoundTripWithinOneTick(t *testing.T) {
	assert := assert.New(t)

	for _, beats := range []float64{0.25, 0.33, 1.0, 1.75, 2.5, 7.125} {
		ticks, err := BeatsToTicks(beats, TicksPerBeat)
		assert.NoError(err)
		back, err := TicksToBeats(ticks, TicksPerBeat)
		assert.NoError(err)
		assert.InDelta(beats, back, 1.0/float64(TicksPerBeat))
	}
}
