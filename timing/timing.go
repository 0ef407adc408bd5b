// Package timing holds the tick arithmetic every other package leans
// on. Conversions truncate toward zero so that encoding then
// re-extracting a track stays within one tick of the original.
package timing

import (
	"fmt"

	"github.com/coddhisatva/Synthaia-public-version/model"
)

const (
	// TicksPerBeat is the fixed resolution for every file we write.
	TicksPerBeat = 480

	// BeatsPerMeasure assumes 4/4 time throughout.
	BeatsPerMeasure = 4

	// DefaultTempo applies when a stream carries no tempo meta-event.
	DefaultTempo = 120
)

// BeatsToTicks truncates beats*ticksPerBeat toward zero.
func BeatsToTicks(beats float64, ticksPerBeat uint16) (uint32, error) {
	if beats < 0 || ticksPerBeat == 0 {
		return 0, fmt.Errorf("%w: beats=%v ticksPerBeat=%v", model.ErrInvalidTiming, beats, ticksPerBeat)
	}
	return uint32(beats * float64(ticksPerBeat)), nil
}

// TicksToBeats is the float inverse of BeatsToTicks.
func TicksToBeats(ticks uint32, ticksPerBeat uint16) (float64, error) {
	if ticksPerBeat == 0 {
		return 0, fmt.Errorf("%w: ticksPerBeat=0", model.ErrInvalidTiming)
	}
	return float64(ticks) / float64(ticksPerBeat), nil
}

// SecondsToTicks converts wall-clock seconds at the given tempo.
func SecondsToTicks(seconds float64, tempoBPM int, ticksPerBeat uint16) (uint32, error) {
	if seconds < 0 || tempoBPM <= 0 {
		return 0, fmt.Errorf("%w: seconds=%v tempo=%v", model.ErrInvalidTiming, seconds, tempoBPM)
	}
	return BeatsToTicks(seconds*float64(tempoBPM)/60.0, ticksPerBeat)
}

// MeasuresToTicks converts whole 4/4 measures to ticks.
func MeasuresToTicks(measures int, ticksPerBeat uint16) (uint32, error) {
	if measures < 0 || ticksPerBeat == 0 {
		return 0, fmt.Errorf("%w: measures=%v ticksPerBeat=%v", model.ErrInvalidTiming, measures, ticksPerBeat)
	}
	return uint32(measures) * BeatsPerMeasure * uint32(ticksPerBeat), nil
}
