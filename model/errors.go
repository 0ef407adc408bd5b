package model

import "errors"

// Error taxonomy shared by every package. Callers classify failures
// with errors.Is; packages wrap these with context via fmt.Errorf %w.
var (
	// ErrInvalidTiming covers negative or non-positive beat/tick math inputs.
	ErrInvalidTiming = errors.New("invalid timing")

	// ErrInvalidTrack covers tracks that cannot be encoded (tempo <= 0).
	ErrInvalidTrack = errors.New("invalid track")

	// ErrFormat covers unparseable MIDI streams and malformed note JSON.
	// A decode failure never yields a partially built track.
	ErrFormat = errors.New("format error")

	// ErrNotFound covers missing input files.
	ErrNotFound = errors.New("not found")

	// ErrArrangement covers missing mandatory track roles.
	ErrArrangement = errors.New("arrangement error")

	// ErrIO covers write failures at the encode boundary.
	ErrIO = errors.New("io error")
)
