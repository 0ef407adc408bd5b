package model

// Note is one entry in a track's note sequence. Pitch 0 is a rest: it
// consumes Duration beats without producing a sounding event.
type Note struct {
	Pitch     uint8   `json:"pitch"`
	Duration  float64 `json:"duration"`
	StartTime float64 `json:"start_time,omitempty"`
}

// IsRest reports whether the note is a silence marker.
func (n Note) IsRest() bool {
	return n.Pitch == 0
}

// Track is the canonical in-memory representation of one musical part.
// Tempo is constant for the whole track.
type Track struct {
	Tempo        int     `json:"tempo"`
	Key          string  `json:"key,omitempty"`
	Scale        string  `json:"scale,omitempty"`
	Notes        []Note  `json:"notes"`
	TicksPerBeat uint16  `json:"ticks_per_beat,omitempty"`
	Channel      uint8   `json:"-"`
}

// End returns the beat at which the last note (or rest) finishes,
// honoring explicit start times when present.
func (t Track) End() float64 {
	var end, cursor float64
	for _, n := range t.Notes {
		start := n.StartTime
		if start == 0 && cursor > 0 {
			start = cursor
		}
		if e := start + n.Duration; e > end {
			end = e
		}
		cursor = start + n.Duration
	}
	return end
}

// WordMapping associates one lyric word with the note group that
// carries it. Start and Duration are cumulative sums of the group's
// note durations, converted downstream with the track tempo.
type WordMapping struct {
	Word      string
	Pitch     uint8
	StartSecs float64
	DurSecs   float64
}

// Role names the musical function of a track inside an arrangement.
type Role string

const (
	RoleMelody       Role = "melody"
	RoleContinuation Role = "continuation"
	RoleHarmony      Role = "harmony"
	RoleDrums        Role = "drums"
	RoleVocals       Role = "vocals"
)

// RoleChannels is the fixed role onto channel policy. Channel 9 is the
// GM percussion channel.
var RoleChannels = map[Role]uint8{
	RoleMelody:       0,
	RoleContinuation: 0,
	RoleHarmony:      1,
	RoleVocals:       2,
	RoleDrums:        9,
}

// SongMetadata is what the db package records per completed song.
type SongMetadata struct {
	Theme      string
	LyricsPath string
	MidiPath   string
	AudioPath  string
	CreatedAt  string
}
