package model

// CreateSongRequest is the body of POST /api/songs.
type CreateSongRequest struct {
	Theme    string `json:"theme"`
	Provider string `json:"provider,omitempty"`
	Render   bool   `json:"render,omitempty"`
}

// CreateSongResponse returns the id used to poll job progress.
type CreateSongResponse struct {
	JobID string `json:"job_id"`
}

// JobStatus is the progress snapshot for one song generation job.
type JobStatus struct {
	JobID      string `json:"job_id"`
	Status     string `json:"status"` // pending | running | done | error
	Step       int    `json:"step"`
	Total      int    `json:"total"`
	Message    string `json:"message"`
	Percentage int    `json:"percentage"`
	LyricsPath string `json:"lyrics_path,omitempty"`
	MidiPath   string `json:"midi_path,omitempty"`
	AudioPath  string `json:"audio_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ErrorResponse mirrors the API's error body shape.
type ErrorResponse struct {
	Error string `json:"detail"`
}
