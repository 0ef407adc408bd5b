package config

import (
	"os"
	"strconv"
)

// Config carries everything the generation pipeline and servers read
// from the environment. Zero-config runs work for MIDI-only output;
// audio rendering and song persistence need their variables set.
type Config struct {
	Provider       string
	Model          string
	OpenAIAPIKey   string
	SoundfontPath  string
	SampleRate     int
	Gain           float64
	OutputDir      string
	DefaultTempo   int
	Velocity       uint8
	Temperature    float64
	SongDBEndpoint string
	SentryDSN      string
}

func FromEnv() Config {
	return Config{
		Provider:       getString("SYNTHAIA_PROVIDER", "openai"),
		Model:          getString("SYNTHAIA_MODEL", "gpt-4o"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		SoundfontPath:  getString("SOUNDFONT_PATH", "/usr/share/sounds/sf2/FluidR3_GM.sf2"),
		SampleRate:     getInt("SYNTHAIA_SAMPLE_RATE", 44100),
		Gain:           getFloat("SYNTHAIA_GAIN", 1.0),
		OutputDir:      getString("SYNTHAIA_OUT_DIR", "./out"),
		DefaultTempo:   getInt("SYNTHAIA_TEMPO", 120),
		Velocity:       uint8(getInt("SYNTHAIA_VELOCITY", 64)),
		Temperature:    getFloat("SYNTHAIA_TEMPERATURE", 0.7),
		SongDBEndpoint: os.Getenv("SONG_DB_ENDPOINT"),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
