package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coddhisatva/Synthaia-public-version/config"
	"github.com/coddhisatva/Synthaia-public-version/gen"
	"github.com/coddhisatva/Synthaia-public-version/song"
)

var songRender bool

func init() {
	songCmd.Flags().BoolVar(&songRender, "render", false, "also render the arranged MIDI to WAV")
	rootCmd.AddCommand(songCmd)
}

var songCmd = &cobra.Command{
	Use:   "song <theme>",
	Short: "Create a complete song from a theme",
	Long: `Runs the full pipeline: lyrics, melody, continuation, harmony,
drums, vocals, and the final arrangement.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(runSong(args[0]))
	},
}

func runSong(theme string) error {
	cfg := config.FromEnv()
	client, err := gen.NewClient(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Theme: %v\n", theme)
	progress := func(step, total int, message string) {
		fmt.Printf("Step %d/%d: %v...\n", step, total, message)
	}

	res, err := song.Create(context.Background(), cfg, client, theme, songRender, progress)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Lyrics: %v\n", res.LyricsPath)
	fmt.Printf("Complete MIDI: %v\n", res.MidiPath)
	if res.AudioPath != "" {
		fmt.Printf("Audio: %v\n", res.AudioPath)
	}
	return nil
}
