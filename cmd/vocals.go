package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coddhisatva/Synthaia-public-version/config"
	"github.com/coddhisatva/Synthaia-public-version/gen"
	"github.com/coddhisatva/Synthaia-public-version/track"
)

var vocalsLyricsPath string
var vocalsOut string
var vocalsTemp float64

func init() {
	vocalsCmd.Flags().StringVarP(&vocalsLyricsPath, "lyrics", "l", "", "lyrics text file (required)")
	vocalsCmd.Flags().StringVarP(&vocalsOut, "output", "o", "", "output MIDI file path")
	vocalsCmd.Flags().Float64VarP(&vocalsTemp, "temp", "t", 0.8, "creativity level (0.0-1.0)")
	vocalsCmd.MarkFlagRequired("lyrics")
	rootCmd.AddCommand(vocalsCmd)
}

var vocalsCmd = &cobra.Command{
	Use:   "vocals <melody.mid> <continuation.mid> <harmony.mid>",
	Short: "Generate a vocal melody with embedded lyrics",
	Long: `Composes a vocal line over the instrumental parts and embeds the
first verse of the lyrics as MIDI lyric events, one word per note group.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(runVocals(args[0], args[1], args[2]))
	},
}

func runVocals(melodyPath, continuationPath, harmonyPath string) error {
	cfg := config.FromEnv()
	client, err := gen.NewClient(cfg)
	if err != nil {
		return err
	}

	lyricsBytes, err := os.ReadFile(vocalsLyricsPath)
	if err != nil {
		return fmt.Errorf("read lyrics: %w", err)
	}

	melody, err := track.ExtractFile(melodyPath)
	if err != nil {
		return err
	}
	continuation, err := track.ExtractFile(continuationPath)
	if err != nil {
		return err
	}
	harmony, err := track.ExtractFile(harmonyPath)
	if err != nil {
		return err
	}

	fmt.Println("Generating vocal melody...")
	tr, words, err := gen.GenerateVocals(context.Background(), client, melody, continuation, harmony, string(lyricsBytes), vocalsTemp)
	if err != nil {
		return err
	}
	fmt.Printf("  Notes: %d\n", len(tr.Notes))
	fmt.Printf("  Words mapped: %d\n", len(words))

	out := vocalsOut
	if out == "" {
		out = strings.TrimSuffix(melodyPath, ".mid") + "_vocals.mid"
	}

	s, err := track.Encode(tr, words, cfg.Velocity)
	if err != nil {
		return err
	}
	if err := track.WriteFile(s, out); err != nil {
		return err
	}
	fmt.Printf("Saved to: %v\n", out)
	return nil
}
