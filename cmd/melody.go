package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coddhisatva/Synthaia-public-version/config"
	"github.com/coddhisatva/Synthaia-public-version/gen"
	"github.com/coddhisatva/Synthaia-public-version/track"
	"github.com/coddhisatva/Synthaia-public-version/util"
)

var melodyOut string
var melodyTemp float64

func init() {
	melodyCmd.Flags().StringVarP(&melodyOut, "output", "o", "", "output MIDI file path")
	melodyCmd.Flags().Float64VarP(&melodyTemp, "temp", "t", 0.8, "creativity level (0.0-1.0)")
	rootCmd.AddCommand(melodyCmd)
}

var melodyCmd = &cobra.Command{
	Use:   "melody <description>",
	Short: "Generate a melody from a text description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(runMelody(args[0]))
	},
}

func runMelody(description string) error {
	cfg := config.FromEnv()
	client, err := gen.NewClient(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Generating melody for: %q\n", description)
	tr, err := gen.GenerateMelody(context.Background(), client, description, melodyTemp)
	if err != nil {
		return err
	}
	fmt.Printf("  Tempo: %d BPM\n", tr.Tempo)
	fmt.Printf("  Key: %v %v\n", tr.Key, tr.Scale)
	fmt.Printf("  Notes: %d\n", len(tr.Notes))

	out := melodyOut
	if out == "" {
		out = filepath.Join(cfg.OutputDir, "midi", util.SafeFilename(description)+".mid")
	}

	s, err := track.Encode(tr, nil, cfg.Velocity)
	if err != nil {
		return err
	}
	if err := track.WriteFile(s, out); err != nil {
		return err
	}
	fmt.Printf("Saved to: %v\n", out)
	return nil
}
