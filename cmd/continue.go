package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coddhisatva/Synthaia-public-version/config"
	"github.com/coddhisatva/Synthaia-public-version/gen"
	"github.com/coddhisatva/Synthaia-public-version/track"
)

var continueOut string
var continueTemp float64

func init() {
	continueCmd.Flags().StringVarP(&continueOut, "output", "o", "", "output MIDI file path")
	continueCmd.Flags().Float64VarP(&continueTemp, "temp", "t", 0.8, "creativity level (0.0-1.0)")
	rootCmd.AddCommand(continueCmd)
}

var continueCmd = &cobra.Command{
	Use:   "continue <input.mid>",
	Short: "Generate a continuation for an existing melody",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(runContinue(args[0]))
	},
}

func runContinue(inputPath string) error {
	cfg := config.FromEnv()
	client, err := gen.NewClient(cfg)
	if err != nil {
		return err
	}

	original, err := track.ExtractFile(inputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Generating continuation for: %v\n", inputPath)
	tr, err := gen.ContinueMelody(context.Background(), client, original, continueTemp)
	if err != nil {
		return err
	}
	fmt.Printf("  Tempo: %d BPM\n", tr.Tempo)
	fmt.Printf("  Notes: %d\n", len(tr.Notes))

	out := continueOut
	if out == "" {
		out = strings.TrimSuffix(inputPath, ".mid") + "_continuation.mid"
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
