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

var drumsOut string
var drumsMeasures int
var drumsTemp float64

func init() {
	drumsCmd.Flags().StringVarP(&drumsOut, "output", "o", "", "output MIDI file path")
	drumsCmd.Flags().IntVarP(&drumsMeasures, "measures", "m", 8, "number of measures")
	drumsCmd.Flags().Float64VarP(&drumsTemp, "temp", "t", 0.8, "creativity level (0.0-1.0)")
	rootCmd.AddCommand(drumsCmd)
}

var drumsCmd = &cobra.Command{
	Use:   "drums <reference.mid> <description>",
	Short: "Generate drums matching a reference track's tempo",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(runDrums(args[0], args[1]))
	},
}

func runDrums(referencePath, description string) error {
	cfg := config.FromEnv()
	client, err := gen.NewClient(cfg)
	if err != nil {
		return err
	}

	tempo, err := track.ExtractTempo(referencePath)
	if err != nil {
		return err
	}

	fmt.Printf("Generating drums at %d BPM: %q\n", tempo, description)
	tr, err := gen.GenerateDrums(context.Background(), client, tempo, description, drumsMeasures, drumsTemp)
	if err != nil {
		return err
	}
	fmt.Printf("  Hits: %d\n", len(tr.Notes))

	out := drumsOut
	if out == "" {
		out = strings.TrimSuffix(referencePath, ".mid") + "_drums.mid"
	}

	s, err := track.EncodeTimed(tr, 80)
	if err != nil {
		return err
	}
	if err := track.WriteFile(s, out); err != nil {
		return err
	}
	fmt.Printf("Saved to: %v\n", out)
	return nil
}
