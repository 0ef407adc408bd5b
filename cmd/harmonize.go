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

var harmonizeOut string
var harmonizeTemp float64

func init() {
	harmonizeCmd.Flags().StringVarP(&harmonizeOut, "output", "o", "", "output MIDI file path")
	harmonizeCmd.Flags().Float64VarP(&harmonizeTemp, "temp", "t", 0.8, "creativity level (0.0-1.0)")
	rootCmd.AddCommand(harmonizeCmd)
}

var harmonizeCmd = &cobra.Command{
	Use:   "harmonize <part1.mid> <part2.mid>",
	Short: "Generate a harmony line for two melody parts",
	Long: `Generates a counter-melody spanning both parts played back to back,
meant for a second instrument an octave below the lead.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(runHarmonize(args[0], args[1]))
	},
}

func runHarmonize(part1Path, part2Path string) error {
	cfg := config.FromEnv()
	client, err := gen.NewClient(cfg)
	if err != nil {
		return err
	}

	part1, err := track.ExtractFile(part1Path)
	if err != nil {
		return err
	}
	part2, err := track.ExtractFile(part2Path)
	if err != nil {
		return err
	}

	fmt.Printf("Generating harmony for %v + %v\n", part1Path, part2Path)
	tr, err := gen.Harmonize(context.Background(), client, part1, part2, harmonizeTemp)
	if err != nil {
		return err
	}
	fmt.Printf("  Notes: %d\n", len(tr.Notes))

	out := harmonizeOut
	if out == "" {
		out = strings.TrimSuffix(part1Path, ".mid") + "_harmony.mid"
	}

	s, err := track.Encode(tr, nil, 80)
	if err != nil {
		return err
	}
	if err := track.WriteFile(s, out); err != nil {
		return err
	}
	fmt.Printf("Saved to: %v\n", out)
	return nil
}
