package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/coddhisatva/Synthaia-public-version/arrange"
	"github.com/coddhisatva/Synthaia-public-version/track"
)

var arrangeMelody string
var arrangeContinuation string
var arrangeHarmony string
var arrangeDrums string
var arrangeVocals string
var arrangeOut string
var arrangeMeasures int

func init() {
	arrangeCmd.Flags().StringVarP(&arrangeMelody, "melody", "m", "", "melody MIDI file (required)")
	arrangeCmd.Flags().StringVarP(&arrangeContinuation, "continuation", "c", "", "continuation MIDI file (required)")
	arrangeCmd.Flags().StringVar(&arrangeHarmony, "harmony", "", "harmony MIDI file")
	arrangeCmd.Flags().StringVarP(&arrangeDrums, "drums", "d", "", "drums MIDI file")
	arrangeCmd.Flags().StringVarP(&arrangeVocals, "vocals", "v", "", "vocals MIDI file")
	arrangeCmd.Flags().StringVarP(&arrangeOut, "output", "o", "song_complete.mid", "output MIDI file path")
	arrangeCmd.Flags().IntVar(&arrangeMeasures, "section-measures", 0, "measures per melody section (default 2)")
	arrangeCmd.MarkFlagRequired("melody")
	arrangeCmd.MarkFlagRequired("continuation")
	rootCmd.AddCommand(arrangeCmd)
}

var arrangeCmd = &cobra.Command{
	Use:   "arrange",
	Short: "Assemble parts into a complete looped song",
	Long: `Loops melody and continuation into an A-B-A-B structure, overlays
drums and vocals from the start and brings the harmony in partway through,
with each part on its own MIDI channel.`,
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(runArrange())
	},
}

func readOptional(path string) (*smf.SMF, error) {
	if path == "" {
		return nil, nil
	}
	return track.ReadFile(path)
}

func runArrange() error {
	var in arrange.Inputs
	var err error

	if in.Melody, err = track.ReadFile(arrangeMelody); err != nil {
		return err
	}
	if in.Continuation, err = track.ReadFile(arrangeContinuation); err != nil {
		return err
	}
	if in.Harmony, err = readOptional(arrangeHarmony); err != nil {
		return err
	}
	if in.Drums, err = readOptional(arrangeDrums); err != nil {
		return err
	}
	if in.Vocals, err = readOptional(arrangeVocals); err != nil {
		return err
	}

	s, err := arrange.Arrange(in, arrange.Options{MeasuresPerSection: arrangeMeasures})
	if err != nil {
		return err
	}
	if err := track.WriteFile(s, arrangeOut); err != nil {
		return err
	}
	fmt.Printf("Complete song saved to: %v\n", arrangeOut)
	return nil
}
