package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coddhisatva/Synthaia-public-version/channel"
	"github.com/coddhisatva/Synthaia-public-version/track"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspect a MIDI file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(inspect(args[0]))
	},
}

func inspect(path string) error {
	s, err := track.ReadFile(path)
	if err != nil {
		return err
	}

	tr, err := track.Extract(s)
	if err != nil {
		return err
	}

	fmt.Printf("tempo: %d BPM\n", tr.Tempo)
	fmt.Printf("ticksPerBeat: %d\n", tr.TicksPerBeat)
	fmt.Printf("tracks: %d\n", len(s.Tracks))
	fmt.Printf("notes: %d\n", len(tr.Notes))

	for _, ch := range channel.DetectActive(s) {
		if ch == channel.Percussion {
			fmt.Printf("channel %d: drums\n", ch)
			continue
		}
		prog := channel.InstrumentFor(ch, nil)
		fmt.Printf("channel %d: %v\n", ch, channel.InstrumentName(prog))
	}

	var words []string
	for _, events := range s.Tracks {
		for _, ev := range events {
			var text string
			if ev.Message.GetMetaLyric(&text) {
				words = append(words, text)
			}
		}
	}
	if len(words) > 0 {
		fmt.Printf("lyrics: %v\n", words)
	}
	return nil
}
