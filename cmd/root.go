package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "synthaia",
	Short: "AI song composer",
	Long:  `Generates multi-track songs (lyrics, melody, harmony, drums, vocals) with an LLM and assembles them into MIDI.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
