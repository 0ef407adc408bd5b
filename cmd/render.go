package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coddhisatva/Synthaia-public-version/config"
	"github.com/coddhisatva/Synthaia-public-version/render"
)

var renderQuality string
var renderSoundfont string

func init() {
	renderCmd.Flags().StringVarP(&renderQuality, "quality", "q", "medium", "quality preset: low, medium, high, ultra")
	renderCmd.Flags().StringVarP(&renderSoundfont, "soundfont", "s", "", "soundfont file (.sf2/.sf3)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <input.mid> <output.wav>",
	Short: "Render a MIDI file to WAV with fluidsynth",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(runRender(args[0], args[1]))
	},
}

func runRender(midiPath, wavPath string) error {
	cfg := config.FromEnv()

	opts := render.Options{
		SoundfontPath: cfg.SoundfontPath,
		SampleRate:    cfg.SampleRate,
		Gain:          cfg.Gain,
	}
	if renderSoundfont != "" {
		opts.SoundfontPath = renderSoundfont
	}
	if preset, ok := render.QualityPresets[renderQuality]; ok {
		opts.SampleRate = preset.SampleRate
		opts.Gain = preset.Gain
	} else {
		return fmt.Errorf("unknown quality preset %q", renderQuality)
	}

	fmt.Printf("Rendering %v -> %v (%v quality)\n", midiPath, wavPath, renderQuality)
	if err := render.MidiToWav(context.Background(), midiPath, wavPath, opts); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}
