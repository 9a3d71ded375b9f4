package cmd

import (
	"fmt"
	"time"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/midi"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/score"
	"github.com/jsphweid/voicelead/voicelead"
	"github.com/spf13/cobra"
)

var revoiceAvoidParallels bool

func init() {
	revoiceCmd.Flags().BoolVar(&revoiceAvoidParallels, "avoid-parallels", false, "avoid parallel fifths and octaves")
	rootCmd.AddCommand(revoiceCmd)
}

var revoiceCmd = &cobra.Command{
	Use:   "revoice <in.mid> <out.mid>",
	Short: "Re-voices the chords of a MIDI file",
	Long:  `Reads the chords of a MIDI file and writes them back out voice-led, keeping only their pitch-class sets and timing.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		res, err := revoice(chord.GetChords(s), revoiceAvoidParallels)
		if err != nil {
			return err
		}
		printResolution(cmd.OutOrStdout(), res)

		sc := score.New()
		sc.Append(res.Notes...)
		if err := midi.SaveScore(args[1], sc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
		return nil
	},
}

func revoice(chords []model.Chord, avoidParallels bool) (*voicelead.Resolution, error) {
	engine := voicelead.New()
	for _, c := range chords {
		offset := time.Duration(c.Offset) * time.Microsecond
		set := model.FromKeys(c.Notes)
		if err := engine.SetByPitchClassSetAvoidingParallels(offset.Seconds(), set, avoidParallels); err != nil {
			return nil, err
		}
	}
	return engine.Resolve()
}
