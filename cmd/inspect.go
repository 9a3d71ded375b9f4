package cmd

import (
	"fmt"
	"time"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/midi"
	"github.com/jsphweid/voicelead/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the chords of a MIDI file",
	Long:  `Lists every chord sounding in a MIDI file with its pitch-class set and, when it has one, its name.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		for _, c := range chord.GetChords(s) {
			set := model.FromKeys(c.Notes)
			offset := time.Duration(c.Offset) * time.Microsecond
			keys := make([]int, len(c.Notes))
			for i, n := range c.Notes {
				keys[i] = int(n)
			}
			printVoicing(cmd.OutOrStdout(), offset.Seconds(), set, model.Voicing(keys), false)
			fmt.Fprintf(cmd.OutOrStdout(), "         %s %d\n", timeStyle.Render(set.String()), int(set))
		}
		return nil
	},
}
