package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/voicelead/midi"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/progression"
	"github.com/jsphweid/voicelead/score"
	"github.com/jsphweid/voicelead/voicelead"
	"github.com/spf13/cobra"
)

var (
	resolveFile            string
	resolveOut             string
	resolveSave            string
	resolveDefaultDuration float64
	resolveLow             int
	resolveHigh            int
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveFile, "file", "f", "", "YAML progression to read instead of arguments")
	resolveCmd.Flags().StringVarP(&resolveOut, "out", "o", "", "write the notes to this .mid file")
	resolveCmd.Flags().StringVar(&resolveSave, "save", "", "write the progression to this YAML file")
	resolveCmd.Flags().Float64VarP(&resolveDefaultDuration, "default-duration", "d", 0, "duration of the last chord")
	resolveCmd.Flags().IntVar(&resolveLow, "low", voicelead.DefaultOptions().Low, "lowest key voices may take")
	resolveCmd.Flags().IntVar(&resolveHigh, "high", voicelead.DefaultOptions().High, "highest key voices may take")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [time:chord[:top][!]...]",
	Short: "Voice-leads a chord progression",
	Long: `Voice-leads a chord progression given as arguments or as a YAML file.

Each argument is time:chord[:top][!]. The chord is a name such as FM7 or a
pitch-class set number, top pins the highest voice to a MIDI key and a
trailing ! avoids parallel fifths and octaves. Leaving the chord empty keeps
the previous harmony, e.g. 2::72.`,
	Example: `  voicelead resolve 0:FM7 1:Bbm7 2:E7! 3:Abm7:75 4:FM7
  voicelead resolve -f progression.yaml -o out.mid
  voicelead resolve 0:C 1:G7 2:C --save cadence.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, duration, err := readProgression(resolveFile, args)
		if err != nil {
			return err
		}
		if resolveDefaultDuration > 0 {
			duration = resolveDefaultDuration
		}

		opts := voicelead.DefaultOptions()
		opts.Low, opts.High = resolveLow, resolveHigh
		res, err := resolveEntries(opts, entries, duration)
		if err != nil {
			return err
		}
		printResolution(cmd.OutOrStdout(), res)

		if resolveSave != "" {
			if err := saveProgression(resolveSave, entries, duration); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", resolveSave)
		}
		if resolveOut == "" {
			return nil
		}
		sc := score.New()
		sc.Append(res.Notes...)
		if err := midi.SaveScore(resolveOut, sc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", resolveOut)
		return nil
	},
}

func readProgression(path string, args []string) ([]model.ChordEntry, float64, error) {
	if path == "" {
		if len(args) == 0 {
			return nil, 0, fmt.Errorf("%w: no chords given", progression.ErrMalformedEntry)
		}
		entries, err := progression.ParseArgs(args)
		return entries, 0, err
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "ignoring arguments, reading", path)
	}
	f, err := progression.Load(path)
	if err != nil {
		return nil, 0, err
	}
	return f.Chords, f.DefaultDuration, nil
}

func saveProgression(path string, entries []model.ChordEntry, duration float64) error {
	data, err := progression.Marshal(progression.File{Chords: entries, DefaultDuration: duration})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// resolveEntries runs a fresh engine over entries. A zero duration keeps the
// engine's default.
func resolveEntries(opts voicelead.Options, entries []model.ChordEntry, duration float64) (*voicelead.Resolution, error) {
	if duration > 0 {
		opts.DefaultDuration = duration
	}
	engine, err := voicelead.NewWithOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := progression.Apply(engine, entries); err != nil {
		return nil, err
	}
	return engine.Resolve()
}
