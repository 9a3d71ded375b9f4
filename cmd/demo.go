package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/logger"
	"github.com/jsphweid/voicelead/midi"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/rescale"
	"github.com/jsphweid/voicelead/score"
	"github.com/jsphweid/voicelead/util"
	"github.com/jsphweid/voicelead/voicelead"
	"github.com/spf13/cobra"
)

var (
	demoSectionLength float64
	demoMaterialSize  int
	demoOut           string
	demoRescales      []string
)

// longest material note, so onsets can be kept clear of the next section
const maxMaterialDuration = 2.25

func init() {
	demoCmd.Flags().Float64Var(&demoSectionLength, "section", 20, "seconds given to each progression")
	demoCmd.Flags().IntVar(&demoMaterialSize, "notes", 200, "notes of melodic material per section")
	demoCmd.Flags().StringVarP(&demoOut, "out", "o", "", "output file, defaults to a new file in OUT_PATH")
	demoCmd.Flags().StringArrayVar(&demoRescales, "rescale", nil, "override a material field as field=min,range, e.g. key=48,24")
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Renders the stock progressions to a MIDI file",
	Long: `Renders a set of stock progressions one after another. Each section holds
the voice-led chords plus melodic material conformed to them, and the result
is written as a MIDI file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if demoSectionLength <= maxMaterialDuration || demoMaterialSize <= 0 {
			return fmt.Errorf("section must be longer than %v and notes positive", maxMaterialDuration)
		}
		var overrides []rescaleOverride
		for _, arg := range demoRescales {
			o, err := parseRescaleOverride(arg)
			if err != nil {
				return err
			}
			overrides = append(overrides, o)
		}
		path := demoOut
		if path == "" {
			if err := util.EnsureOutputDir(); err != nil {
				return err
			}
			path = filepath.Join(constants.GetOutDir(), "demo-"+uuid.New().String()+".mid")
		}

		sc, err := buildDemo(demoSectionLength, demoMaterialSize, overrides, func(name string, res *voicelead.Resolution) {
			fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render(name))
			printResolution(cmd.OutOrStdout(), res)
		})
		if err != nil {
			return err
		}
		if err := midi.SaveScore(path, sc); err != nil {
			return err
		}
		logger.Info("demo written", logger.Fields{"path": path, "notes": sc.Len(), "duration": sc.Duration()})
		return nil
	},
}

type demoSection struct {
	name    string
	entries []model.ChordEntry
}

func intPtr(i int) *int {
	return &i
}

func demoSections() []demoSection {
	progression := []string{"FM7", "Bbm7", "E7", "Abm7", "FM7"}
	named := func(avoid bool) []model.ChordEntry {
		var res []model.ChordEntry
		for i, name := range progression {
			res = append(res, model.ChordEntry{Time: float64(i), Name: name, AvoidParallels: avoid})
		}
		return res
	}

	// F, A, C and E above middle C, rising
	var pinned []model.ChordEntry
	for i, top := range []int{72, 76, 77, 81, 84} {
		pinned = append(pinned, model.ChordEntry{Time: float64(i), Name: "FM7", Top: intPtr(top)})
	}

	cmaj7 := int(model.FromPitchClasses(0, 4, 7, 11))
	fmaj7 := int(model.FromPitchClasses(5, 9, 0, 4))
	return []demoSection{
		{"CM7 as a set", []model.ChordEntry{{Time: 0, PCS: &cmaj7}}},
		{"FM7 as a set", []model.ChordEntry{{Time: 0, PCS: &fmaj7}}},
		{"FM7 by name", []model.ChordEntry{{Time: 0, Name: "FM7"}}},
		{"progression", named(false)},
		{"progression with pinned tops", pinned},
		{"progression avoiding parallels", named(true)},
	}
}

// material is a deterministic melodic line; rescaling stretches it over the
// section before it is conformed to the harmony.
func material(n int) []model.NoteEvent {
	res := make([]model.NoteEvent, n)
	for i := range res {
		res[i] = model.NoteEvent{
			Instrument: i % 4,
			Time:       float64(i),
			Duration:   float64(1 + i%3),
			Key:        (i * 7) % 25,
			Velocity:   float64(i % 10),
			Pan:        float64(i % 5),
		}
	}
	return res
}

type rescaleOverride struct {
	field        rescale.Field
	minimum, rng float64
}

// parseRescaleOverride reads field=min,range. Time and duration belong to the
// section layout and cannot be overridden.
func parseRescaleOverride(arg string) (rescaleOverride, error) {
	var o rescaleOverride
	name, values, ok := strings.Cut(arg, "=")
	if !ok {
		return o, fmt.Errorf("bad rescale %q, want field=min,range", arg)
	}
	field, err := rescale.ParseField(name)
	if err != nil {
		return o, err
	}
	if field == rescale.Time || field == rescale.Duration {
		return o, fmt.Errorf("bad rescale %q, %v is fixed by the section", arg, field)
	}
	lo, rng, ok := strings.Cut(values, ",")
	if !ok {
		return o, fmt.Errorf("bad rescale %q, want field=min,range", arg)
	}
	if o.minimum, err = strconv.ParseFloat(lo, 64); err != nil {
		return o, fmt.Errorf("bad rescale minimum in %q: %w", arg, err)
	}
	if o.rng, err = strconv.ParseFloat(rng, 64); err != nil {
		return o, fmt.Errorf("bad rescale range in %q: %w", arg, err)
	}
	o.field = field
	return o, nil
}

func demoRescale(start, length float64, overrides []rescaleOverride) *rescale.Rescale {
	r := rescale.New()
	r.Set(rescale.Instrument, true, true, 1, 4)
	r.Set(rescale.Time, true, true, start, length-maxMaterialDuration)
	r.Set(rescale.Duration, true, true, 0.25, maxMaterialDuration-0.25)
	r.Set(rescale.Key, true, true, 36, 60)
	r.Set(rescale.Velocity, true, true, 60, 9)
	r.Set(rescale.Pan, true, true, -0.25, 1.5)
	for _, o := range overrides {
		r.Set(o.field, true, true, o.minimum, o.rng)
	}
	return r
}

func buildDemo(sectionLength float64, size int, overrides []rescaleOverride, report func(string, *voicelead.Resolution)) (*score.Score, error) {
	sc := score.New()
	for i, section := range demoSections() {
		start := float64(i) * sectionLength
		res, err := resolveEntries(voicelead.DefaultOptions(), section.entries, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", section.name, err)
		}
		if report != nil {
			report(section.name, res)
		}

		// chords are stretched over the section like the material
		stretch := sectionLength / res.End
		for _, n := range res.Notes {
			n.Time = start + n.Time*stretch
			n.Duration *= stretch
			sc.Append(n)
		}

		notes := demoRescale(start, sectionLength, overrides).Apply(material(size))
		sc.Append(res.Conform(notes, true)...)
	}

	// material instruments 1..5 share channels 12 and 13, chords stay on 0
	sc.Arrange(1, 12, 1.0)
	for from := 2; from <= 5; from++ {
		sc.Arrange(from, 13, 0.8)
	}
	sc.Sort()
	return sc, nil
}
