// Package progression reads chord progressions from YAML files and command line
// arguments and records them on a voicelead.Engine.
package progression

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/voicelead"
	"gopkg.in/yaml.v2"
)

var ErrMalformedEntry = errors.New("malformed progression entry")

type File struct {
	Chords          []model.ChordEntry `yaml:"chords"`
	DefaultDuration float64            `yaml:"defaultDuration,omitempty"`
}

func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	return f, nil
}

func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Parse(data)
}

func Marshal(f File) ([]byte, error) {
	return yaml.Marshal(f)
}

// ParseArg reads "time:chord[:top][!]". The chord is a name such as FM7 or a
// raw pitch-class set number; it may be left empty to keep the previous
// harmony. A trailing ! asks for parallel fifths and octaves to be avoided.
func ParseArg(arg string) (model.ChordEntry, error) {
	var entry model.ChordEntry
	if strings.HasSuffix(arg, "!") {
		entry.AvoidParallels = true
		arg = strings.TrimSuffix(arg, "!")
	}

	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return entry, fmt.Errorf("%w: %q", ErrMalformedEntry, arg)
	}

	time, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return entry, fmt.Errorf("%w: bad time in %q", ErrMalformedEntry, arg)
	}
	entry.Time = time

	if c := parts[1]; c != "" {
		if pcs, err := strconv.Atoi(c); err == nil {
			entry.PCS = &pcs
		} else {
			entry.Name = c
		}
	}

	if len(parts) == 3 {
		top, err := strconv.Atoi(parts[2])
		if err != nil {
			return entry, fmt.Errorf("%w: bad top voice in %q", ErrMalformedEntry, arg)
		}
		entry.Top = &top
	}

	if entry.Name == "" && entry.PCS == nil && entry.Top == nil && !entry.AvoidParallels {
		return entry, fmt.Errorf("%w: nothing to do in %q", ErrMalformedEntry, arg)
	}
	return entry, nil
}

func ParseArgs(args []string) ([]model.ChordEntry, error) {
	var res []model.ChordEntry
	for _, arg := range args {
		entry, err := ParseArg(arg)
		if err != nil {
			return nil, err
		}
		res = append(res, entry)
	}
	return res, nil
}

func apply(e *voicelead.Engine, entry model.ChordEntry) error {
	top := model.NoTop
	if entry.Top != nil {
		top = *entry.Top
	}

	switch {
	case entry.Name != "" && entry.PCS != nil:
		return fmt.Errorf("%w: both name and pcs given", ErrMalformedEntry)
	case entry.Name != "":
		return e.Set(entry.Time, chord.ByName(entry.Name), top, entry.AvoidParallels)
	case entry.PCS != nil:
		if *entry.PCS < 0 || *entry.PCS > int(model.AllPitchClasses) {
			return fmt.Errorf("%w: %d", voicelead.ErrInvalidPitchClassSet, *entry.PCS)
		}
		return e.Set(entry.Time, chord.BySet(model.PitchClassSet(*entry.PCS)), top, entry.AvoidParallels)
	case entry.Top != nil || entry.AvoidParallels:
		return e.Modify(entry.Time, top, entry.AvoidParallels)
	}
	return fmt.Errorf("%w: entry at %v has no chord", ErrMalformedEntry, entry.Time)
}

// Apply records entries in order. It stops at the first failing entry; entries
// before it stay recorded.
func Apply(e *voicelead.Engine, entries []model.ChordEntry) error {
	for i, entry := range entries {
		if err := apply(e, entry); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}
