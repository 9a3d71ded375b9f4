package chord

import (
	"errors"
	"fmt"

	"github.com/jsphweid/voicelead/model"
)

var (
	ErrUnknownChordName     = errors.New("unknown chord name")
	ErrInvalidPitchClassSet = errors.New("invalid pitch-class set")
)

// Symbol is a chord resolved to its harmonic content. Root is model.NoRoot when
// the chord was given as a bare set.
type Symbol struct {
	Name string
	Root int
	Set  model.PitchClassSet
}

type quality struct {
	suffix    string
	intervals []int
}

// Ordered so that Identify prefers the plainest spelling.
var qualities = []quality{
	{"", []int{0, 4, 7}},
	{"m", []int{0, 3, 7}},
	{"7", []int{0, 4, 7, 10}},
	{"M7", []int{0, 4, 7, 11}},
	{"m7", []int{0, 3, 7, 10}},
	{"dim", []int{0, 3, 6}},
	{"aug", []int{0, 4, 8}},
	{"m7b5", []int{0, 3, 6, 10}},
	{"dim7", []int{0, 3, 6, 9}},
	{"mM7", []int{0, 3, 7, 11}},
	{"6", []int{0, 4, 7, 9}},
	{"m6", []int{0, 3, 7, 9}},
	{"sus4", []int{0, 5, 7}},
	{"sus2", []int{0, 2, 7}},
	{"7sus4", []int{0, 5, 7, 10}},
	{"7#5", []int{0, 4, 8, 10}},
	{"9", []int{0, 4, 7, 10, 2}},
	{"M9", []int{0, 4, 7, 11, 2}},
	{"m9", []int{0, 3, 7, 10, 2}},
	{"7b9", []int{0, 4, 7, 10, 1}},
	{"add9", []int{0, 4, 7, 2}},
	{"madd9", []int{0, 3, 7, 2}},
	{"69", []int{0, 4, 7, 9, 2}},
	{"11", []int{0, 4, 7, 10, 2, 5}},
	{"13", []int{0, 4, 7, 10, 2, 9}},
	{"5", []int{0, 7}},
}

var aliases = map[string]string{
	"M":       "",
	"maj":     "",
	"min":     "m",
	"-":       "m",
	"dom7":    "7",
	"maj7":    "M7",
	"Maj7":    "M7",
	"min7":    "m7",
	"-7":      "m7",
	"o":       "dim",
	"o7":      "dim7",
	"ø":       "m7b5",
	"ø7":      "m7b5",
	"+":       "aug",
	"+7":      "7#5",
	"aug7":    "7#5",
	"sus":     "sus4",
	"mMaj7":   "mM7",
	"M6":      "6",
	"maj9":    "M9",
	"min9":    "m9",
	"6/9":     "69",
	"minadd9": "madd9",
}

var qualityBySuffix = func() map[string]quality {
	res := make(map[string]quality, len(qualities))
	for _, q := range qualities {
		res[q.suffix] = q
	}
	return res
}()

var roots = map[string]int{
	"C": 0, "B#": 0,
	"C#": 1, "Db": 1,
	"D":  2,
	"D#": 3, "Eb": 3,
	"E": 4, "Fb": 4,
	"F": 5, "E#": 5,
	"F#": 6, "Gb": 6,
	"G":  7,
	"G#": 8, "Ab": 8,
	"A":  9,
	"A#": 10, "Bb": 10,
	"B": 11, "Cb": 11,
}

func splitRoot(name string) (string, string) {
	if len(name) > 1 && (name[1] == '#' || name[1] == 'b') {
		return name[:2], name[2:]
	}
	if len(name) > 0 {
		return name[:1], name[1:]
	}
	return "", ""
}

// Parse resolves names like "FM7", "Bbm7" or "E7".
func Parse(name string) (Symbol, error) {
	rootName, suffix := splitRoot(name)
	root, ok := roots[rootName]
	if !ok {
		return Symbol{}, fmt.Errorf("%w: %q", ErrUnknownChordName, name)
	}
	if canonical, ok := aliases[suffix]; ok {
		suffix = canonical
	}
	q, ok := qualityBySuffix[suffix]
	if !ok {
		return Symbol{}, fmt.Errorf("%w: %q", ErrUnknownChordName, name)
	}

	var set model.PitchClassSet
	for _, interval := range q.intervals {
		set |= model.FromPitchClasses(root + interval)
	}
	return Symbol{Name: name, Root: root, Set: set}, nil
}

func NameToPitchClassSet(name string) (model.PitchClassSet, error) {
	s, err := Parse(name)
	if err != nil {
		return 0, err
	}
	return s.Set, nil
}

// Identify finds a name for set. Roots are tried from C upwards within each
// quality, so symmetrical chords (dim7, aug) are named after the lowest root.
func Identify(set model.PitchClassSet) (Symbol, bool) {
	for _, q := range qualities {
		if len(q.intervals) != set.Len() {
			continue
		}
		for root := 0; root < 12; root++ {
			if model.FromPitchClasses(q.intervals...).Transpose(root) == set {
				return Symbol{
					Name: model.PitchClassNames[root] + q.suffix,
					Root: root,
					Set:  set,
				}, true
			}
		}
	}
	return Symbol{}, false
}
