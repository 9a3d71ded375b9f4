package chord

import (
	"fmt"

	"github.com/jsphweid/voicelead/model"
)

// Specifier is either a raw pitch-class set or a chord name. Build one with
// BySet or ByName; the zero value resolves to an error.
type Specifier struct {
	set    model.PitchClassSet
	name   string
	byName bool
}

func BySet(set model.PitchClassSet) Specifier {
	return Specifier{set: set}
}

func ByName(name string) Specifier {
	return Specifier{name: name, byName: true}
}

func (s Specifier) String() string {
	if s.byName {
		return s.name
	}
	return s.set.String()
}

func (s Specifier) Resolve() (Symbol, error) {
	if s.byName {
		return Parse(s.name)
	}
	if !s.set.Valid() {
		return Symbol{}, fmt.Errorf("%w: %d", ErrInvalidPitchClassSet, s.set)
	}
	return Symbol{Name: s.set.String(), Root: model.NoRoot, Set: s.set}, nil
}
