package voicelead

import (
	"errors"
	"fmt"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/model"
)

var (
	ErrUnknownChordName     = chord.ErrUnknownChordName
	ErrInvalidPitchClassSet = chord.ErrInvalidPitchClassSet
	ErrInvalidTopVoice      = errors.New("invalid top voice")
	ErrInvalidTime          = errors.New("invalid chord time")
	ErrInvalidOptions       = errors.New("invalid engine options")

	ErrEmptySequence = errors.New("no chord events to resolve")
	// ErrNoHarmony is returned when the earliest event only modifies a previous harmony.
	ErrNoHarmony = errors.New("no earlier harmony to reuse")
)

// ParallelMotionUnavoidable reports a transition where parallel fifths or
// octaves were requested to be avoided but every candidate voicing had them.
// The unconstrained voicing was used instead.
type ParallelMotionUnavoidable struct {
	Time    float64
	Voicing model.Voicing
}

func (p ParallelMotionUnavoidable) String() string {
	return fmt.Sprintf("parallel motion unavoidable at %v (kept %v)", p.Time, []int(p.Voicing))
}
