// Package rescale remaps note event fields into the ranges a synthesizer expects.
package rescale

import (
	"fmt"
	"math"

	"github.com/jsphweid/voicelead/model"
)

type Field int

const (
	Instrument Field = iota
	Time
	Duration
	Key
	Velocity
	Pan
	numFields
)

var fieldNames = []string{"instrument", "time", "duration", "key", "velocity", "pan"}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

type rule struct {
	rescaleMinimum bool
	rescaleRange   bool
	minimum        float64
	rng            float64
}

type Rescale struct {
	rules [numFields]rule
}

func New() *Rescale {
	return &Rescale{}
}

// Set makes the smallest value of field equal minimum (when rescaleMinimum) and
// the distance from smallest to largest equal rng (when rescaleRange).
func (r *Rescale) Set(field Field, rescaleMinimum, rescaleRange bool, minimum, rng float64) {
	r.rules[field] = rule{
		rescaleMinimum: rescaleMinimum,
		rescaleRange:   rescaleRange,
		minimum:        minimum,
		rng:            rng,
	}
}

func get(e *model.NoteEvent, f Field) float64 {
	switch f {
	case Instrument:
		return float64(e.Instrument)
	case Time:
		return e.Time
	case Duration:
		return e.Duration
	case Key:
		return float64(e.Key)
	case Velocity:
		return e.Velocity
	default:
		return e.Pan
	}
}

func set(e *model.NoteEvent, f Field, v float64) {
	switch f {
	case Instrument:
		e.Instrument = int(math.Round(v))
	case Time:
		e.Time = v
	case Duration:
		e.Duration = v
	case Key:
		e.Key = int(math.Round(v))
	case Velocity:
		e.Velocity = v
	default:
		e.Pan = v
	}
}

// Apply returns rescaled copies of events. A field whose values are all equal is
// only translated, since it has no range to stretch.
func (r *Rescale) Apply(events []model.NoteEvent) []model.NoteEvent {
	res := append([]model.NoteEvent(nil), events...)
	if len(res) == 0 {
		return res
	}

	for f := Field(0); f < numFields; f++ {
		rl := r.rules[f]
		if !rl.rescaleMinimum && !rl.rescaleRange {
			continue
		}

		lo, hi := math.Inf(1), math.Inf(-1)
		for i := range res {
			v := get(&res[i], f)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}

		target := lo
		if rl.rescaleMinimum {
			target = rl.minimum
		}
		scale := 1.0
		if rl.rescaleRange && hi > lo {
			scale = rl.rng / (hi - lo)
		}
		for i := range res {
			set(&res[i], f, target+(get(&res[i], f)-lo)*scale)
		}
	}
	return res
}
