// Package voicelead turns timed chord declarations into voice-led note events.
//
// An Engine records chord events through its Set* methods and resolves them
// with Resolve. Each chord after the first is voiced so that the total
// semitone movement from the previous voicing is minimal. An Engine must not
// be mutated from more than one goroutine at a time.
package voicelead

import (
	"fmt"
	"math"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/model"
)

// MaxWindow bounds the register window, and with it the search per chord.
const MaxWindow = 60

type Options struct {
	// Register window searched for voicings after the first chord, inclusive.
	Low  int
	High int
	// Lowest key the bass of the first (closed position) voicing may take.
	BassFloor int
	// Duration of the notes of the last chord.
	DefaultDuration float64
}

func DefaultOptions() Options {
	return Options{
		Low:             constants.RegisterLow,
		High:            constants.RegisterHigh,
		BassFloor:       constants.BassFloor,
		DefaultDuration: constants.DefaultDuration,
	}
}

func (o Options) validate() error {
	switch {
	case o.Low < 0 || o.High > 127:
		return fmt.Errorf("%w: window %d..%d outside the MIDI key range", ErrInvalidOptions, o.Low, o.High)
	case o.High-o.Low < 11:
		return fmt.Errorf("%w: window %d..%d narrower than an octave", ErrInvalidOptions, o.Low, o.High)
	case o.High-o.Low > MaxWindow:
		return fmt.Errorf("%w: window %d..%d wider than %d", ErrInvalidOptions, o.Low, o.High, MaxWindow)
	case o.BassFloor < 0 || o.BassFloor > 115:
		return fmt.Errorf("%w: bass floor %d", ErrInvalidOptions, o.BassFloor)
	case o.DefaultDuration < 0 || math.IsNaN(o.DefaultDuration) || math.IsInf(o.DefaultDuration, 0):
		return fmt.Errorf("%w: default duration %v", ErrInvalidOptions, o.DefaultDuration)
	}
	return nil
}

type Engine struct {
	opts   Options
	events []model.ChordEvent
	seq    int
}

func New() *Engine {
	return &Engine{opts: DefaultOptions()}
}

func NewWithOptions(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

func (e *Engine) Options() Options {
	return e.opts
}

func (e *Engine) SetDefaultDuration(d float64) error {
	opts := e.opts
	opts.DefaultDuration = d
	if err := opts.validate(); err != nil {
		return err
	}
	e.opts = opts
	return nil
}

// Events returns a copy of the recorded events in insertion order.
func (e *Engine) Events() []model.ChordEvent {
	return append([]model.ChordEvent(nil), e.events...)
}

func (e *Engine) Len() int {
	return len(e.events)
}

func (e *Engine) Reset() {
	e.events = nil
	e.seq = 0
}

func checkTime(time float64) error {
	if math.IsNaN(time) || math.IsInf(time, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTime, time)
	}
	return nil
}

func checkTopRange(top int) error {
	if top < 0 || top > 127 {
		return fmt.Errorf("%w: key %d outside the MIDI key range", ErrInvalidTopVoice, top)
	}
	return nil
}

func (e *Engine) record(ev model.ChordEvent) {
	ev.Seq = e.seq
	e.seq++
	e.events = append(e.events, ev)
}

// Set records a chord given either as a pitch-class set or by name. top is a
// MIDI key for the highest voice, or model.NoTop. Nothing is recorded when an
// error is returned.
func (e *Engine) Set(time float64, spec chord.Specifier, top int, avoidParallels bool) error {
	if err := checkTime(time); err != nil {
		return err
	}
	sym, err := spec.Resolve()
	if err != nil {
		return err
	}
	if top != model.NoTop {
		if err := checkTopRange(top); err != nil {
			return err
		}
		if !sym.Set.Contains(top) {
			return fmt.Errorf("%w: key %d is not in %v", ErrInvalidTopVoice, top, sym.Set)
		}
		if !fitsBelow(sym.Set, top) {
			return fmt.Errorf("%w: %v does not fit under key %d", ErrInvalidTopVoice, sym.Set, top)
		}
	}
	e.record(model.ChordEvent{
		Time:           time,
		Set:            sym.Set,
		Root:           sym.Root,
		Top:            top,
		AvoidParallels: avoidParallels,
	})
	return nil
}

func (e *Engine) SetByPitchClassSet(time float64, pcs model.PitchClassSet) error {
	return e.Set(time, chord.BySet(pcs), model.NoTop, false)
}

func (e *Engine) SetByPitchClassSetWithTop(time float64, pcs model.PitchClassSet, top int) error {
	return e.Set(time, chord.BySet(pcs), top, false)
}

func (e *Engine) SetByPitchClassSetAvoidingParallels(time float64, pcs model.PitchClassSet, avoidParallels bool) error {
	return e.Set(time, chord.BySet(pcs), model.NoTop, avoidParallels)
}

func (e *Engine) SetByName(time float64, name string) error {
	return e.Set(time, chord.ByName(name), model.NoTop, false)
}

func (e *Engine) SetByNameWithTop(time float64, name string, top int) error {
	return e.Set(time, chord.ByName(name), top, false)
}

func (e *Engine) SetByNameAvoidingParallels(time float64, name string, avoidParallels bool) error {
	return e.Set(time, chord.ByName(name), model.NoTop, avoidParallels)
}

// Modify records an event that keeps the harmony sounding at time. top is a
// MIDI key for the highest voice, or model.NoTop; whether that harmony contains
// it and fits under it is checked by Resolve.
func (e *Engine) Modify(time float64, top int, avoidParallels bool) error {
	if err := checkTime(time); err != nil {
		return err
	}
	if top != model.NoTop {
		if err := checkTopRange(top); err != nil {
			return err
		}
	}
	e.record(model.ChordEvent{
		Time:           time,
		Root:           model.NoRoot,
		Top:            top,
		AvoidParallels: avoidParallels,
		Inherit:        true,
	})
	return nil
}

// SetTopVoice keeps the harmony sounding at time and pins its top voice.
func (e *Engine) SetTopVoice(time float64, top int) error {
	if top == model.NoTop {
		return fmt.Errorf("%w: no key given", ErrInvalidTopVoice)
	}
	return e.Modify(time, top, false)
}

// AvoidParallelsAt keeps the harmony sounding at time and re-voices it, optionally
// without parallel fifths or octaves.
func (e *Engine) AvoidParallelsAt(time float64, avoidParallels bool) error {
	return e.Modify(time, model.NoTop, avoidParallels)
}
