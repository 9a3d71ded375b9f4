package voicelead

import (
	"fmt"
	"sort"

	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/logger"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/util"
)

// maxCandidates caps how many voicings are scored for a single chord.
const maxCandidates = 50000

type ResolvedChord struct {
	Event   model.ChordEvent
	Voicing model.Voicing
}

type Resolution struct {
	Chords      []ResolvedChord
	Notes       []model.NoteEvent
	Relaxations []ParallelMotionUnavoidable
	// End is when the notes of the last chord stop.
	End float64
}

// Resolve voices every recorded chord and emits one note per voice. It does not
// modify the engine, so calling it again returns an equal Resolution.
func (e *Engine) Resolve() (*Resolution, error) {
	if len(e.events) == 0 {
		return nil, ErrEmptySequence
	}

	events, err := e.sortedEvents()
	if err != nil {
		return nil, err
	}

	res := &Resolution{}
	var prev model.Voicing
	for i, ev := range events {
		var v model.Voicing
		if i == 0 {
			v = e.initialVoicing(ev)
		} else {
			var relaxed bool
			v, relaxed = e.nextVoicing(prev, ev)
			if relaxed {
				p := ParallelMotionUnavoidable{Time: ev.Time, Voicing: v}
				res.Relaxations = append(res.Relaxations, p)
				logger.Warn("parallel motion unavoidable", logger.Fields{
					"time":    ev.Time,
					"voicing": []int(v),
				})
			}
		}
		res.Chords = append(res.Chords, ResolvedChord{Event: ev, Voicing: v})
		prev = v
	}

	res.End = events[len(events)-1].Time + e.opts.DefaultDuration
	for i, c := range res.Chords {
		duration := e.opts.DefaultDuration
		if i < len(res.Chords)-1 {
			duration = res.Chords[i+1].Event.Time - c.Event.Time
		}
		for _, key := range c.Voicing {
			res.Notes = append(res.Notes, model.NoteEvent{
				Instrument: constants.NeutralInstrument,
				Time:       c.Event.Time,
				Duration:   duration,
				Key:        key,
				Velocity:   constants.NeutralVelocity,
				Pan:        constants.NeutralPan,
			})
		}
	}
	return res, nil
}

// sortedEvents orders a copy of the events by time, keeping insertion order for
// ties, and fills in the harmony of events that reuse the previous one.
func (e *Engine) sortedEvents() ([]model.ChordEvent, error) {
	events := append([]model.ChordEvent(nil), e.events...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})

	for i := range events {
		if !events[i].Inherit {
			continue
		}
		if i == 0 {
			return nil, fmt.Errorf("%w: event at %v", ErrNoHarmony, events[i].Time)
		}
		events[i].Set = events[i-1].Set
		events[i].Root = events[i-1].Root
		if events[i].HasTop() && !events[i].Set.Contains(events[i].Top) {
			return nil, fmt.Errorf("%w: key %d is not in %v at %v", ErrInvalidTopVoice, events[i].Top, events[i].Set, events[i].Time)
		}
		if events[i].HasTop() && !fitsBelow(events[i].Set, events[i].Top) {
			return nil, fmt.Errorf("%w: %v does not fit under key %d at %v", ErrInvalidTopVoice, events[i].Set, events[i].Top, events[i].Time)
		}
	}
	return events, nil
}

// closedOrder lists the pitch classes from bass to top of a closed position
// voicing: starting on the root when there is one, otherwise on whichever
// rotation spans the smallest interval.
func closedOrder(set model.PitchClassSet, root int) []int {
	pcs := set.PitchClasses()
	start := 0
	if root != model.NoRoot && set.Contains(root) {
		for i, p := range pcs {
			if p == root {
				start = i
			}
		}
	} else {
		best := 12
		for i := range pcs {
			prev := pcs[(i+len(pcs)-1)%len(pcs)]
			span := util.Mod(prev-pcs[i], 12)
			if span < best {
				best = span
				start = i
			}
		}
	}
	return append(append([]int(nil), pcs[start:]...), pcs[:start]...)
}

// fitsBelow reports whether every pitch class of set has a key within the
// octave at or under top, so closedBelow can sound the whole set.
func fitsBelow(set model.PitchClassSet, top int) bool {
	for _, p := range set.PitchClasses() {
		if top-util.Mod(top-p, 12) < 0 {
			return false
		}
	}
	return true
}

// closedBelow stacks the rest of set in closed position under top.
func closedBelow(set model.PitchClassSet, top int) model.Voicing {
	v := model.Voicing{top}
	for key := top - 1; key > top-12 && key >= 0; key-- {
		if set.Contains(key) {
			v = append(model.Voicing{key}, v...)
		}
	}
	return v
}

func (e *Engine) initialVoicing(ev model.ChordEvent) model.Voicing {
	if ev.HasTop() {
		return closedBelow(ev.Set, ev.Top)
	}

	var v model.Voicing
	key := e.opts.BassFloor - 1
	for _, p := range closedOrder(ev.Set, ev.Root) {
		key++
		for util.Mod(key, 12) != p {
			key++
		}
		v = append(v, key)
	}
	return v
}

type candidate struct {
	voicing   model.Voicing
	cost      int
	parallels bool
}

// better orders candidates by cost, then span, then keys from the bass up.
func (c candidate) better(o *candidate) bool {
	if o == nil {
		return true
	}
	if c.cost != o.cost {
		return c.cost < o.cost
	}
	if c.voicing.Span() != o.voicing.Span() {
		return c.voicing.Span() < o.voicing.Span()
	}
	for i := range c.voicing {
		if c.voicing[i] != o.voicing[i] {
			return c.voicing[i] < o.voicing[i]
		}
	}
	return false
}

func placementsIn(ev model.ChordEvent, low, high int) ([][]int, bool) {
	if ev.HasTop() {
		high = util.Min(high, ev.Top-1)
	}

	var res [][]int
	for _, p := range ev.Set.PitchClasses() {
		if ev.HasTop() && util.Mod(ev.Top, 12) == p {
			res = append(res, []int{ev.Top})
			continue
		}
		var keys []int
		for key := low; key <= high; key++ {
			if util.Mod(key, 12) == p {
				keys = append(keys, key)
			}
		}
		if len(keys) == 0 {
			return nil, false
		}
		res = append(res, keys)
	}
	return res, true
}

// placements lists, per pitch class of the target, the keys it may take: within
// an octave of the previous voicing where possible, else anywhere in the window.
func (e *Engine) placements(prev model.Voicing, ev model.ChordEvent) ([][]int, bool) {
	low := util.Max(e.opts.Low, prev[0]-12)
	high := util.Min(e.opts.High, prev.Top()+12)
	if res, ok := placementsIn(ev, low, high); ok {
		return res, true
	}
	return placementsIn(ev, e.opts.Low, e.opts.High)
}

// trimPlacements keeps the keys nearest to the previous voicing's centre until
// the number of combinations is within maxCandidates.
func trimPlacements(places [][]int, prev model.Voicing) [][]int {
	center := 0
	for _, k := range prev {
		center += k
	}
	center /= len(prev)

	for keep := 4; keep > 1; keep-- {
		total := 1
		for _, keys := range places {
			total *= len(keys)
			if total > maxCandidates {
				break
			}
		}
		if total <= maxCandidates {
			return places
		}
		for i, keys := range places {
			if len(keys) <= keep {
				continue
			}
			sorted := append([]int(nil), keys...)
			sort.SliceStable(sorted, func(a, b int) bool {
				return util.Abs(sorted[a]-center) < util.Abs(sorted[b]-center)
			})
			places[i] = sorted[:keep]
		}
	}
	return places
}

func (e *Engine) nextVoicing(prev model.Voicing, ev model.ChordEvent) (model.Voicing, bool) {
	places, ok := e.placements(prev, ev)
	if !ok {
		// the pinned top leaves no room inside the window
		v := closedBelow(ev.Set, ev.Top)
		return v, ev.AvoidParallels && hasParallels(align(prev, v))
	}
	places = trimPlacements(places, prev)

	var best, bestClean *candidate
	current := make([]int, len(places))
	var walk func(i int)
	walk = func(i int) {
		if i < len(places) {
			for _, key := range places[i] {
				current[i] = key
				walk(i + 1)
			}
			return
		}
		v := append(model.Voicing(nil), current...)
		sort.Ints(v)
		pairs := align(prev, v)
		c := candidate{voicing: v, cost: cost(pairs)}
		if ev.AvoidParallels {
			c.parallels = hasParallels(pairs)
		}
		if c.better(best) {
			cc := c
			best = &cc
		}
		if !c.parallels && c.better(bestClean) {
			cc := c
			bestClean = &cc
		}
	}
	walk(0)

	if !ev.AvoidParallels {
		return best.voicing, false
	}
	if bestClean == nil {
		return best.voicing, true
	}
	return bestClean.voicing, false
}
