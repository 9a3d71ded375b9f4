package voicelead

import (
	"sort"

	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/util"
)

// Conform returns a copy of notes with every key moved to the nearest key of the
// harmony sounding at the note's onset (the lower one on a tie). Notes before
// the first chord follow the first chord. With normalizeTimes the chord times
// are first stretched over the span of the notes, so a progression written
// from 0 to 4 can shape notes lasting 20 seconds.
func (r *Resolution) Conform(notes []model.NoteEvent, normalizeTimes bool) []model.NoteEvent {
	res := append([]model.NoteEvent(nil), notes...)
	if len(r.Chords) == 0 || len(notes) == 0 {
		return res
	}

	times := make([]float64, len(r.Chords))
	for i, c := range r.Chords {
		times[i] = c.Event.Time
	}
	if normalizeTimes {
		times = r.normalizedTimes(notes)
	}

	for i, n := range res {
		idx := sort.Search(len(times), func(k int) bool {
			return times[k] > n.Time
		}) - 1
		idx = util.Max(idx, 0)
		res[i].Key = nearestKey(r.Chords[idx].Event.Set, n.Key)
	}
	return res
}

func (r *Resolution) normalizedTimes(notes []model.NoteEvent) []float64 {
	start, end := notes[0].Time, notes[0].End()
	for _, n := range notes {
		start = util.Min(start, n.Time)
		end = util.Max(end, n.End())
	}

	first := r.Chords[0].Event.Time
	span := r.End - first
	times := make([]float64, len(r.Chords))
	for i, c := range r.Chords {
		if span <= 0 {
			times[i] = start
			continue
		}
		times[i] = start + (c.Event.Time-first)/span*(end-start)
	}
	return times
}

func nearestKey(set model.PitchClassSet, key int) int {
	for d := 0; d <= 6; d++ {
		if key-d >= 0 && set.Contains(key-d) {
			return key - d
		}
		if key+d <= 127 && set.Contains(key+d) {
			return key + d
		}
	}
	return key
}
