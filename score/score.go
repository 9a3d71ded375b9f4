package score

import (
	"sort"

	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/util"
)

// Score owns the note events handed to it; callers should not keep using the
// slices they appended.
type Score struct {
	Events []model.NoteEvent
}

func New() *Score {
	return &Score{}
}

func (s *Score) Append(events ...model.NoteEvent) {
	s.Events = append(s.Events, events...)
}

func (s *Score) Len() int {
	return len(s.Events)
}

// Sort orders events by time, then key.
func (s *Score) Sort() {
	sort.SliceStable(s.Events, func(i, j int) bool {
		if s.Events[i].Time != s.Events[j].Time {
			return s.Events[i].Time < s.Events[j].Time
		}
		return s.Events[i].Key < s.Events[j].Key
	})
}

// Arrange reassigns every event of instrument from to instrument to, scaling
// its velocity by gain.
func (s *Score) Arrange(from, to int, gain float64) {
	for i := range s.Events {
		if s.Events[i].Instrument != from {
			continue
		}
		s.Events[i].Instrument = to
		s.Events[i].Velocity *= gain
	}
}

// Duration is the time from the earliest onset to the latest release.
func (s *Score) Duration() float64 {
	if len(s.Events) == 0 {
		return 0
	}
	start, end := s.Events[0].Time, s.Events[0].End()
	for _, e := range s.Events {
		start = util.Min(start, e.Time)
		end = util.Max(end, e.End())
	}
	return end - start
}

// Instruments lists the instruments in use, lowest first.
func (s *Score) Instruments() []int {
	seen := make(map[int]bool)
	for _, e := range s.Events {
		seen[e.Instrument] = true
	}
	return util.GetKeysSorted(seen)
}

func (s *Score) ByInstrument(instrument int) []model.NoteEvent {
	var res []model.NoteEvent
	for _, e := range s.Events {
		if e.Instrument == instrument {
			res = append(res, e)
		}
	}
	return res
}
