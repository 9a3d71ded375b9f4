package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

type OnNotes = map[uint8]bool

func CreateChordKey(notes []uint8) string {
	sorted := append([]uint8(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

func getChord(pressed map[uint8]bool, offset int64) model.Chord {
	var c model.Chord
	for note := range pressed {
		c.Notes = append(c.Notes, note)
	}
	sort.Slice(c.Notes, func(i, j int) bool {
		return c.Notes[i] < c.Notes[j]
	})
	c.Offset = offset
	return c
}

func reduceEvents(s *smf.SMF) []model.ReducedEvent {
	var reducedEvents []model.ReducedEvent

	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				// note on with zero velocity is a note off
				reducedEvents = append(reducedEvents, model.ReducedEvent{
					Offset:    absTime,
					IsNoteOff: velocity == 0,
					Note:      key,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, model.ReducedEvent{
					Offset:    absTime,
					IsNoteOff: true,
					Note:      key,
				})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].Offset != reducedEvents[j].Offset {
			return reducedEvents[i].Offset < reducedEvents[j].Offset
		}
		return reducedEvents[i].IsNoteOff && !reducedEvents[j].IsNoteOff
	})
	return reducedEvents
}

// GetChords returns every distinct non-empty set of sounding keys, ordered by the
// time (in microseconds) at which it formed. Simultaneous events collapse into
// the state after the last of them.
func GetChords(s *smf.SMF) []model.Chord {
	timestampToChords := make(map[int64]model.Chord)
	pressed := make(map[uint8]bool)
	for _, evt := range reduceEvents(s) {
		if evt.IsNoteOff {
			delete(pressed, evt.Note)
		} else {
			pressed[evt.Note] = true
		}
		timestampToChords[evt.Offset] = getChord(pressed, evt.Offset)
	}

	var chords []model.Chord
	var lastKey string
	for _, offset := range util.GetKeysSorted(timestampToChords) {
		c := timestampToChords[offset]
		if len(c.Notes) == 0 {
			lastKey = ""
			continue
		}
		key := CreateChordKey(c.Notes)
		if key == lastKey {
			continue
		}
		lastKey = key
		chords = append(chords, c)
	}
	return chords
}
