package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/score"
	"github.com/jsphweid/voicelead/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = &blank, errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("Error reading midi file... %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("Error parsing midi file... %w", err)
	}

	return res, nil
}

type timedMessage struct {
	tick  uint32
	off   bool
	bytes gomidi.Message
}

func toTicks(seconds float64) uint32 {
	return uint32(math.Round(seconds * constants.TicksPerQuarter * constants.TempoBPM / 60))
}

func trackFor(events []model.NoteEvent, start float64) smf.Track {
	var msgs []timedMessage
	for _, e := range events {
		channel := uint8(util.Mod(e.Instrument, 16))
		key := uint8(util.Clamp(e.Key, 0, 127))
		velocity := uint8(util.Clamp(int(math.Round(e.Velocity)), 1, 127))
		on := toTicks(e.Time - start)
		off := toTicks(e.End() - start)
		if off == on {
			// nothing would sound, and the off would land before its own on
			continue
		}
		msgs = append(msgs,
			timedMessage{tick: on, bytes: gomidi.NoteOn(channel, key, velocity)},
			timedMessage{tick: off, off: true, bytes: gomidi.NoteOff(channel, key)},
		)
	}

	// release before striking again at the same tick
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var track smf.Track
	var last uint32
	for _, m := range msgs {
		track.Add(m.tick-last, m.bytes)
		last = m.tick
	}
	track.Close(0)
	return track
}

// WriteScore writes an SMF with a tempo track followed by one track per
// instrument. Instruments map onto channels modulo 16.
func WriteScore(w io.Writer, sc *score.Score) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(constants.TempoBPM))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return err
	}

	var start float64
	for i, e := range sc.Events {
		if i == 0 || e.Time < start {
			start = e.Time
		}
	}
	start = math.Min(start, 0)

	for _, instrument := range sc.Instruments() {
		if err := s.Add(trackFor(sc.ByInstrument(instrument), start)); err != nil {
			return err
		}
	}

	_, err := s.WriteTo(w)
	return err
}

func SaveScore(path string, sc *score.Score) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Couldn't create midi file %v: %w", path, err)
	}
	defer f.Close()

	if err := WriteScore(f, sc); err != nil {
		return fmt.Errorf("Write failed for midi file %v: %w", path, err)
	}
	return nil
}
