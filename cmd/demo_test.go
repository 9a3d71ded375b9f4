package cmd

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/midi"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/rescale"
	"github.com/jsphweid/voicelead/score"
	"github.com/jsphweid/voicelead/voicelead"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestBuildDemo(t *testing.T) {
	const length, size = 20.0, 50
	var names []string
	sc, err := buildDemo(length, size, nil, func(name string, _ *voicelead.Resolution) {
		names = append(names, name)
	})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(names, len(demoSections()))
	// 3 single four-note chords and 3 five-chord progressions of sevenths
	assert.Equal(3*4+3*20+len(names)*size, sc.Len())
	assert.Equal([]int{0, 12, 13}, sc.Instruments())

	for _, n := range sc.Events {
		section := math.Floor(n.Time / length)
		assert.GreaterOrEqual(section, 0.0)
		assert.Less(section, float64(len(names)))
		assert.LessOrEqual(n.End(), (section+1)*length+1e-9, "note %+v leaks out of section %v", n, section)
		assert.GreaterOrEqual(n.Key, 0)
		assert.LessOrEqual(n.Key, 127)
	}

	var buf bytes.Buffer
	assert.NoError(midi.WriteScore(&buf, sc))
	s, err := smf.ReadFrom(&buf)
	assert.NoError(err)
	assert.Len(s.Tracks, 4)
}

func TestBuildDemoWithKeyOverride(t *testing.T) {
	o, err := parseRescaleOverride("key=60,12")
	assert.NoError(t, err)

	sc, err := buildDemo(20, 30, []rescaleOverride{o}, nil)
	assert.NoError(t, err)
	for _, n := range sc.ByInstrument(12) {
		// conforming moves a key by at most a tritone
		assert.GreaterOrEqual(t, n.Key, 60-6)
		assert.LessOrEqual(t, n.Key, 72+6)
	}
}

func TestParseRescaleOverride(t *testing.T) {
	o, err := parseRescaleOverride("velocity=40,80")
	assert.NoError(t, err)
	assert.Equal(t, rescaleOverride{field: rescale.Velocity, minimum: 40, rng: 80}, o)

	for _, arg := range []string{"velocity", "velocity=40", "colour=1,2", "time=0,10", "duration=1,1", "key=a,2", "key=1,b"} {
		_, err := parseRescaleOverride(arg)
		assert.Error(t, err, "arg %q", arg)
	}
}

func TestRevoiceRoundTrip(t *testing.T) {
	chords := []model.Chord{
		{Offset: 0, Notes: model.Notes{65, 69, 72, 76}},
		{Offset: 1000000, Notes: model.Notes{58, 61, 65, 68}},
	}
	res, err := revoice(chords, true)

	assert := assert.New(t)
	assert.NoError(err)
	if assert.Len(res.Chords, 2) {
		assert.Equal(0.0, res.Chords[0].Event.Time)
		assert.Equal(1.0, res.Chords[1].Event.Time)
		assert.True(res.Chords[0].Voicing.Realizes(model.FromPitchClasses(5, 9, 0, 4)))
		assert.True(res.Chords[1].Voicing.Realizes(model.FromPitchClasses(10, 1, 5, 8)))
		assert.True(res.Chords[1].Event.AvoidParallels)
	}

	sc := score.New()
	sc.Append(res.Notes...)
	var buf bytes.Buffer
	assert.NoError(midi.WriteScore(&buf, sc))
	s, err := smf.ReadFrom(&buf)
	assert.NoError(err)
	back := chord.GetChords(s)
	if assert.Len(back, 2) {
		assert.Equal(model.FromKeys(chords[1].Notes), model.FromKeys(back[1].Notes))
		assert.Equal(int64(1000000), back[1].Offset)
	}
}

func TestRevoiceNothing(t *testing.T) {
	_, err := revoice(nil, false)
	assert.True(t, errors.Is(err, voicelead.ErrEmptySequence))
}
