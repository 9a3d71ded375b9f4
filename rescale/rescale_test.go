package rescale

import (
	"testing"

	"github.com/jsphweid/voicelead/model"
	"github.com/stretchr/testify/assert"
)

func TestRescaleMinimumAndRange(t *testing.T) {
	r := New()
	r.Set(Time, true, true, 1, 20)
	r.Set(Velocity, true, true, 60, 9)

	events := []model.NoteEvent{
		{Time: 0, Velocity: 0},
		{Time: 0.5, Velocity: 0.5},
		{Time: 1, Velocity: 1},
	}
	res := r.Apply(events)

	assert := assert.New(t)
	assert.InDelta(1.0, res[0].Time, 1e-9)
	assert.InDelta(11.0, res[1].Time, 1e-9)
	assert.InDelta(21.0, res[2].Time, 1e-9)
	assert.InDelta(64.5, res[1].Velocity, 1e-9)
	// input untouched
	assert.Equal(0.5, events[1].Time)
}

func TestRescaleMinimumOnly(t *testing.T) {
	r := New()
	r.Set(Key, true, false, 36, 0)
	res := r.Apply([]model.NoteEvent{{Key: 53}, {Key: 64}})
	assert.Equal(t, 36, res[0].Key)
	assert.Equal(t, 47, res[1].Key)
}

func TestRescaleDegenerateRangeIsTranslated(t *testing.T) {
	r := New()
	r.Set(Pan, true, true, -0.25, 1.5)
	res := r.Apply([]model.NoteEvent{{Pan: 0}, {Pan: 0}})
	assert.Equal(t, -0.25, res[0].Pan)
	assert.Equal(t, -0.25, res[1].Pan)
}

func TestRescaleInstrumentRounds(t *testing.T) {
	r := New()
	r.Set(Instrument, true, true, 1, 3)
	res := r.Apply([]model.NoteEvent{{Instrument: 0}, {Instrument: 1}, {Instrument: 2}})
	assert.Equal(t, []int{1, 3, 4}, []int{res[0].Instrument, res[1].Instrument, res[2].Instrument})
}

func TestParseField(t *testing.T) {
	f, err := ParseField("velocity")
	assert.NoError(t, err)
	assert.Equal(t, Velocity, f)
	assert.Equal(t, "velocity", f.String())

	_, err = ParseField("status")
	assert.Error(t, err)
}
