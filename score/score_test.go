package score

import (
	"testing"

	"github.com/jsphweid/voicelead/model"
	"github.com/stretchr/testify/assert"
)

func TestArrange(t *testing.T) {
	s := New()
	s.Append(
		model.NoteEvent{Instrument: 0, Key: 60, Velocity: 64},
		model.NoteEvent{Instrument: 1, Key: 64, Velocity: 64},
	)
	s.Arrange(0, 12, 0.5)

	assert := assert.New(t)
	assert.Equal(12, s.Events[0].Instrument)
	assert.Equal(32.0, s.Events[0].Velocity)
	assert.Equal(1, s.Events[1].Instrument)
	assert.Equal(64.0, s.Events[1].Velocity)
	assert.Equal([]int{1, 12}, s.Instruments())
}

func TestSortAndDuration(t *testing.T) {
	s := New()
	s.Append(
		model.NoteEvent{Time: 2, Duration: 3, Key: 67},
		model.NoteEvent{Time: 1, Duration: 1, Key: 64},
		model.NoteEvent{Time: 1, Duration: 1, Key: 60},
	)
	s.Sort()

	assert := assert.New(t)
	assert.Equal(60, s.Events[0].Key)
	assert.Equal(64, s.Events[1].Key)
	assert.Equal(67, s.Events[2].Key)
	assert.Equal(4.0, s.Duration())
	assert.Equal(3, s.Len())
	assert.Len(s.ByInstrument(0), 3)
}

func TestEmptyScoreDuration(t *testing.T) {
	assert.Equal(t, 0.0, New().Duration())
}
