package voicelead

import (
	"testing"

	"github.com/jsphweid/voicelead/model"
	"github.com/stretchr/testify/assert"
)

func TestAlignEqualSizesPairsVoiceForVoice(t *testing.T) {
	motions := align(model.Voicing{53, 57, 60, 64}, model.Voicing{53, 56, 58, 61})
	assert.Equal(t, []motion{{53, 53}, {57, 56}, {60, 58}, {64, 61}}, motions)
}

func TestAlignSplitsVoices(t *testing.T) {
	motions := align(model.Voicing{60, 64, 67}, model.Voicing{60, 64, 67, 70})
	assert.Equal(t, []motion{{60, 60}, {64, 64}, {67, 67}, {67, 70}}, motions)
	assert.Equal(t, 3, cost(motions))
}

func TestAlignMergesVoices(t *testing.T) {
	motions := align(model.Voicing{60, 64, 67, 70}, model.Voicing{60, 65, 69})
	assert.Equal(t, 4, len(motions))
	assert.Equal(t, motion{60, 60}, motions[0])
	assert.Equal(t, motion{70, 69}, motions[3])
}

func TestHasParallels(t *testing.T) {
	cases := []struct {
		name     string
		motions  []motion
		expected bool
	}{
		{"parallel fifths", []motion{{48, 50}, {55, 57}}, true},
		{"parallel octaves", []motion{{48, 50}, {60, 62}}, true},
		{"compound fifths", []motion{{48, 50}, {67, 69}}, true},
		{"fifth to fourth", []motion{{48, 45}, {55, 50}}, false},
		{"contrary fifths", []motion{{48, 50}, {55, 45}}, false},
		{"oblique", []motion{{48, 48}, {55, 57}}, false},
		{"parallel thirds", []motion{{48, 50}, {52, 54}}, false},
		{"split voice", []motion{{48, 50}, {48, 57}}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, hasParallels(c.motions))
		})
	}
}

func TestNearestKeyPrefersLower(t *testing.T) {
	fm7 := model.FromPitchClasses(5, 9, 0, 4)
	assert.Equal(t, 60, nearestKey(fm7, 62))
	assert.Equal(t, 64, nearestKey(fm7, 64))
	// D# is a semitone from E and a minor third from C
	assert.Equal(t, 64, nearestKey(fm7, 63))
	// G is equidistant from F and A
	assert.Equal(t, 65, nearestKey(fm7, 67))
}
