package cmd

import (
	"path/filepath"
	"testing"

	"github.com/jsphweid/voicelead/progression"
	"github.com/jsphweid/voicelead/voicelead"
	"github.com/stretchr/testify/assert"
)

func TestSavedProgressionResolvesTheSame(t *testing.T) {
	entries, err := progression.ParseArgs([]string{"0:FM7", "1:Bbm7!", "2::73", "3:145"})
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "progression.yaml")
	assert.NoError(t, saveProgression(path, entries, 2))

	f, err := progression.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, f.DefaultDuration)
	assert.Equal(t, entries, f.Chords)

	want, err := resolveEntries(voicelead.DefaultOptions(), entries, 2)
	assert.NoError(t, err)
	got, err := resolveEntries(voicelead.DefaultOptions(), f.Chords, f.DefaultDuration)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 5.0, got.End)
}
