package model

type Notes = []uint8

// Chord is a set of simultaneously sounding keys extracted from a MIDI file.
type Chord struct {
	// microseconds from the start of the file
	Offset int64
	Notes  Notes
}

type ReducedEvent struct {
	Offset    int64
	IsNoteOff bool
	Note      uint8
}
