package model

import (
	"fmt"
	"strings"
)

// PitchClassSet is a 12-bit mask: bit n is set when pitch class n (0 = C) is present.
// Its integer value is the raw pitch-class-set encoding accepted everywhere a set is.
type PitchClassSet uint16

const AllPitchClasses PitchClassSet = 0xfff

var PitchClassNames = []string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

func pc(key int) int {
	res := key % 12
	if res < 0 {
		res += 12
	}
	return res
}

func FromPitchClasses(pcs ...int) PitchClassSet {
	var s PitchClassSet
	for _, p := range pcs {
		s |= 1 << pc(p)
	}
	return s
}

// FromKeys reduces MIDI keys to their pitch classes.
func FromKeys[A ~int | ~uint8](keys []A) PitchClassSet {
	var s PitchClassSet
	for _, k := range keys {
		s |= 1 << pc(int(k))
	}
	return s
}

func (s PitchClassSet) Valid() bool {
	return s != 0 && s&^AllPitchClasses == 0
}

func (s PitchClassSet) Contains(key int) bool {
	return s&(1<<pc(key)) != 0
}

func (s PitchClassSet) Len() int {
	n := 0
	for p := 0; p < 12; p++ {
		if s&(1<<p) != 0 {
			n++
		}
	}
	return n
}

// PitchClasses are returned in ascending order.
func (s PitchClassSet) PitchClasses() []int {
	res := make([]int, 0, 12)
	for p := 0; p < 12; p++ {
		if s&(1<<p) != 0 {
			res = append(res, p)
		}
	}
	return res
}

func (s PitchClassSet) Transpose(semitones int) PitchClassSet {
	var res PitchClassSet
	for _, p := range s.PitchClasses() {
		res |= 1 << pc(p+semitones)
	}
	return res
}

func (s PitchClassSet) String() string {
	names := make([]string, 0, 12)
	for _, p := range s.PitchClasses() {
		names = append(names, PitchClassNames[p])
	}
	return fmt.Sprintf("{%s}", strings.Join(names, ","))
}
