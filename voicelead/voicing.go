package voicelead

import (
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/util"
)

// motion is one voice moving from one key to another.
type motion struct {
	from, to int
}

// align pairs the voices of two voicings, both sorted bass to top, without
// crossing. Voicings of equal size pair voice for voice. Otherwise a voice of
// the smaller voicing may split into (or merge from) several adjacent voices of
// the larger one; the pairing with the least total movement is chosen.
func align(prev, next model.Voicing) []motion {
	m, n := len(prev), len(next)
	if m == n {
		res := make([]motion, m)
		for i := range prev {
			res[i] = motion{prev[i], next[i]}
		}
		return res
	}

	const (
		diag = iota
		up
		left
	)
	dist := make([][]int, m)
	step := make([][]int, m)
	for i := range dist {
		dist[i] = make([]int, n)
		step[i] = make([]int, n)
		for j := range dist[i] {
			d := util.Abs(prev[i] - next[j])
			switch {
			case i == 0 && j == 0:
				dist[i][j] = d
			case i == 0:
				dist[i][j], step[i][j] = dist[i][j-1]+d, left
			case j == 0:
				dist[i][j], step[i][j] = dist[i-1][j]+d, up
			default:
				dist[i][j], step[i][j] = dist[i-1][j-1]+d, diag
				if dist[i-1][j]+d < dist[i][j] {
					dist[i][j], step[i][j] = dist[i-1][j]+d, up
				}
				if dist[i][j-1]+d < dist[i][j] {
					dist[i][j], step[i][j] = dist[i][j-1]+d, left
				}
			}
		}
	}

	var res []motion
	i, j := m-1, n-1
	for {
		res = append([]motion{{prev[i], next[j]}}, res...)
		if i == 0 && j == 0 {
			return res
		}
		switch step[i][j] {
		case diag:
			i, j = i-1, j-1
		case up:
			i--
		case left:
			j--
		}
	}
}

func cost(motions []motion) int {
	total := 0
	for _, mv := range motions {
		total += util.Abs(mv.to - mv.from)
	}
	return total
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// isPerfect reports whether interval is a unison, octave or fifth, simple or compound.
func isPerfect(interval int) bool {
	ic := util.Mod(interval, 12)
	return ic == 0 || ic == 7
}

// hasParallels reports two voices moving in the same direction from one perfect
// interval into the same perfect interval (fifths to fifths, octaves to octaves).
func hasParallels(motions []motion) bool {
	for a := 0; a < len(motions); a++ {
		for b := a + 1; b < len(motions); b++ {
			lo, hi := motions[a], motions[b]
			if lo.from == hi.from || lo.to == hi.to {
				// split or merged voice
				continue
			}
			dirLo, dirHi := sign(lo.to-lo.from), sign(hi.to-hi.from)
			if dirLo == 0 || dirLo != dirHi {
				continue
			}
			before, after := hi.from-lo.from, hi.to-lo.to
			if isPerfect(before) && util.Mod(before, 12) == util.Mod(after, 12) {
				return true
			}
		}
	}
	return false
}
