package model

// NoTop marks a ChordEvent without a pinned top voice. NoRoot likewise for Root.
const (
	NoTop  = -1
	NoRoot = -1
)

// ChordEvent is one recorded harmonic declaration. Events with Inherit set
// take their Set (and Root) from the chord sounding before them once the
// sequence is sorted by time.
type ChordEvent struct {
	Time           float64
	Set            PitchClassSet
	Root           int
	Top            int
	AvoidParallels bool
	Inherit        bool
	Seq            int
}

func (e ChordEvent) HasTop() bool {
	return e.Top != NoTop
}

type NoteEvent struct {
	Instrument int     `json:"instrument" yaml:"instrument"`
	Time       float64 `json:"time" yaml:"time"`
	Duration   float64 `json:"duration" yaml:"duration"`
	Key        int     `json:"key" yaml:"key"`
	Velocity   float64 `json:"velocity" yaml:"velocity"`
	Pan        float64 `json:"pan" yaml:"pan"`
}

func (n NoteEvent) End() float64 {
	return n.Time + n.Duration
}

// Voicing lists concrete keys from bass to soprano.
type Voicing []int

// Realizes reports whether every key belongs to s and every pitch class of s is sounded.
func (v Voicing) Realizes(s PitchClassSet) bool {
	return len(v) > 0 && FromKeys([]int(v)) == s
}

func (v Voicing) Top() int {
	return v[len(v)-1]
}

func (v Voicing) Span() int {
	return v[len(v)-1] - v[0]
}
