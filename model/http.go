package model

type ChordEntry struct {
	Time           float64 `json:"time" yaml:"time"`
	Name           string  `json:"name,omitempty" yaml:"name,omitempty"`
	PCS            *int    `json:"pcs,omitempty" yaml:"pcs,omitempty"`
	Top            *int    `json:"top,omitempty" yaml:"top,omitempty"`
	AvoidParallels bool    `json:"avoidParallels,omitempty" yaml:"avoidParallels,omitempty"`
}

type ResolveRequestBody struct {
	Chords          []ChordEntry `json:"chords"`
	DefaultDuration float64      `json:"defaultDuration,omitempty"`
}

type Relaxation struct {
	Time   float64 `json:"time"`
	Reason string  `json:"reason"`
}

type ResolveResponse struct {
	Id          string       `json:"id"`
	Notes       []NoteEvent  `json:"notes"`
	Relaxations []Relaxation `json:"relaxations"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
