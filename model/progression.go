package model

// Progression is a resolved request as stored in DynamoDB.
type Progression struct {
	Id          string       `json:"id" dynamodbav:"PK"`
	Chords      []ChordEntry `json:"chords" dynamodbav:"Chords"`
	Notes       []NoteEvent  `json:"notes" dynamodbav:"Notes"`
	Relaxations []Relaxation `json:"relaxations" dynamodbav:"Relaxations"`
	CreatedAt   int64        `json:"createdAt" dynamodbav:"CreatedAt"`
}
