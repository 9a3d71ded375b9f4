package db

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/voicelead/model"
	"github.com/stretchr/testify/assert"
)

// fakeDynamo keeps items in memory, keyed by PK.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items map[string]map[string]*dynamodb.AttributeValue
	table string
}

func (f *fakeDynamo) PutItem(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
	f.table = *in.TableName
	f.items[*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[*in.Key["PK"].S]}, nil
}

func TestSaveAndGetProgression(t *testing.T) {
	fake := &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
	store := NewStore(fake, "progressions")

	top := 76
	p := model.Progression{
		Id: "abc",
		Chords: []model.ChordEntry{
			{Time: 0, Name: "FM7", Top: &top},
			{Time: 1, Name: "Bbm7", AvoidParallels: true},
		},
		Notes: []model.NoteEvent{
			{Time: 0, Duration: 1, Key: 76, Velocity: 64},
		},
		Relaxations: []model.Relaxation{{Time: 1, Reason: "parallel motion unavoidable"}},
		CreatedAt:   1700000000,
	}

	assert := assert.New(t)
	assert.NoError(store.SaveProgression(p))
	assert.Equal("progressions", fake.table)
	assert.Equal("abc", *fake.items["abc"]["PK"].S)

	got, err := store.GetProgression("abc")
	assert.NoError(err)
	assert.Equal(p, got)
}

func TestGetMissingProgression(t *testing.T) {
	fake := &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
	_, err := NewStore(fake, "progressions").GetProgression("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}
