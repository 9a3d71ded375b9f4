package db

import (
	"errors"
	"fmt"

	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

var ErrNotFound = errors.New("progression not found")

type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewStore(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// Connect opens a store on the endpoint, region and table from the environment.
func Connect() (*Store, error) {
	endpoint := constants.GetDynamoEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("Could not create a new DynamoDB session because %w", err)
	}
	return NewStore(dynamodb.New(session), constants.GetDynamoTable()), nil
}

func (s *Store) SaveProgression(p model.Progression) error {
	item, err := dynamodbattribute.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("Could not marshal progression %s: %w", p.Id, err)
	}
	_, err = s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("Error from DynamoDB: %w", err)
	}
	return nil
}

func (s *Store) GetProgression(id string) (model.Progression, error) {
	var p model.Progression
	out, err := s.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return p, fmt.Errorf("Error from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return p, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := dynamodbattribute.UnmarshalMap(out.Item, &p); err != nil {
		return p, fmt.Errorf("Could not unmarshal progression %s: %w", id, err)
	}
	return p, nil
}
