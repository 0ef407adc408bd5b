package db

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/coddhisatva/Synthaia-public-version/model"
)

const tableName = "synthaia-songs"

func newClient(endpoint string) (*dynamodb.DynamoDB, error) {
	cfg := &aws.Config{Region: aws.String("localhost")}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("dynamodb session: %w", err)
	}
	return dynamodb.New(sess), nil
}

// PutSongMetadata records a completed song under its job id.
func PutSongMetadata(endpoint, id string, meta model.SongMetadata) error {
	client, err := newClient(endpoint)
	if err != nil {
		return err
	}

	item := map[string]*dynamodb.AttributeValue{
		"PK":         {S: aws.String(id)},
		"Theme":      {S: aws.String(meta.Theme)},
		"LyricsPath": {S: aws.String(meta.LyricsPath)},
		"MidiPath":   {S: aws.String(meta.MidiPath)},
		"CreatedAt":  {S: aws.String(meta.CreatedAt)},
	}
	if meta.AudioPath != "" {
		item["AudioPath"] = &dynamodb.AttributeValue{S: aws.String(meta.AudioPath)}
	}

	_, err = client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put: %w", err)
	}
	return nil
}

// GetSongMetadatas fetches up to 10 songs by id in one batch.
func GetSongMetadatas(endpoint string, ids []string) (map[string]model.SongMetadata, error) {
	if len(ids) > 10 {
		return nil, fmt.Errorf("at most 10 ids per batch, got %d", len(ids))
	}

	res := make(map[string]model.SongMetadata)
	if len(ids) == 0 {
		return res, nil
	}

	client, err := newClient(endpoint)
	if err != nil {
		return nil, err
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		})
	}

	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			tableName: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		return nil, fmt.Errorf("dynamodb batch get: %w", err)
	}

	for _, v := range dbres.Responses[tableName] {
		var m model.SongMetadata
		if v["Theme"] != nil && v["Theme"].S != nil {
			m.Theme = *v["Theme"].S
		}
		if v["LyricsPath"] != nil && v["LyricsPath"].S != nil {
			m.LyricsPath = *v["LyricsPath"].S
		}
		if v["MidiPath"] != nil && v["MidiPath"].S != nil {
			m.MidiPath = *v["MidiPath"].S
		}
		if v["AudioPath"] != nil && v["AudioPath"].S != nil {
			m.AudioPath = *v["AudioPath"].S
		}
		if v["CreatedAt"] != nil && v["CreatedAt"].S != nil {
			m.CreatedAt = *v["CreatedAt"].S
		}
		res[*v["PK"].S] = m
	}

	return res, nil
}
