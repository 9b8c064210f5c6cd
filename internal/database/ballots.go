package repository

import (
	"SchoolPick/internal/ballot"
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Scope returns the ballot storage of one visitor, a single document in
// the ballots collection keyed by visitor id.
func (m *MongoDB) Scope(visitorID string) ballot.Storage {
	return &ballotScope{db: m, visitor: visitorID}
}

type ballotScope struct {
	db      *MongoDB
	visitor string
}

func (s *ballotScope) Get(ctx context.Context, key string) (string, bool, error) {
	collection, err := s.db.collection(ctx, ballotsCollection)
	if err != nil {
		return "", false, err
	}

	var doc bson.M
	opts := options.FindOne().SetProjection(bson.D{{key, 1}})
	err = collection.FindOne(ctx, bson.D{{"_id", s.visitor}}, opts).Decode(&doc)
	if err != nil {
		return "", false, s.db.findError(err)
	}
	value, ok := doc[key].(string)
	return value, ok, nil
}

func (s *ballotScope) Set(ctx context.Context, key, value string) error {
	collection, err := s.db.collection(ctx, ballotsCollection)
	if err != nil {
		return err
	}

	filter := bson.D{{"_id", s.visitor}}
	update := bson.D{{"$set", bson.D{{key, value}}}}
	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert ballot: %w", err)
	}
	return nil
}

func (s *ballotScope) Remove(ctx context.Context, key string) error {
	collection, err := s.db.collection(ctx, ballotsCollection)
	if err != nil {
		return err
	}

	filter := bson.D{{"_id", s.visitor}}
	update := bson.D{{"$unset", bson.D{{key, ""}}}}
	_, err = collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb unset ballot key: %w", err)
	}
	return nil
}
