package repository

import (
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"strings"
)

// One document per bucket: {_id: bucket, <school>: <count>, ...}.

func (m *MongoDB) Increment(ctx context.Context, bucket, school string, delta int64) error {
	if err := checkField(school); err != nil {
		return err
	}
	collection, err := m.collection(ctx, votesCollection)
	if err != nil {
		return err
	}
	return incrementField(ctx, collection, bucket, school, delta)
}

// IncrementPair runs both increments in one multi-document transaction,
// which needs a replica set or sharded cluster.
func (m *MongoDB) IncrementPair(ctx context.Context, first, second, school string, delta int64) error {
	if err := checkField(school); err != nil {
		return err
	}
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	collection := connection.Database(m.database).Collection(votesCollection)

	session, err := connection.StartSession()
	if err != nil {
		return fmt.Errorf("mongodb start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, bucket := range []string{first, second} {
			if err := incrementField(sc, collection, bucket, school, delta); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("mongodb transaction: %w", err)
	}
	return nil
}

func (m *MongoDB) Read(ctx context.Context, bucket string) (map[string]int64, error) {
	collection, err := m.collection(ctx, votesCollection)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	err = collection.FindOne(ctx, bson.D{{"_id", bucket}}).Decode(&doc)
	if err != nil {
		return map[string]int64{}, m.findError(err)
	}
	return countsFromDocument(doc), nil
}

func incrementField(ctx context.Context, collection *mongo.Collection, bucket, school string, delta int64) error {
	filter := bson.D{{"_id", bucket}}
	update := bson.D{{"$inc", bson.D{{school, delta}}}}
	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb increment %s.%s: %w", bucket, school, err)
	}
	return nil
}

func countsFromDocument(doc bson.M) map[string]int64 {
	counts := make(map[string]int64, len(doc))
	for key, value := range doc {
		if key == "_id" {
			continue
		}
		switch n := value.(type) {
		case int32:
			counts[key] = int64(n)
		case int64:
			counts[key] = n
		case float64:
			counts[key] = int64(n)
		}
	}
	return counts
}

// checkField keeps school codes usable as top-level field names.
func checkField(name string) error {
	if name == "" || strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid counter field %q", name)
	}
	return nil
}
