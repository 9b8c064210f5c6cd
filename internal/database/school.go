package repository

import (
	"SchoolPick/entity"
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const schoolsCollection = "schools"

// SyncSchools mirrors the catalog into the schools collection so reports
// run against the database can join counters with names. Documents of
// schools no longer in the catalog are removed.
func (m *MongoDB) SyncSchools(ctx context.Context, schools []entity.School) error {
	collection, err := m.collection(ctx, schoolsCollection)
	if err != nil {
		return err
	}

	codes := make(bson.A, 0, len(schools))
	models := make([]mongo.WriteModel, 0, len(schools)+1)
	for _, school := range schools {
		codes = append(codes, school.Code)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{"_id", school.Code}}).
			SetReplacement(school).
			SetUpsert(true))
	}
	models = append(models, mongo.NewDeleteManyModel().
		SetFilter(bson.D{{"_id", bson.D{{"$nin", codes}}}}))

	_, err = collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("mongodb sync schools: %w", err)
	}
	return nil
}

// GetAllSchools returns the mirrored schools in catalog order.
func (m *MongoDB) GetAllSchools(ctx context.Context) ([]entity.School, error) {
	collection, err := m.collection(ctx, schoolsCollection)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{"order", 1}})

	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schools []entity.School
	if err = cursor.All(ctx, &schools); err != nil {
		return nil, err
	}

	return schools, nil
}
