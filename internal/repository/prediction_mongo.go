package repository

import (
	"context"
	"fmt"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

const PredictionsCollection = "predictions"

// MongoPredictionRepository stores one document per prediction.
type MongoPredictionRepository struct {
	collection *mongo.Collection
}

func NewMongoPredictionRepository(db *mongo.Database) models.PredictionRepository {
	return &MongoPredictionRepository{collection: db.Collection(PredictionsCollection)}
}

func (r *MongoPredictionRepository) Create(ctx context.Context, record *models.PredictionRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}
