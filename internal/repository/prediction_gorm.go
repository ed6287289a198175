package repository

import (
	"context"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"gorm.io/gorm"
)

// GormPredictionRepository stores predictions in a relational database.
type GormPredictionRepository struct {
	db *gorm.DB
}

func NewGormPredictionRepository(db *gorm.DB) models.PredictionRepository {
	return &GormPredictionRepository{db: db}
}

func (r *GormPredictionRepository) Create(ctx context.Context, record *models.PredictionRecord) error {
	return r.db.WithContext(ctx).Create(models.NewPredictionRow(record)).Error
}
