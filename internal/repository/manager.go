package repository

import (
	"context"

	"github.com/Ayash-Bera/medipredict/internal/database"
	"github.com/Ayash-Bera/medipredict/internal/models"
)

// discardRepository drops records when no store is configured.
type discardRepository struct{}

func (discardRepository) Create(ctx context.Context, record *models.PredictionRecord) error {
	return record.Validate()
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	Prediction models.PredictionRepository
}

// NewRepositoryManager picks implementations matching the store the
// database manager opened.
func NewRepositoryManager(dbManager *database.Manager) *RepositoryManager {
	switch {
	case dbManager.DB != nil:
		return &RepositoryManager{Prediction: NewGormPredictionRepository(dbManager.DB)}
	case dbManager.Mongo != nil:
		return &RepositoryManager{Prediction: NewMongoPredictionRepository(dbManager.Mongo)}
	default:
		return &RepositoryManager{Prediction: discardRepository{}}
	}
}
