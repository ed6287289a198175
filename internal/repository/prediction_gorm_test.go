package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/database"
	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the predictions table.
// The table is created by hand because SQLite has no array column type.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every new connection to :memory: is a fresh database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Exec(`CREATE TABLE predictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symptoms TEXT NOT NULL,
		predicted_disease TEXT NOT NULL,
		user_lat REAL,
		user_lng REAL,
		created_at DATETIME
	)`).Error)

	return db
}

func TestGormPredictionRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPredictionRepository(db)

	created := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	err := repo.Create(context.Background(), &models.PredictionRecord{
		Symptoms:         []string{"fever", "joint pain"},
		PredictedDisease: "Chikungunya",
		UserLocation:     &models.Location{Lat: 12.5, Lng: 0},
		CreatedAt:        created,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Create(context.Background(), &models.PredictionRecord{
		Symptoms:         []string{"cough"},
		PredictedDisease: "Common Cold",
		CreatedAt:        created,
	}))

	var rows []models.PredictionRow
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)

	assert.Equal(t, models.StringArray{"fever", "joint pain"}, rows[0].Symptoms)
	assert.Equal(t, "Chikungunya", rows[0].PredictedDisease)
	require.NotNil(t, rows[0].UserLat)
	assert.Equal(t, 12.5, *rows[0].UserLat)
	assert.Equal(t, 0.0, *rows[0].UserLng)

	assert.Nil(t, rows[1].UserLat)
	assert.Nil(t, rows[1].UserLng)
}

func TestGormPredictionRepository_RejectsInvalidRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPredictionRepository(db)

	err := repo.Create(context.Background(), &models.PredictionRecord{Symptoms: []string{"fever"}})
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.PredictionRow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNewRepositoryManager_WithoutStore(t *testing.T) {
	rm := NewRepositoryManager(&database.Manager{Driver: database.DriverNone})
	require.NotNil(t, rm.Prediction)

	assert.NoError(t, rm.Prediction.Create(context.Background(), &models.PredictionRecord{
		Symptoms:         []string{"fever"},
		PredictedDisease: "Flu",
	}))
}

func TestNewRepositoryManager_Gorm(t *testing.T) {
	rm := NewRepositoryManager(&database.Manager{Driver: database.DriverPostgres, DB: setupTestDB(t)})
	assert.IsType(t, &GormPredictionRepository{}, rm.Prediction)
}
