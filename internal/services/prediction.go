// internal/services/prediction.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/Ayash-Bera/medipredict/internal/predictor"
	"github.com/sirupsen/logrus"
)

// ErrNoSymptoms is returned when nothing is left after normalization.
var ErrNoSymptoms = errors.New("at least one symptom is required")

const defaultWriteTimeout = 5 * time.Second

type PredictionService struct {
	predictor    predictor.Predictor
	repo         models.PredictionRepository
	logger       *logrus.Logger
	writeTimeout time.Duration
	now          func() time.Time
	writes       sync.WaitGroup
}

func NewPredictionService(
	p predictor.Predictor,
	repo models.PredictionRepository,
	logger *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		predictor:    p,
		repo:         repo,
		logger:       logger,
		writeTimeout: defaultWriteTimeout,
		now:          time.Now,
	}
}

// Predict relays already-normalized symptoms and, on success, stores a
// record in the background. The caller's result never depends on the write.
func (s *PredictionService) Predict(ctx context.Context, symptoms []string, location *models.Location) (*models.PredictionResult, error) {
	if len(symptoms) == 0 {
		return nil, ErrNoSymptoms
	}

	s.logger.WithField("symptoms", symptoms).Debug("Relaying symptoms to predictor")

	start := time.Now()
	result, err := s.predictor.Predict(ctx, symptoms)
	if err != nil {
		s.logger.WithError(err).WithField("duration_ms", time.Since(start).Milliseconds()).Error("Prediction failed")
		return nil, fmt.Errorf("predict: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"prediction":  result.Prediction,
		"candidates":  len(result.Top3),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Prediction completed")

	record := &models.PredictionRecord{
		Symptoms:         symptoms,
		PredictedDisease: result.Prediction,
		UserLocation:     location,
		CreatedAt:        s.now().UTC(),
	}

	s.writes.Add(1)
	go s.persist(record)

	return result, nil
}

// persist runs detached from the request context so a client disconnect
// does not cancel the insert.
func (s *PredictionService) persist(record *models.PredictionRecord) {
	defer s.writes.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.WithError(err).WithField("prediction", record.PredictedDisease).Error("Failed to store prediction")
		return
	}
	s.logger.WithField("prediction", record.PredictedDisease).Debug("Prediction stored")
}

// Wait blocks until in-flight writes finish or ctx is done.
func (s *PredictionService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.writes.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
