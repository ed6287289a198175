package models

import (
	"fmt"
	"math"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/symptoms"
)

// Location is a best-effort geolocation reported by the browser.
type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("latitude out of range: %v", l.Lat)
	}
	if math.IsNaN(l.Lng) || l.Lng < -180 || l.Lng > 180 {
		return fmt.Errorf("longitude out of range: %v", l.Lng)
	}
	return nil
}

type PredictionRequest struct {
	Symptoms symptoms.List `json:"symptoms"`
	Location *Location     `json:"location,omitempty"`
}

// DiseaseScore is one ranked candidate returned by the predictor.
type DiseaseScore struct {
	Disease    string  `json:"disease"`
	Confidence float64 `json:"confidence"`
}

// PredictionResult is produced by the external predictor. Ordering and the
// sum of confidences are whatever the predictor returns.
type PredictionResult struct {
	Prediction string         `json:"prediction"`
	Top3       []DiseaseScore `json:"top3"`
}

// PredictionRecord is the persisted form of a successful prediction.
// Records are insert-only.
type PredictionRecord struct {
	Symptoms         []string  `json:"symptoms" bson:"symptoms"`
	PredictedDisease string    `json:"predictedDisease" bson:"predictedDisease"`
	UserLocation     *Location `json:"userLocation" bson:"userLocation"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
}

func (r *PredictionRecord) Validate() error {
	if len(r.Symptoms) == 0 {
		return fmt.Errorf("symptoms are required")
	}
	if r.PredictedDisease == "" {
		return fmt.Errorf("predicted disease is required")
	}
	return nil
}
