package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/Ayash-Bera/medipredict/internal/predictor"
	"github.com/Ayash-Bera/medipredict/internal/symptoms"
	"github.com/Ayash-Bera/medipredict/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	msgBodyTooLarge        = "Request body too large"
	msgSymptomsRequired    = "Symptoms must be a non-empty array or comma-separated string"
	msgPredictorDown       = "Prediction service unavailable"
	msgPredictorBadAnswer  = "Invalid response from prediction service"
	msgInternalServerError = "Internal server error"
)

// PredictionService is what the predict endpoint needs from the service
// layer.
type PredictionService interface {
	Predict(ctx context.Context, symptoms []string, location *models.Location) (*models.PredictionResult, error)
}

type PredictHandler struct {
	service PredictionService
	logger  *logrus.Logger
}

func NewPredictHandler(service PredictionService, logger *logrus.Logger) *PredictHandler {
	return &PredictHandler{
		service: service,
		logger:  logger,
	}
}

// HandlePredict validates the symptom list and relays it to the predictor.
func (h *PredictHandler) HandlePredict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectBody(c, err)
		return
	}

	tokens := symptoms.Normalize(req.Symptoms)
	if len(tokens) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, msgSymptomsRequired)
		return
	}

	location := req.Location
	if location != nil {
		if err := location.Validate(); err != nil {
			h.logger.WithError(err).Warn("Ignoring invalid location")
			location = nil
		}
	}

	result, err := h.service.Predict(c.Request.Context(), tokens, location)
	if err != nil {
		h.logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("Prediction request failed")
		switch {
		case errors.Is(err, predictor.ErrInvalidResponse):
			utils.ErrorResponse(c, http.StatusInternalServerError, msgPredictorBadAnswer)
		case errors.Is(err, predictor.ErrUnavailable):
			utils.ErrorResponse(c, http.StatusServiceUnavailable, msgPredictorDown)
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *PredictHandler) rejectBody(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	h.logger.WithError(err).Debug("Invalid predict request")
	utils.ErrorResponse(c, http.StatusBadRequest, msgSymptomsRequired)
}
