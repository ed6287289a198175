package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/Ayash-Bera/medipredict/internal/places"
	"github.com/Ayash-Bera/medipredict/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	msgMissingCoordinates = "Missing coordinates"
	msgInvalidCoordinates = "Invalid coordinates"
	msgHospitalsFailed    = "Failed to fetch hospitals"
	msgHospitalsDisabled  = "Hospital search is not configured"
)

type HospitalFinder interface {
	NearbyHospitals(ctx context.Context, lat, lng float64) (json.RawMessage, error)
}

type HospitalsHandler struct {
	finder HospitalFinder
	logger *logrus.Logger
}

func NewHospitalsHandler(finder HospitalFinder, logger *logrus.Logger) *HospitalsHandler {
	return &HospitalsHandler{
		finder: finder,
		logger: logger,
	}
}

// HandleHospitals returns the places API document for hospitals near the
// given point.
func (h *HospitalsHandler) HandleHospitals(c *gin.Context) {
	var req models.HospitalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidCoordinates)
		return
	}

	if req.Lat == nil || req.Lng == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgMissingCoordinates)
		return
	}

	point := models.Location{Lat: *req.Lat, Lng: *req.Lng}
	if err := point.Validate(); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, msgInvalidCoordinates)
		return
	}

	raw, err := h.finder.NearbyHospitals(c.Request.Context(), point.Lat, point.Lng)
	if err != nil {
		if errors.Is(err, places.ErrNotConfigured) {
			h.logger.Warn("Hospital search requested but no places API key is configured")
			utils.ErrorResponse(c, http.StatusServiceUnavailable, msgHospitalsDisabled)
			return
		}
		h.logger.WithError(err).Error("Hospital search failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, msgHospitalsFailed)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
