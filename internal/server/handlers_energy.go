package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avowell/daybreak/internal/domain"
)

// appendEnergySample records one self-reported energy reading. Samples are
// append-only.
func (s *Server) appendEnergySample(c *gin.Context) {
	userID := c.Param("id")

	var body struct {
		Level      int        `json:"level"`
		RecordedAt *time.Time `json:"recorded_at"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid energy sample payload"})
		return
	}
	if body.Level < domain.MinEnergyLevel || body.Level > domain.MaxEnergyLevel {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level must be between 1 and 5"})
		return
	}

	recordedAt := time.Now()
	if body.RecordedAt != nil {
		recordedAt = *body.RecordedAt
	}

	sample := &domain.EnergySample{
		ID:         uuid.NewString(),
		UserID:     userID,
		RecordedAt: recordedAt,
		Level:      body.Level,
	}
	if err := s.energyR.Append(c.Request.Context(), sample); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sample)
}

// energyAnalysis computes the hourly energy analysis on demand. Below the
// sample threshold the response is 200 with insufficient_data set, since a
// short history is an expected state, not a client error.
func (s *Server) energyAnalysis(c *gin.Context) {
	analysis, err := s.analyzer.Analyze(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
