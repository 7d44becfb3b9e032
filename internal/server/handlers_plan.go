package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// generatePlan builds a fresh daily schedule for the user. The planner's
// fallback guarantee means this endpoint only fails on storage errors; a
// degraded plan is reported through the model_version field, not a status
// code.
func (s *Server) generatePlan(c *gin.Context) {
	userID := c.Param("id")

	sc, err := s.planner.BuildScheduleContext(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	plan, err := s.planner.GenerateScheduleWithFallback(c.Request.Context(), userID, sc)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// getPlan returns the stored plan for a date (today by default).
func (s *Server) getPlan(c *gin.Context) {
	userID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	plan, err := s.plans.GetByDate(c.Request.Context(), userID, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
