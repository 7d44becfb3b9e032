package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/domain"
	"github.com/avowell/daybreak/internal/repository"
)

// Storage-boundary glue. These handlers validate minimally and delegate to
// the repositories; the planning subsystems read the same rows.

// createUser registers a user and seeds a default profile in one transaction,
// so a half-created user can never be observed.
func (s *Server) createUser(c *gin.Context) {
	var body struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		Timezone    string `json:"timezone"`
	}
	if err := c.BindJSON(&body); err != nil || strings.TrimSpace(body.ID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
		return
	}
	tz := domain.CoalesceStr(body.Timezone, "UTC")

	exists, err := s.users.Exists(c.Request.Context(), body.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
		return
	}

	err = s.uow.WithinTx(c.Request.Context(), func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteUserRepo(tx).Create(ctx, body.ID, body.DisplayName, tz); err != nil {
			return err
		}
		profile := &domain.UserProfile{
			UserID:      body.ID,
			DisplayName: body.DisplayName,
			Timezone:    tz,
		}
		profile.Normalize()
		return repository.NewSQLiteUserProfileRepo(tx).Upsert(ctx, profile)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": body.ID})
}

func (s *Server) createTask(c *gin.Context) {
	var body struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Priority    string     `json:"priority"`
		EstimateMin int        `json:"estimate_min"`
		DueDate     *time.Time `json:"due_date"`
		Category    string     `json:"category"`
	}
	if err := c.BindJSON(&body); err != nil || strings.TrimSpace(body.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.NewString(),
		UserID:      c.Param("id"),
		Title:       body.Title,
		Description: body.Description,
		Priority:    domain.CoercePriority(body.Priority),
		EstimateMin: body.EstimateMin,
		DueDate:     body.DueDate,
		Category:    body.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(c.Request.Context(), task); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) listTasks(c *gin.Context) {
	includeCompleted := c.Query("include_completed") == "true"
	tasks, err := s.tasks.List(c.Request.Context(), c.Param("id"), includeCompleted)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) completeTask(c *gin.Context) {
	if err := s.tasks.MarkCompleted(c.Request.Context(), c.Param("taskID")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createGoal(c *gin.Context) {
	var body struct {
		Title       string     `json:"title"`
		ProgressPct float64    `json:"progress_pct"`
		TargetDate  *time.Time `json:"target_date"`
	}
	if err := c.BindJSON(&body); err != nil || strings.TrimSpace(body.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal payload"})
		return
	}

	goal := &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      c.Param("id"),
		Title:       body.Title,
		ProgressPct: body.ProgressPct,
		TargetDate:  body.TargetDate,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := s.goals.Create(c.Request.Context(), goal); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) listGoals(c *gin.Context) {
	goals, err := s.goals.ListActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (s *Server) createHabit(c *gin.Context) {
	var body struct {
		Title         string `json:"title"`
		PreferredTime string `json:"preferred_time"`
		DurationMin   int    `json:"duration_min"`
		Frequency     string `json:"frequency"`
	}
	if err := c.BindJSON(&body); err != nil || strings.TrimSpace(body.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit payload"})
		return
	}

	preferred := domain.TimeOfDay(body.PreferredTime)
	switch preferred {
	case domain.TimeMorning, domain.TimeAfternoon, domain.TimeEvening:
	default:
		preferred = domain.TimeMorning
	}
	frequency := domain.HabitFrequency(body.Frequency)
	if frequency != domain.FrequencyWeekly {
		frequency = domain.FrequencyDaily
	}

	habit := &domain.Habit{
		ID:            uuid.NewString(),
		UserID:        c.Param("id"),
		Title:         body.Title,
		PreferredTime: preferred,
		DurationMin:   domain.CoalesceInt(15, body.DurationMin),
		Frequency:     frequency,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	if err := s.habits.Create(c.Request.Context(), habit); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

func (s *Server) listHabits(c *gin.Context) {
	habits, err := s.habits.ListActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) putProfile(c *gin.Context) {
	var body domain.UserProfile
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}
	body.UserID = c.Param("id")
	body.Normalize()

	if err := s.profiles.Upsert(c.Request.Context(), &body); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
