package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/energy"
	"github.com/avowell/daybreak/internal/planner"
	"github.com/avowell/daybreak/internal/repository"
)

// Server exposes the planning and energy subsystems over HTTP, plus thin
// CRUD glue for the storage boundary.
type Server struct {
	planner  *planner.Service
	analyzer *energy.Analyzer
	users    repository.UserRepo
	tasks    repository.TaskRepo
	goals    repository.GoalRepo
	habits   repository.HabitRepo
	profiles repository.UserProfileRepo
	plans    repository.PlanRepo
	energyR  repository.EnergyRepo
	uow      db.UnitOfWork
	log      zerolog.Logger
}

// Deps bundles the collaborators the server needs.
type Deps struct {
	Planner  *planner.Service
	Analyzer *energy.Analyzer
	Users    repository.UserRepo
	Tasks    repository.TaskRepo
	Goals    repository.GoalRepo
	Habits   repository.HabitRepo
	Profiles repository.UserProfileRepo
	Plans    repository.PlanRepo
	Energy   repository.EnergyRepo
	UoW      db.UnitOfWork
	Log      zerolog.Logger
}

// New creates a Server from its dependencies.
func New(d Deps) *Server {
	return &Server{
		planner:  d.Planner,
		analyzer: d.Analyzer,
		users:    d.Users,
		tasks:    d.Tasks,
		goals:    d.Goals,
		habits:   d.Habits,
		profiles: d.Profiles,
		plans:    d.Plans,
		energyR:  d.Energy,
		uow:      d.UoW,
		log:      d.Log,
	}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	{
		api.POST("/users", s.createUser)

		users := api.Group("/users/:id")
		{
			users.POST("/plan", s.generatePlan)
			users.GET("/plan", s.getPlan)

			users.POST("/energy", s.appendEnergySample)
			users.GET("/energy/analysis", s.energyAnalysis)

			users.POST("/tasks", s.createTask)
			users.GET("/tasks", s.listTasks)
			users.POST("/tasks/:taskID/complete", s.completeTask)

			users.POST("/goals", s.createGoal)
			users.GET("/goals", s.listGoals)

			users.POST("/habits", s.createHabit)
			users.GET("/habits", s.listHabits)

			users.GET("/profile", s.getProfile)
			users.PUT("/profile", s.putProfile)
		}
	}

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request")
	}
}

// respondErr maps storage errors onto HTTP statuses.
func respondErr(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
