package main

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/energy"
	"github.com/avowell/daybreak/internal/llm"
	"github.com/avowell/daybreak/internal/planner"
	"github.com/avowell/daybreak/internal/repository"
	"github.com/avowell/daybreak/internal/server"
)

// app wires the repositories and services over one database connection.
type app struct {
	db       *sql.DB
	log      zerolog.Logger
	users    *repository.SQLiteUserRepo
	tasks    *repository.SQLiteTaskRepo
	goals    *repository.SQLiteGoalRepo
	habits   *repository.SQLiteHabitRepo
	profiles *repository.SQLiteUserProfileRepo
	plans    *repository.SQLitePlanRepo
	energy   *repository.SQLiteEnergyRepo
	planner  *planner.Service
	batch    *planner.BatchRunner
	analyzer *energy.Analyzer
}

func buildApp(log zerolog.Logger) (*app, error) {
	database, err := db.OpenDB(dbPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a := &app{
		db:       database,
		log:      log,
		users:    repository.NewSQLiteUserRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
		goals:    repository.NewSQLiteGoalRepo(database),
		habits:   repository.NewSQLiteHabitRepo(database),
		profiles: repository.NewSQLiteUserProfileRepo(database),
		plans:    repository.NewSQLitePlanRepo(database),
		energy:   repository.NewSQLiteEnergyRepo(database),
	}

	// The generation client is optional; without it every plan and insight
	// comes from the deterministic path.
	var client llm.Client
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(log)
		}
		client = llm.NewClient(llmCfg, observer)
	}

	aggregator := planner.NewAggregator(a.profiles, a.aggregates(), a.tasks, a.goals, a.habits)
	a.planner = planner.NewService(aggregator, a.plans, client, log)
	a.batch = planner.NewBatchRunner(a.users, a.planner)
	a.analyzer = energy.NewAnalyzer(a.energy, client, log)

	return a, nil
}

func (a *app) aggregates() *repository.SQLiteAggregateRepo {
	return repository.NewSQLiteAggregateRepo(a.db)
}

func (a *app) close() {
	_ = a.db.Close()
}

func (a *app) server() *server.Server {
	return server.New(server.Deps{
		Planner:  a.planner,
		Analyzer: a.analyzer,
		Users:    a.users,
		Tasks:    a.tasks,
		Goals:    a.goals,
		Habits:   a.habits,
		Profiles: a.profiles,
		Plans:    a.plans,
		Energy:   a.energy,
		UoW:      db.NewSQLiteUnitOfWork(a.db),
		Log:      a.log,
	})
}
