package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/clock"
	"github.com/jobpulse/jobpulse/internal/config"
	"github.com/jobpulse/jobpulse/internal/database"
	"github.com/jobpulse/jobpulse/internal/events"
	"github.com/jobpulse/jobpulse/internal/modules/alerts"
	"github.com/jobpulse/jobpulse/internal/modules/analysis"
	"github.com/jobpulse/jobpulse/internal/modules/facts"
	"github.com/jobpulse/jobpulse/internal/modules/snapshot"
	"github.com/jobpulse/jobpulse/internal/modules/trends"
	"github.com/jobpulse/jobpulse/internal/scheduler"
	"github.com/jobpulse/jobpulse/internal/server"
	"github.com/jobpulse/jobpulse/internal/workers"
	"github.com/jobpulse/jobpulse/pkg/logger"
)

// walCheckpointSchedule keeps the WAL small between analysis runs
const walCheckpointSchedule = "@every 1h"

// vacuumSchedule rebuilds the database file on Sunday mornings, after the
// weekly alert cleanup has freed pages
const vacuumSchedule = "0 0 7 * * 0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info"})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting JobPulse")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Initialize schemas
	for _, init := range []func(*sql.DB) error{
		facts.InitSchema,
		snapshot.InitSchema,
		trends.InitSchema,
		alerts.InitSchema,
	} {
		if err := init(db.Conn()); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize schema")
		}
	}

	// Fact store repositories
	jobRepo := facts.NewJobRepository(db.Conn(), log)
	skillRepo := facts.NewSkillRepository(db.Conn(), log)
	salaryRepo := facts.NewSalaryRepository(db.Conn(), log)

	// Computed table repositories
	snapshotRepo := snapshot.NewRepository(db.Conn(), log)
	skillTrendRepo := trends.NewSkillTrendRepository(db.Conn(), log)
	salaryTrendRepo := trends.NewSalaryTrendRepository(db.Conn(), log)
	velocityRepo := trends.NewCompanyVelocityRepository(db.Conn(), log)
	densityRepo := trends.NewLocationDensityRepository(db.Conn(), log)
	roleTrendRepo := trends.NewRoleTrendRepository(db.Conn(), log)
	alertRepo := alerts.NewRepository(db.Conn(), log)

	clk := clock.System{}
	eventManager := events.NewManager(log)
	pool := workers.NewPool(cfg.AnalysisWorkers)

	// Analysis pipeline
	builder := snapshot.NewBuilder(jobRepo, skillRepo, salaryRepo, snapshotRepo, clk, log)
	engine := trends.NewEngine(trends.EngineConfig{
		Jobs:         jobRepo,
		Skills:       skillRepo,
		Salaries:     salaryRepo,
		SkillTrends:  skillTrendRepo,
		SalaryTrends: salaryTrendRepo,
		Velocity:     velocityRepo,
		Density:      densityRepo,
		Roles:        roleTrendRepo,
		Pool:         pool,
		Log:          log,
	})
	detector := alerts.NewDetector(skillTrendRepo, salaryTrendRepo, velocityRepo, alertRepo, eventManager, log)
	analysisService := analysis.NewService(analysis.ServiceConfig{
		Builder:     builder,
		Engine:      engine,
		Detector:    detector,
		Snapshots:   snapshotRepo,
		SkillTrends: skillTrendRepo,
		Velocity:    velocityRepo,
		Density:     densityRepo,
		Events:      eventManager,
		Clock:       clk,
		Log:         log,
	})

	// Initialize scheduler
	sched := scheduler.New(log)
	if err := registerJobs(sched, cfg, db, analysisService, alertRepo, eventManager, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:           cfg.Port,
		DevMode:        cfg.DevMode,
		Log:            log,
		DB:             db,
		MarketHandlers: analysis.NewMarketHandlers(analysisService, log),
		AlertHandlers:  alerts.NewAlertHandlers(alertRepo, log),
		SystemHandlers: server.NewSystemHandlers(db, log),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(
	sched *scheduler.Scheduler,
	cfg *config.Config,
	db *database.DB,
	analysisService *analysis.Service,
	alertRepo *alerts.Repository,
	eventManager *events.Manager,
	log zerolog.Logger,
) error {
	if err := sched.AddJob(cfg.AnalysisSchedule, scheduler.NewDailyAnalysisJob(analysisService, log)); err != nil {
		return err
	}
	if err := sched.AddJob(cfg.CleanupSchedule, scheduler.NewAlertCleanupJob(alertRepo, eventManager, cfg.AlertRetentionDays, log)); err != nil {
		return err
	}
	if err := sched.AddJob(walCheckpointSchedule, scheduler.NewWALCheckpointJob(db, log)); err != nil {
		return err
	}
	return sched.AddJob(vacuumSchedule, scheduler.NewVacuumJob(db, log))
}
