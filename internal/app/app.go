package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"model-registry-ops/internal/adapters/secondary/filesystem"
	"model-registry-ops/internal/adapters/secondary/mlflow"
	"model-registry-ops/internal/adapters/secondary/postgres"
	"model-registry-ops/internal/adapters/secondary/scoring"
	"model-registry-ops/internal/config"
	ports "model-registry-ops/internal/core/ports/output"
	"model-registry-ops/internal/core/services"
)

// App holds the wired core services. Both the CLI and the HTTP server
// build one at startup and pass it down.
type App struct {
	Config       *config.Config
	Resolver     *services.StageResolver
	Promotion    *services.PromotionService
	Registration *services.RegistrationService
	Evaluation   *services.EvaluationService
	Transitions  *services.TransitionRecorder

	pool *pgxpool.Pool
}

// Adapters lets callers substitute secondary adapters, mostly in tests.
// Nil fields get the production adapter.
type Adapters struct {
	Registry    ports.RegistryClient
	Artifacts   ports.ArtifactStore
	Predictor   ports.Predictor
	Transitions ports.TransitionRepository
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	return NewWithAdapters(ctx, cfg, Adapters{})
}

func NewWithAdapters(ctx context.Context, cfg *config.Config, a Adapters) (*App, error) {
	app := &App{Config: cfg}

	if a.Registry == nil {
		a.Registry = mlflow.NewRegistryClient(&cfg.Tracking)
		log.WithField("tracking_uri", cfg.Tracking.URI).Info("MLflow registry client initialized")
	}
	if a.Artifacts == nil {
		a.Artifacts = filesystem.NewArtifactStore()
	}
	if a.Predictor == nil {
		a.Predictor = scoring.NewPredictor(&cfg.Scoring)
	}
	if a.Transitions == nil && cfg.Database.Enabled() {
		pool, err := openPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		app.pool = pool
		a.Transitions = postgres.NewTransitionRepository(pool)
		log.Info("transition log enabled")
	} else if a.Transitions == nil {
		log.Info("transition log disabled")
	}

	app.Transitions = services.NewTransitionRecorder(a.Transitions)
	app.Resolver = services.NewStageResolver(a.Registry)
	app.Promotion = services.NewPromotionService(a.Registry, app.Resolver, app.Transitions, services.PromotionOptions{
		Priority:      cfg.Registry.PromotionPriority,
		StrictArchive: cfg.Registry.StrictArchive,
	})
	app.Registration = services.NewRegistrationService(a.Registry, a.Artifacts, app.Transitions, services.RegistrationOptions{
		ModelInfoPath: cfg.Artifacts.ModelInfoPath,
		WaitTimeout:   cfg.Registry.WaitTimeout,
		PollInterval:  cfg.Registry.PollInterval,
	})
	app.Evaluation = services.NewEvaluationService(a.Registry, app.Resolver, a.Artifacts, a.Predictor, services.EvaluationOptions{
		Priority:       cfg.Registry.EvaluationPriority,
		VectorizerPath: cfg.Artifacts.VectorizerPath,
		HoldoutPath:    cfg.Artifacts.HoldoutPath,
		Thresholds:     cfg.Evaluation.Thresholds,
	})

	return app, nil
}

func openPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info("database connection established")
	return pool, nil
}

// Ping checks the optional database. Without one there is nothing local to
// check.
func (a *App) Ping(ctx context.Context) error {
	if a.pool == nil {
		return nil
	}
	return a.pool.Ping(ctx)
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// InitLogger applies the logger settings to the global logrus logger.
func InitLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
