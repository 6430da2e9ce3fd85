// Package bootstrap assembles repositories, services, and handlers into a
// runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/analysis"
	"cvmatch-backend/internal/auth"
	"cvmatch-backend/internal/jobdescriptions"
	"cvmatch-backend/internal/matcher"
	"cvmatch-backend/internal/matcher/openai"
	"cvmatch-backend/internal/profiles"
	"cvmatch-backend/internal/queue"
	"cvmatch-backend/internal/shared/config"
	"cvmatch-backend/internal/shared/server"
	"cvmatch-backend/internal/shared/storage/db"
	"cvmatch-backend/internal/shared/telemetry"
	"cvmatch-backend/internal/users"
)

// App is the wired application.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Analysis  *analysis.Service
	Processor *analysis.Processor
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Build wires the application from configuration. With a DATABASE_URL it
// uses Postgres; otherwise, outside production, it falls back to in-memory
// repositories so the API runs standalone.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	var (
		database *sql.DB
		userRepo users.Repo
		profRepo profiles.Repo
		jdRepo   jobdescriptions.Repo
		anRepo   analysis.Repo
	)

	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		database = conn
		userRepo = &users.PGRepo{DB: conn}
		profRepo = profiles.NewPGRepo(conn)
		jdRepo = &jobdescriptions.PGRepo{DB: conn}
		anRepo = &analysis.PGRepo{DB: conn}
	case cfg.IsDevLike():
		telemetry.Warn("bootstrap.memory_repos", map[string]any{
			"reason": "DATABASE_URL not set",
		})
		userRepo = users.NewMemoryRepo()
		profRepo = profiles.NewMemoryRepo()
		jdRepo = jobdescriptions.NewMemoryRepo()
		anRepo = analysis.NewMemoryRepo()
	default:
		return nil, errors.New("DATABASE_URL is required in production")
	}

	userSvc := users.NewService(userRepo)
	profSvc := profiles.NewService(profRepo)
	jdSvc := &jobdescriptions.Service{Repo: jdRepo, Analyses: anRepo}

	matchClient := buildMatcher(cfg)

	analysisSvc := &analysis.Service{
		Repo:            anRepo,
		JobDescriptions: &jobDescriptionSource{repo: jdRepo},
	}
	processor := analysis.NewProcessor(analysisSvc, profRepo, matchClient)

	queueClient, err := buildQueue(ctx, cfg, processor)
	if err != nil {
		return nil, err
	}
	analysisSvc.Queue = queueClient

	googleAuth := auth.NewGoogleService(
		cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, userSvc)

	router := server.NewRouter(server.Deps{
		Config: cfg,
		Handlers: []server.RouteRegistrar{
			profiles.NewHandler(profSvc, cfg.Env),
			jobdescriptions.NewHandler(jdSvc, cfg.Env),
			analysis.NewHandler(analysisSvc, cfg.Env),
		},
		GoogleAuth: googleAuth,
	})

	return &App{
		Config:    cfg,
		Router:    router,
		DB:        database,
		Analysis:  analysisSvc,
		Processor: processor,
	}, nil
}

func buildMatcher(cfg config.Config) matcher.Client {
	if cfg.MatcherProvider == "openai" {
		if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
			client, err := openai.NewClient(apiKey, cfg.MatcherModel)
			if err == nil {
				return client
			}
			telemetry.Warn("bootstrap.matcher_init", map[string]any{"error": err.Error()})
		}
	}
	telemetry.Warn("bootstrap.matcher_placeholder", map[string]any{
		"provider": cfg.MatcherProvider,
	})
	return matcher.PlaceholderClient{}
}

func buildQueue(ctx context.Context, cfg config.Config, processor *analysis.Processor) (queue.Client, error) {
	if cfg.QueueURL != "" {
		client, err := queue.NewSQSClient(ctx, cfg.QueueURL, cfg.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("init queue: %w", err)
		}
		return client, nil
	}
	if !cfg.IsDevLike() {
		return nil, errors.New("CM_SQS_QUEUE_URL is required in production")
	}
	// No queue configured: run analyses in-process.
	return &queue.LocalClient{
		Handle: func(taskCtx context.Context, msg queue.Message) {
			taskCtx = analysis.WithRequestID(taskCtx, msg.RequestID)
			if err := processor.ProcessAnalysis(taskCtx, msg.AnalysisID); err != nil {
				telemetry.Error("queue.local_process", map[string]any{
					"analysis_id": msg.AnalysisID,
					"error":       err.Error(),
				})
			}
		},
	}, nil
}

// jobDescriptionSource adapts the job descriptions repo to the narrow view
// the analysis service depends on.
type jobDescriptionSource struct {
	repo jobdescriptions.Repo
}

func (a *jobDescriptionSource) GetByID(ctx context.Context, jdID string) (analysis.JobDescriptionRecord, error) {
	jd, err := a.repo.GetByID(ctx, jdID)
	if errors.Is(err, jobdescriptions.ErrNotFound) {
		return analysis.JobDescriptionRecord{}, analysis.ErrJobDescriptionNotFound
	}
	if err != nil {
		return analysis.JobDescriptionRecord{}, err
	}
	return analysis.JobDescriptionRecord{
		ID:          jd.ID,
		UserID:      jd.UserID,
		Description: jd.Description,
	}, nil
}
