package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"coreselect/internal/llm"
	openai "coreselect/internal/llm/openai"
	"coreselect/internal/parts"
	"coreselect/internal/recommend"
	"coreselect/internal/services/home"
	"coreselect/internal/shared/config"
	"coreselect/internal/shared/server"
	"coreselect/internal/shared/server/middleware"
	"coreselect/internal/shared/storage/db"
	"coreselect/internal/shared/telemetry"
	"coreselect/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Catalog          *parts.Catalog
	UsersRepo        users.Repo
	RecommendRepo    recommend.Repo
	UsersService     *users.Service
	RecommendService *recommend.Service
	UsersHandler     *users.Handler
	PartsHandler     *parts.Handler
	RecommendHandler *recommend.Handler
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	catalog, err := parts.LoadDir(cfg.PartsDataDir)
	if err != nil {
		return nil, fmt.Errorf("load parts catalog: %w", err)
	}
	telemetry.Info("bootstrap.catalog_loaded", map[string]any{
		"dir":   cfg.PartsDataDir,
		"parts": catalog.Size(),
	})

	picker, err := buildPicker(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Catalog: catalog,
	}
	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.RecommendRepo = &recommend.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo(users.SampleUsers()...)
		app.RecommendRepo = recommend.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.RecommendService = recommend.NewService(app.RecommendRepo, catalog, picker)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.PartsHandler = parts.NewHandler(catalog)
	app.RecommendHandler = recommend.NewHandler(app.RecommendService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Home:             home.NewService(),
		UserHandler:      app.UsersHandler,
		PartsHandler:     app.PartsHandler,
		RecommendHandler: app.RecommendHandler,
		Limiter:          middleware.NewRateLimiter(nil),
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	if isDevLike(cfg.Env) {
		// Fall back to memory right away instead of waiting out the retries.
		opts.ConnectAttempts = 1
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildPicker(cfg config.Config) (recommend.Picker, error) {
	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return recommend.LLMPicker{Client: llm.WithRetry(client)}, nil
	default:
		return recommend.CatalogPicker{}, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
