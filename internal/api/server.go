package api

import (
	"context"
	"errors"
	"fmt"
	"os"

	"custody/internal/app/config"
	"custody/internal/app/dsn"
	"custody/internal/app/handler"
	"custody/internal/app/logger"
	"custody/internal/app/middleware"
	"custody/internal/app/redis"
	"custody/internal/app/render"
	"custody/internal/app/repository"
	"custody/internal/app/service"
	"custody/internal/app/storage"
	"custody/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "custody/docs"
)

// StartServer loads the configuration, wires every component and serves until ctx ends
// or the process receives SIGINT/SIGTERM.
func StartServer(ctx context.Context) error {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}

	deps, err := NewDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	app := pkg.NewApp(cfg, NewRouter(deps), deps.Sweeper)
	err = app.RunApp(ctx)
	logrus.Info("Server down")
	return err
}

// Deps holds the long-lived components shared by the HTTP server and the CLI.
type Deps struct {
	Config     *config.Config
	Repository *repository.Repository
	Store      storage.Store
	Service    *service.Service
	Redis      *redis.Client
	Sweeper    *service.Sweeper
}

func (d *Deps) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			logrus.WithError(err).Warn("closing redis")
		}
	}
}

// NewDeps opens the database, artifact storage and, when enabled, Redis.
func NewDeps(ctx context.Context, cfg *config.Config) (*Deps, error) {
	repo, err := OpenRepository(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := NewService(cfg, repo, store)
	if err != nil {
		return nil, err
	}

	deps := &Deps{Config: cfg, Repository: repo, Store: store, Service: svc}

	if cfg.Redis.Enabled {
		deps.Redis, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logrus.Warn("redis disabled: token revocation is off")
	}

	if cfg.Sweep.Enabled {
		deps.Sweeper, err = service.NewSweeper(svc, cfg.Sweep.Schedule, cfg.Sweep.Batch)
		if err != nil {
			deps.Close()
			return nil, err
		}
	}
	return deps, nil
}

// OpenRepository connects to Postgres (DSN from the DB_* environment) or to a SQLite file.
func OpenRepository(cfg *config.Config) (*repository.Repository, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		logrus.WithField("path", cfg.Database.Path).Info("using sqlite database")
		return repository.OpenSQLite(cfg.Database.Path)
	case "postgres", "":
		dsnStr := dsn.FromEnv()
		if dsnStr == "" {
			return nil, errors.New("database DSN is empty: set DB_HOST and friends")
		}
		return repository.New(dsnStr)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// NewService assembles the renderer and the services over repo and store.
func NewService(cfg *config.Config, repo *repository.Repository, store storage.Store) (*service.Service, error) {
	formatter, err := render.NewFormatter(cfg.Render.Timezone)
	if err != nil {
		return nil, fmt.Errorf("render timezone: %w", err)
	}

	caps := render.DetectCapabilities(cfg.Render.ConverterPath)
	if !caps.StructuredDocuments {
		logrus.WithField("converter", cfg.Render.ConverterPath).Warn("document converter not found, .docx templates fall back to markup")
	}

	tempDir := cfg.Render.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	renderer := render.NewRenderer(render.Options{
		Capabilities: caps,
		Blobs:        store,
		Converter:    render.SofficeConverter{Path: cfg.Render.ConverterPath, Timeout: cfg.Render.ConvertTimeout},
		Formatter:    formatter,
		Title:        cfg.Render.Title,
		TempDir:      tempDir,
	})

	return service.New(service.Options{
		Repository: repo,
		Renderer:   renderer,
		Artifacts:  store,
		Templates:  store,
	}), nil
}

// NewRouter builds the gin engine with the global middleware, the API and the docs.
func NewRouter(deps *Deps) *gin.Engine {
	var blacklist middleware.Blacklist
	var revoker handler.TokenRevoker
	if deps.Redis != nil {
		blacklist = deps.Redis
		revoker = deps.Redis
	}
	authMiddleware := middleware.NewAuthMiddleware(blacklist, deps.Config)

	authHandler := handler.NewAuthHandler(deps.Repository, revoker, authMiddleware, deps.Config)
	apiHandler := handler.NewAPIHandler(deps.Service, authHandler)

	r := gin.Default()
	r.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.InlinePDFHeaders())

	apiHandler.RegisterAPIRoutes(r, authMiddleware)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
