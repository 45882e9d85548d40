package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/novelnest/internal/config"
	"github.com/mrlokans/novelnest/internal/covers"
	"github.com/mrlokans/novelnest/internal/database"
	"github.com/mrlokans/novelnest/internal/database/books"
	"github.com/mrlokans/novelnest/internal/database/bucketlist"
	http_controllers "github.com/mrlokans/novelnest/internal/http"
	"github.com/mrlokans/novelnest/internal/scheduler"
	"github.com/mrlokans/novelnest/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -9 can't be caught, so only SIGINT and SIGTERM are handled
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server so in-flight tasks can finish
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// App holds the wired dependencies of a running library server.
type App struct {
	DB        *database.Database
	Router    *gin.Engine
	Tasks     *tasks.Client
	Scheduler *scheduler.BucketListCleanupScheduler

	cancel context.CancelFunc
}

// NewApp opens the library and wires repositories, the task queue,
// the cleanup scheduler and the router. Background work starts immediately.
func NewApp(cfg *config.Config, version string) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bookRepo := books.NewRepository(db.DB)
	bucketRepo := bucketlist.NewRepository(db.DB)
	coverValidator := covers.NewValidatorMB(cfg.Covers.MaxSizeMB)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{DB: db, cancel: cancel}

	routerCfg := http_controllers.RouterConfig{
		Database:          db,
		BookStore:         bookRepo,
		StatsStore:        bookRepo,
		BucketListStore:   bucketRepo,
		BucketListCounter: bucketRepo,
		CoverValidator:    coverValidator,
		DemoMode:          cfg.Demo.Enabled,
		Version:           version,
	}

	if cfg.Tasks.Enabled {
		taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.Tasks = taskClient

		taskClient.Register(tasks.NewCleanupBucketListQueue(bucketRepo))
		taskClient.Start(ctx)

		routerCfg.CleanupEnqueuer = taskClient
		routerCfg.TaskStatus = taskClient
	}

	if cfg.BucketListCleanup.Enabled {
		var enqueuer scheduler.CleanupEnqueuer
		if app.Tasks != nil {
			enqueuer = app.Tasks
		}
		app.Scheduler = scheduler.NewBucketListCleanupScheduler(bucketRepo, enqueuer, cfg.BucketListCleanup.Schedule)
		if err := app.Scheduler.Start(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to start bucket list cleanup scheduler: %w", err)
		}
		routerCfg.CleanupStatus = app.Scheduler
	}

	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Shutdown stops background work, waiting on the task queue until ctx expires.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		if !a.Tasks.Stop(ctx) {
			log.Printf("Task queue did not drain before shutdown timeout")
		}
	}
	a.cancel()
}

// Close releases the task queue and library handles.
func (a *App) Close() {
	a.cancel()
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if err := a.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting NovelNest v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	Serve(app.Router, cfg, app.Shutdown)
}
