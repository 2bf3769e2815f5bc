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

	"github.com/andreyp/catalog-importer/internal/config"
	"github.com/andreyp/catalog-importer/internal/database"
	"github.com/andreyp/catalog-importer/internal/database/assets"
	"github.com/andreyp/catalog-importer/internal/database/products"
	"github.com/andreyp/catalog-importer/internal/fetcher"
	http_controllers "github.com/andreyp/catalog-importer/internal/http"
	"github.com/andreyp/catalog-importer/internal/importer"
	"github.com/andreyp/catalog-importer/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within
// the configured timeout.
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop the task queue before the HTTP server
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Catalog Importer v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	catalogStore := products.NewRepository(db.DB)
	assetStore := assets.NewRepository(db.DB)

	client := fetcher.NewClient(cfg.Fetch.Timeout)
	resolver := importer.NewResolver(assetStore, client, cfg.Catalog.ImageFolder)
	reconciler := importer.NewReconciler(catalogStore, cfg.Catalog.ProductFolder)
	pipeline := importer.NewPipeline(client, resolver, reconciler)

	var taskClient *tasks.Client
	var enqueuer http_controllers.TaskEnqueuer
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			MaxAttempts:     cfg.Tasks.MaxAttempts,
			Backoff:         cfg.Tasks.Backoff,
			TaskTimeout:     cfg.Tasks.TaskTimeout,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}
		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer taskClient.Close()

		taskClient.Register(tasks.NewImportBatchQueue(pipeline, taskCfg))

		taskCtx, taskCancel := context.WithCancel(context.Background())
		defer taskCancel()
		go taskClient.Start(taskCtx)

		enqueuer = taskClient
	} else {
		log.Printf("Task queue disabled; async imports will be unavailable")
	}

	router := http_controllers.NewRouter(http_controllers.Controllers{
		Health: http_controllers.NewHealthController(),
		Import: http_controllers.NewImportController(pipeline, enqueuer),
	})

	Serve(router, cfg, func(ctx context.Context) {
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
	})
}
