package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	database "easypeasy_backend/internals/databases"
	"easypeasy_backend/internals/features/labs/labs/repository"
	"easypeasy_backend/internals/features/labs/lookup"
	"easypeasy_backend/internals/features/labs/scheduler"
	helper "easypeasy_backend/internals/helpers"
	"easypeasy_backend/internals/helpers/dbtime"
	"easypeasy_backend/internals/middlewares"
	routes "easypeasy_backend/internals/route"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the daily lab status sweep",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Run AutoMigrate before listening")
}

func newLookupCache() lookup.Cache {
	if cfg.RedisURL == "" {
		return lookup.NewMemoryCache(0)
	}
	c, err := lookup.NewRedisCache(cfg.RedisURL, 0)
	if err != nil {
		log.Printf("⚠️ Redis unavailable (%v), using in-memory lookup cache", err)
		return lookup.NewMemoryCache(0)
	}
	log.Println("✅ Redis lookup cache connected")
	return c
}

func runServe(cmd *cobra.Command, args []string) error {
	app := fiber.New(fiber.Config{
		// 🚀 sonic for JSON
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler:          helper.ErrorHandler,
	})

	// ⚙️ base middleware + compression
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool
	database.ConnectDB(cfg)
	database.TunePool()
	if serveMigrate {
		if err := database.AutoMigrate(database.DB); err != nil {
			return err
		}
	}

	// ⏱ sweep after DB is ready
	sweeper := scheduler.NewStatusSweeper(
		repository.New(database.DB),
		dbtime.LoadBusinessLocation(cfg.Timezone),
		cfg.SweepAt,
	)
	if err := sweeper.Start(); err != nil {
		return err
	}
	defer sweeper.Stop()

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, lookup.New(database.DB, newLookupCache()))

	// 🔒 keep-alive & server timeouts
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	// graceful shutdown, then close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		database.Close()
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	database.Close()
	log.Println("👋 Server stopped")
	return nil
}
