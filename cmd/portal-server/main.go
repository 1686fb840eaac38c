// cmd/portal-server/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"scholarship-portal/internal/common/config"
	"scholarship-portal/internal/common/database"
	"scholarship-portal/internal/common/logger"
	"scholarship-portal/internal/frequency"
	"scholarship-portal/internal/intake"
	"scholarship-portal/internal/notify"
	"scholarship-portal/internal/portal"
	"scholarship-portal/internal/portal/status"
	"scholarship-portal/internal/portal/submit"
	"scholarship-portal/internal/ratelimit"
	"scholarship-portal/internal/repository"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	// Bootstrap logger; replaced with the configured one once config loads.
	zapLog := logger.New("info", "console")

	zapLog.Info("Starting scholarship portal server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	ctx := context.Background()

	// --- Init MongoDB with retry ---
	var mongoClient *database.MongoClient
	err = retryWithBackoff(func() error {
		var err error
		mongoClient, err = database.NewMongo(ctx, cfg.Database.Mongo)
		return err
	}, 15, 2*time.Second, zapLog, "MongoDB connection")

	if err != nil {
		zapLog.Fatal("mongodb failed after retries", zap.Error(err))
	}
	defer mongoClient.Close(ctx)
	zapLog.Info("MongoDB connected successfully")

	if err := mongoClient.EnsureApplicationIndexes(ctx, cfg.Database.Mongo.Collection); err != nil {
		zapLog.Fatal("index creation failed", zap.Error(err))
	}

	// --- Rate limit store: Redis when enabled, in-process otherwise ---
	var limitStore ratelimit.Store = ratelimit.NewMemoryStore()
	var redisClient *database.RedisClient
	if cfg.Database.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		limitStore = ratelimit.NewRedisStore(redisClient, "ratelimit:")
		zapLog.Info("Redis connected successfully")
	}

	submissionWindow := ratelimit.NewFixedWindow(
		limitStore, "submission",
		int64(cfg.RateLimit.Submission.MaxRequests),
		config.GetDuration(cfg.RateLimit.Submission.Window),
	)
	statusWindow := ratelimit.NewFixedWindow(
		limitStore, "status",
		int64(cfg.RateLimit.Status.MaxRequests),
		config.GetDuration(cfg.RateLimit.Status.Window),
	)
	bucket := ratelimit.NewTokenBucket(
		float64(cfg.RateLimit.Bucket.Capacity),
		cfg.RateLimit.Bucket.RefillRate,
	)

	gate := frequency.NewGate(config.GetDuration(cfg.Frequency.MinInterval), log)
	validator := intake.NewValidator(cfg.Uploads.MaxDocumentBytes, cfg.Uploads.MaxPhotoBytes)

	repo := repository.NewApplicationRepository(
		mongoClient.Collection(cfg.Database.Mongo.Collection),
		log,
		config.GetDuration(cfg.Database.Mongo.QueryTimeout),
	)

	// Confirmations are best effort; a missing AWS setup must not keep the
	// portal from taking applications.
	var notifier submit.ConfirmationSender
	if n, err := notify.NewNotifier(ctx, cfg.Notifications, log); err != nil {
		zapLog.Warn("notifier unavailable, confirmations disabled", zap.Error(err))
	} else {
		notifier = n
	}

	submitHandler := submit.NewHandler(
		validator, gate, submissionWindow, bucket,
		repo, notifier, log, cfg.App.IsProduction(),
	)
	statusHandler := status.NewHandler(repo, statusWindow, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(portal.TraceID())
	app.Use(portal.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		healthy := mongoClient.Ping(c.Context()) == nil
		if healthy && redisClient != nil {
			healthy = redisClient.Ping(c.Context()) == nil
		}
		if !healthy {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"time":   time.Now().Format(time.RFC3339),
			})
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")
	api.Post("/applications", submitHandler.Handle)
	api.Post("/applications/status", statusHandler.Handle)

	// --- Metrics Server ---
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
		zapLog.Info("Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr()))
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Portal server stopped gracefully")
}
