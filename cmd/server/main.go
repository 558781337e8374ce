package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/najouaboughida-blip/rapport-stage/internal/api"
	"github.com/najouaboughida-blip/rapport-stage/internal/database"
	"github.com/najouaboughida-blip/rapport-stage/internal/generator"
	"github.com/najouaboughida-blip/rapport-stage/internal/queue"
	"github.com/najouaboughida-blip/rapport-stage/internal/styleanalyzer"
	"github.com/najouaboughida-blip/rapport-stage/pkg/logging"
	"github.com/najouaboughida-blip/rapport-stage/pkg/metrics"
	"github.com/najouaboughida-blip/rapport-stage/pkg/tracing"
)

func main() {
	// Setup structured logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("rapport-stage service initializing", "version", "1.0.0")

	// Initialize tracing
	tp, err := tracing.InitTracer("rapport-stage")
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer", "error", err)
			}
		}()
		logger.Info("tracing initialized successfully")
	}

	// Get default values from environment variables, with fallbacks
	portDefault := getEnv("PORT", "8080")
	dbPathDefault := getEnv("DB_PATH", "rapportstage.db")
	redisAddrDefault := getEnv("REDIS_ADDR", "localhost:6379")
	ollamaURLDefault := getEnv("OLLAMA_URL", "http://localhost:11434")
	ollamaModelDefault := getEnv("OLLAMA_MODEL", generator.DefaultModel)
	useOllamaDefault := getEnvBool("USE_OLLAMA", true)
	concurrencyDefault := getEnvInt("WORKER_CONCURRENCY", 5)

	var (
		port        = flag.String("port", portDefault, "Server port (env: PORT)")
		dbPath      = flag.String("db", dbPathDefault, "Database file path (env: DB_PATH)")
		redisAddr   = flag.String("redis-addr", redisAddrDefault, "Redis address for the task queue (env: REDIS_ADDR)")
		ollamaURL   = flag.String("ollama-url", ollamaURLDefault, "Ollama API URL (env: OLLAMA_URL)")
		ollamaModel = flag.String("ollama-model", ollamaModelDefault, "Ollama model to use (env: OLLAMA_MODEL)")
		useOllama   = flag.Bool("use-ollama", useOllamaDefault, "Enable Ollama for section generation (env: USE_OLLAMA)")
		concurrency = flag.Int("worker-concurrency", concurrencyDefault, "Queue worker concurrency (env: WORKER_CONCURRENCY)")
	)
	flag.Parse()

	// Initialize database
	db, err := database.New(*dbPath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err, "database_path", *dbPath)
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize metrics
	businessMetrics := metrics.NewBusinessMetrics("rapportstage")
	dbMetrics := metrics.NewDatabaseMetrics("rapportstage")
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			dbMetrics.UpdateDBStats(db.Conn())
		}
	}()
	logger.Info("metrics initialized")

	// Initialize the style analyzer
	styleAnalyzer := styleanalyzer.New()

	// Initialize the Ollama client for section generation. When absent
	// the worker serves simulated sections.
	var ollamaClient *generator.Client
	if *useOllama {
		ollamaClient, err = generator.NewClient(*ollamaURL, *ollamaModel)
		if err != nil {
			logger.Warn("failed to initialize Ollama client, sections will be simulated",
				"error", err,
				"ollama_url", *ollamaURL,
				"ollama_model", *ollamaModel,
			)
			ollamaClient = nil
		} else {
			logger.Info("Ollama client initialized", "model", *ollamaModel, "url", *ollamaURL)
		}
	} else {
		logger.Info("Ollama disabled, sections will be simulated")
	}

	// Initialize the task queue
	queueClient := queue.NewClient(queue.ClientConfig{RedisAddr: *redisAddr})
	defer queueClient.Close()

	worker := queue.NewWorker(queue.WorkerConfig{
		RedisAddr:   *redisAddr,
		Concurrency: *concurrency,
	}, db, styleAnalyzer, ollamaClient, businessMetrics)

	go func() {
		if err := worker.Start(); err != nil {
			logger.Error("queue worker failed", "error", err)
			os.Exit(1)
		}
	}()

	// Initialize API handler
	apiHandler := api.NewHandler(db, styleAnalyzer, queueClient)

	// Wrap handler with middleware chain: HTTP logging -> tracing -> handlers
	handler := logging.HTTPLoggingMiddleware(logger)(
		tracing.HTTPMiddleware("rapport-stage")(apiHandler),
	)

	// Create server with extended timeouts for model-backed generation
	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 420 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("rapport-stage service starting",
			"port", *port,
			"database", *dbPath,
			"redis_addr", *redisAddr,
			"ollama_enabled", *useOllama,
			"ollama_url", *ollamaURL,
			"ollama_model", *ollamaModel,
			"worker_concurrency", *concurrency,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	worker.Shutdown()

	logger.Info("server stopped")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
