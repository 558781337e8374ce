// Package queue runs the asynq task pipeline: medium-priority
// rule-based style analysis and high-priority model-backed section
// generation.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/najouaboughida-blip/rapport-stage/internal/database"
	"github.com/najouaboughida-blip/rapport-stage/internal/generator"
	"github.com/najouaboughida-blip/rapport-stage/internal/styleanalyzer"
	"github.com/najouaboughida-blip/rapport-stage/pkg/metrics"
)

// Worker wraps the Asynq server for processing tasks.
type Worker struct {
	server          *asynq.Server
	mux             *asynq.ServeMux
	db              *database.DB
	analyzer        *styleanalyzer.Analyzer
	ollamaClient    *generator.Client
	concurrency     int
	logger          *slog.Logger
	businessMetrics *metrics.BusinessMetrics
}

// WorkerConfig contains configuration for the queue worker.
type WorkerConfig struct {
	RedisAddr   string
	Concurrency int
}

// NewWorker creates a new queue worker. ollamaClient may be nil; every
// section then comes from the simulated fallback.
func NewWorker(cfg WorkerConfig, db *database.DB, analyzer *styleanalyzer.Analyzer, ollamaClient *generator.Client, businessMetrics *metrics.BusinessMetrics) *Worker {
	serverCfg := asynq.Config{
		Concurrency: cfg.Concurrency,

		// Higher value = higher priority. Section generation holds user
		// attention; background re-analysis can wait.
		Queues: map[string]int{
			QueueSectionGeneration: 7,
			QueueStyleAnalysis:     5,
		},
		StrictPriority: false,

		RetryDelayFunc: retryDelay,

		ShutdownTimeout: 30 * time.Second,

		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			slog.Error("task processing error",
				"task_type", task.Type(),
				"error", err,
				"retry_count", retried,
				"max_retries", maxRetry,
			)
		}),
	}

	w := &Worker{
		server:          asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, serverCfg),
		mux:             asynq.NewServeMux(),
		db:              db,
		analyzer:        analyzer,
		ollamaClient:    ollamaClient,
		concurrency:     cfg.Concurrency,
		logger:          slog.Default(),
		businessMetrics: businessMetrics,
	}
	w.registerHandlers()
	return w
}

func (w *Worker) registerHandlers() {
	w.mux.HandleFunc(TypeAnalyzeStyle, w.handleAnalyzeStyle)
	w.mux.HandleFunc(TypeGenerateSection, w.handleGenerateSection)
}

// retryDelay backs off aggressively for model-backed tasks and briefly
// for rule-based ones.
func retryDelay(n int, err error, task *asynq.Task) time.Duration {
	if task.Type() == TypeGenerateSection {
		// 30s, 1m, 2m, 5m, 10m, 20m, 30m, 1h, 2h, 4h
		delays := []time.Duration{
			30 * time.Second,
			1 * time.Minute,
			2 * time.Minute,
			5 * time.Minute,
			10 * time.Minute,
			20 * time.Minute,
			30 * time.Minute,
			1 * time.Hour,
			2 * time.Hour,
			4 * time.Hour,
		}
		if n < len(delays) {
			return delays[n]
		}
		return delays[len(delays)-1]
	}

	delays := []time.Duration{
		1 * time.Minute,
		5 * time.Minute,
		15 * time.Minute,
	}
	if n < len(delays) {
		return delays[n]
	}
	return delays[len(delays)-1]
}

// Start begins processing tasks. It blocks until Shutdown.
func (w *Worker) Start() error {
	w.logger.Info("starting asynq worker",
		"concurrency", w.concurrency,
		"queues", map[string]int{QueueSectionGeneration: 7, QueueStyleAnalysis: 5},
	)
	if err := w.server.Run(w.mux); err != nil {
		return fmt.Errorf("asynq server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the worker.
func (w *Worker) Shutdown() {
	w.logger.Info("shutting down asynq worker")
	w.server.Shutdown()
}
