package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/najouaboughida-blip/rapport-stage/internal/generator"
	"github.com/najouaboughida-blip/rapport-stage/internal/models"
	"github.com/najouaboughida-blip/rapport-stage/internal/prompts"
	"github.com/najouaboughida-blip/rapport-stage/internal/styleanalyzer"
)

// handleAnalyzeStyle runs the rule-based style analysis and persists
// the report.
func (w *Worker) handleAnalyzeStyle(ctx context.Context, t *asynq.Task) error {
	var payload AnalyzeStylePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		w.logger.Error("failed to unmarshal task payload", "error", err)
		return fmt.Errorf("invalid task payload: %w", err)
	}

	queueWait := queueWaitTime(payload.EnqueuedAt)
	w.logger.Info("analyzing style",
		"report_id", payload.ReportID,
		"text_length", len(payload.Text),
		"queue_wait_seconds", queueWait.Seconds(),
	)

	ctx, span := resumeTaskSpan(ctx, payload.TraceID, payload.SpanID, TypeAnalyzeStyle, queueWait,
		attribute.String("report.id", payload.ReportID),
		attribute.Int("text.length", len(payload.Text)),
	)
	if span != nil {
		defer span.End()
	}

	started := time.Now()
	analysis := w.analyzer.Analyze(payload.Text)

	status := models.StatusComplete
	if !styleanalyzer.Analyzable(payload.Text) {
		status = models.StatusNoAnalysis
	}

	now := time.Now()
	report := &models.Report{
		ID:        payload.ReportID,
		Text:      payload.Text,
		Status:    status,
		Summary:   styleanalyzer.Summarize(payload.Text, analysis),
		Analysis:  analysis,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := w.db.SaveReport(report); err != nil {
		w.businessMetrics.AnalysesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to save report: %w", err)
	}

	duration := time.Since(started).Seconds()
	w.businessMetrics.ObserveDurationWithExemplar(ctx, w.businessMetrics.AnalysisDuration, duration, status)
	w.businessMetrics.AnalysesTotal.WithLabelValues(status).Inc()

	w.logger.Info("style analysis saved", "report_id", payload.ReportID, "status", status)
	return nil
}

// handleGenerateSection renders one report section through the model,
// or the simulated fallback, and records the outcome on the section
// row.
func (w *Worker) handleGenerateSection(ctx context.Context, t *asynq.Task) error {
	var payload GenerateSectionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		w.logger.Error("failed to unmarshal task payload", "error", err)
		return fmt.Errorf("invalid task payload: %w", err)
	}

	retryCount, _ := asynq.GetRetryCount(ctx)
	queueWait := queueWaitTime(payload.EnqueuedAt)
	w.logger.Info("generating section",
		"section_id", payload.SectionID,
		"report_id", payload.ReportID,
		"section", payload.Section,
		"retry_count", retryCount,
		"queue_wait_seconds", queueWait.Seconds(),
	)

	ctx, span := resumeTaskSpan(ctx, payload.TraceID, payload.SpanID, TypeGenerateSection, queueWait,
		attribute.String("section.id", payload.SectionID),
		attribute.String("report.id", payload.ReportID),
		attribute.String("section.name", payload.Section),
		attribute.Int("retry_count", retryCount),
	)
	if span != nil {
		defer span.End()
	}

	report, err := w.db.GetReport(payload.ReportID)
	if err != nil {
		return fmt.Errorf("failed to retrieve report: %w", err)
	}

	section, err := w.db.GetSection(payload.SectionID)
	if err != nil {
		return fmt.Errorf("failed to retrieve section: %w", err)
	}

	promptGen := promptGeneratorForReport(report)
	gen := generator.New(w.ollamaClient, promptGen)

	started := time.Now()
	result, genErr := gen.GenerateSection(ctx, payload.Section, payload.Context)
	duration := time.Since(started).Seconds()

	// A transient model failure is worth retrying before settling for
	// the simulated fallback; the last attempt keeps the fallback.
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	if genErr != nil && isRetriableGenerationError(genErr) && retryCount < maxRetry {
		w.businessMetrics.ObserveDurationWithExemplar(ctx, w.businessMetrics.GenerationDuration, duration, "retry")
		w.logger.Warn("retriable generation error, will retry",
			"section_id", payload.SectionID,
			"error", genErr,
			"retry_count", retryCount,
		)
		return genErr
	}

	section.Status = models.SectionCompleted
	section.Content = result.Content
	section.Simulated = result.Simulated
	section.WordCount = result.WordCount
	section.PromptLength = result.PromptLength
	if genErr != nil {
		section.Error = genErr.Error()
	}
	section.UpdatedAt = time.Now()

	if err := w.db.UpdateSection(section); err != nil {
		w.businessMetrics.SectionsGeneratedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to update section: %w", err)
	}

	status := "success"
	if result.Simulated {
		status = "simulated"
		w.businessMetrics.SimulatedSectionsTotal.Inc()
	}
	w.businessMetrics.ObserveDurationWithExemplar(ctx, w.businessMetrics.GenerationDuration, duration, status)
	w.businessMetrics.SectionsGeneratedTotal.WithLabelValues(status).Inc()

	w.logger.Info("section generation completed",
		"section_id", payload.SectionID,
		"simulated", result.Simulated,
		"word_count", result.WordCount,
	)
	return nil
}

// promptGeneratorForReport builds a prompt generator from a persisted
// report. Reports without a usable analysis fall back to the standard
// style block.
func promptGeneratorForReport(report *models.Report) *prompts.Generator {
	if report.Status != models.StatusComplete {
		return prompts.New(report.Summary.AcademicLevel, nil, nil)
	}
	return prompts.New(report.Summary.AcademicLevel, &report.Summary, &report.Analysis)
}

// resumeTaskSpan recreates the producer's trace context from the task
// payload and starts a consumer span. It returns a nil span when the
// payload carries no trace identifiers.
func resumeTaskSpan(ctx context.Context, traceIDHex, spanIDHex, taskType string, queueWait time.Duration, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if traceIDHex == "" || spanIDHex == "" {
		if existing := trace.SpanFromContext(ctx); existing.SpanContext().IsValid() {
			existing.SetAttributes(attrs...)
		}
		return ctx, nil
	}

	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx, nil
	}
	spanID, err := trace.SpanIDFromHex(spanIDHex)
	if err != nil {
		return ctx, nil
	}

	remoteSpanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	ctx = trace.ContextWithRemoteSpanContext(ctx, remoteSpanCtx)

	allAttrs := append([]attribute.KeyValue{
		attribute.String("task.type", taskType),
		attribute.Float64("queue.wait_time_seconds", queueWait.Seconds()),
	}, attrs...)

	ctx, span := otel.Tracer("rapportstage").Start(ctx, "asynq.task.process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(allAttrs...),
	)
	span.AddEvent("task_processing_started", trace.WithAttributes(
		attribute.Float64("wait_time_seconds", queueWait.Seconds()),
	))
	return ctx, span
}

func queueWaitTime(enqueuedAt int64) time.Duration {
	if enqueuedAt <= 0 {
		return 0
	}
	return time.Since(time.Unix(0, enqueuedAt))
}

// isRetriableGenerationError distinguishes transient model/transport
// failures, worth an asynq retry, from permanent input errors.
func isRetriableGenerationError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	retriablePatterns := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"temporary failure",
		"service unavailable",
		"bad gateway",
		"gateway timeout",
		"too many requests",
		"context deadline exceeded",
		"context canceled",
		"i/o timeout",
		"no such host",
		"network is unreachable",
	}
	for _, pattern := range retriablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
