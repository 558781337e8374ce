package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/najouaboughida-blip/rapport-stage/internal/models"
)

// Task type constants.
const (
	TypeAnalyzeStyle    = "rapportstage:analyze_style"
	TypeGenerateSection = "rapportstage:generate_section"
)

// Queue names, by descending priority.
const (
	QueueSectionGeneration = "section-generation"
	QueueStyleAnalysis     = "style-analysis"
)

// AnalyzeStylePayload carries an asynchronous style-analysis request.
type AnalyzeStylePayload struct {
	ReportID string `json:"report_id"`
	Text     string `json:"text"`
	// Tracing and timing fields
	TraceID    string `json:"trace_id,omitempty"`
	SpanID     string `json:"span_id,omitempty"`
	EnqueuedAt int64  `json:"enqueued_at"` // Unix timestamp in nanoseconds
}

// GenerateSectionPayload carries a section-generation request.
type GenerateSectionPayload struct {
	SectionID string                `json:"section_id"`
	ReportID  string                `json:"report_id"`
	Section   string                `json:"section"`
	Context   models.SectionContext `json:"context"`
	// Tracing and timing fields
	TraceID    string `json:"trace_id,omitempty"`
	SpanID     string `json:"span_id,omitempty"`
	EnqueuedAt int64  `json:"enqueued_at"` // Unix timestamp in nanoseconds
}

// Client wraps the Asynq client for enqueueing tasks.
type Client struct {
	client *asynq.Client
}

// ClientConfig contains configuration for the queue client.
type ClientConfig struct {
	RedisAddr string
}

// NewClient creates a new queue client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr}),
	}
}

// EnqueueAnalyzeStyle enqueues a rule-based style analysis task.
func (c *Client) EnqueueAnalyzeStyle(ctx context.Context, reportID, text string) (string, error) {
	payload := AnalyzeStylePayload{
		ReportID:   reportID,
		Text:       text,
		EnqueuedAt: time.Now().UnixNano(),
	}
	attachTraceContext(ctx, &payload.TraceID, &payload.SpanID, TypeAnalyzeStyle, reportID, payload.EnqueuedAt)

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TypeAnalyzeStyle, payloadBytes, asynq.TaskID(reportID))
	info, err := c.client.Enqueue(task,
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
		asynq.Queue(QueueStyleAnalysis),
		asynq.Retention(7*24*time.Hour),
	)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue analyze style task: %w", err)
	}
	return info.ID, nil
}

// EnqueueGenerateSection enqueues a section-generation task with a high
// retry tolerance for model availability.
func (c *Client) EnqueueGenerateSection(ctx context.Context, sectionID, reportID, section string, sectionCtx models.SectionContext) (string, error) {
	payload := GenerateSectionPayload{
		SectionID:  sectionID,
		ReportID:   reportID,
		Section:    section,
		Context:    sectionCtx,
		EnqueuedAt: time.Now().UnixNano(),
	}
	attachTraceContext(ctx, &payload.TraceID, &payload.SpanID, TypeGenerateSection, sectionID, payload.EnqueuedAt)

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TypeGenerateSection, payloadBytes, asynq.TaskID(sectionID))
	info, err := c.client.Enqueue(task,
		asynq.MaxRetry(10),
		asynq.Timeout(10*time.Minute),
		asynq.Queue(QueueSectionGeneration),
		asynq.Retention(7*24*time.Hour),
	)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue generate section task: %w", err)
	}
	return info.ID, nil
}

// attachTraceContext copies the active span's trace identifiers into a
// task payload and records the enqueue event on the span.
func attachTraceContext(ctx context.Context, traceID, spanID *string, taskType, taskID string, enqueuedAt int64) {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return
	}

	spanCtx := span.SpanContext()
	*traceID = spanCtx.TraceID().String()
	*spanID = spanCtx.SpanID().String()

	span.AddEvent("task_enqueued", trace.WithAttributes(
		attribute.String("task.type", taskType),
		attribute.String("task.id", taskID),
		attribute.Int64("enqueued_at", enqueuedAt),
	))
}

// Close closes the client connection.
func (c *Client) Close() error {
	return c.client.Close()
}
