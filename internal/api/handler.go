// Package api exposes the HTTP surface: style analysis, report and
// section retrieval, and queued section generation.
package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/najouaboughida-blip/rapport-stage/internal/database"
	"github.com/najouaboughida-blip/rapport-stage/internal/models"
	"github.com/najouaboughida-blip/rapport-stage/internal/styleanalyzer"
	"github.com/najouaboughida-blip/rapport-stage/pkg/tracing"
)

const dbTimeout = 30 * time.Second

// QueueClient enqueues background tasks.
type QueueClient interface {
	EnqueueAnalyzeStyle(ctx context.Context, reportID, text string) (string, error)
	EnqueueGenerateSection(ctx context.Context, sectionID, reportID, section string, sectionCtx models.SectionContext) (string, error)
}

// Handler handles HTTP requests.
type Handler struct {
	db          *database.DB
	analyzer    *styleanalyzer.Analyzer
	queueClient QueueClient
	mux         *http.ServeMux
}

// NewHandler creates the API handler with CORS support and metrics.
func NewHandler(db *database.DB, analyzer *styleanalyzer.Analyzer, queueClient QueueClient) http.Handler {
	h := &Handler{
		db:          db,
		analyzer:    analyzer,
		queueClient: queueClient,
		mux:         http.NewServeMux(),
	}
	h.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(h.mux)
}

func (h *Handler) setupRoutes() {
	h.mux.Handle("/metrics", promhttp.Handler())
	h.mux.HandleFunc("/api/analyze", h.handleAnalyze)
	h.mux.HandleFunc("/api/reports", h.handleListReports)
	h.mux.HandleFunc("/api/reports/", h.handleReportOperations)
	h.mux.HandleFunc("/api/sections/", h.handleGetSection)
	h.mux.HandleFunc("/health", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleAnalyze runs the style analysis. The default path is
// synchronous: the rule-based analyzer is fast enough to answer in the
// request. With "async": true the analysis is queued instead.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Text  string `json:"text"`
		Async bool   `json:"async,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracing.SetSpanAttributes(r.Context(),
		attribute.Int("text.length", len(req.Text)),
		attribute.Bool("async", req.Async))

	reportID := generateID()

	if req.Async {
		taskID, err := h.queueClient.EnqueueAnalyzeStyle(r.Context(), reportID, req.Text)
		if err != nil {
			respondError(w, fmt.Sprintf("Failed to enqueue analysis: %v", err), http.StatusInternalServerError)
			return
		}
		respondJSON(w, map[string]interface{}{
			"report_id": reportID,
			"task_id":   taskID,
			"status":    "queued",
		}, http.StatusAccepted)
		return
	}

	// Short or empty text is not an error: it yields the canonical
	// default analysis with a no_analysis status.
	analysis := h.analyzer.Analyze(req.Text)
	status := models.StatusComplete
	if !styleanalyzer.Analyzable(req.Text) {
		status = models.StatusNoAnalysis
	}

	now := time.Now()
	report := &models.Report{
		ID:        reportID,
		Text:      req.Text,
		Status:    status,
		Summary:   styleanalyzer.Summarize(req.Text, analysis),
		Analysis:  analysis,
		CreatedAt: now,
		UpdatedAt: now,
	}

	errorChan := make(chan error)
	doneChan := make(chan bool)
	go func() {
		if err := h.db.SaveReport(report); err != nil {
			errorChan <- err
			return
		}
		doneChan <- true
	}()

	select {
	case <-doneChan:
		respondJSON(w, report, http.StatusCreated)
	case err := <-errorChan:
		respondError(w, err.Error(), http.StatusInternalServerError)
	case <-time.After(dbTimeout):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	resultChan := make(chan []*models.Report)
	errorChan := make(chan error)
	go func() {
		reports, err := h.db.ListReports(limit, offset)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- reports
	}()

	select {
	case reports := <-resultChan:
		if reports == nil {
			reports = []*models.Report{}
		}
		respondJSON(w, reports, http.StatusOK)
	case err := <-errorChan:
		respondError(w, err.Error(), http.StatusInternalServerError)
	case <-time.After(dbTimeout):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

// handleReportOperations routes /api/reports/{id}[/summary|/tips|/sections].
func (h *Handler) handleReportOperations(w http.ResponseWriter, r *http.Request) {
	rest := r.URL.Path[len("/api/reports/"):]
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		respondError(w, "Report ID is required", http.StatusBadRequest)
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		h.getReport(w, id)
	case sub == "" && r.Method == http.MethodDelete:
		h.deleteReport(w, id)
	case sub == "summary" && r.Method == http.MethodGet:
		h.getReportSummary(w, id)
	case sub == "tips" && r.Method == http.MethodGet:
		h.getReportTips(w, id)
	case sub == "sections" && r.Method == http.MethodPost:
		h.createSection(w, r, id)
	case sub == "sections" && r.Method == http.MethodGet:
		h.listSections(w, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) getReport(w http.ResponseWriter, id string) {
	h.withReport(w, id, func(report *models.Report) {
		respondJSON(w, report, http.StatusOK)
	})
}

func (h *Handler) getReportSummary(w http.ResponseWriter, id string) {
	h.withReport(w, id, func(report *models.Report) {
		respondJSON(w, map[string]interface{}{
			"report_id": report.ID,
			"status":    report.Status,
			"summary":   report.Summary,
		}, http.StatusOK)
	})
}

func (h *Handler) getReportTips(w http.ResponseWriter, id string) {
	h.withReport(w, id, func(report *models.Report) {
		var tips []models.Tip
		if report.Status == models.StatusComplete {
			tips = styleanalyzer.WritingTips(&report.Analysis)
		} else {
			tips = styleanalyzer.WritingTips(nil)
		}
		respondJSON(w, map[string]interface{}{
			"report_id": report.ID,
			"tips":      tips,
		}, http.StatusOK)
	})
}

// withReport fetches the report with the standard timeout pattern and
// hands it to fn on success.
func (h *Handler) withReport(w http.ResponseWriter, id string, fn func(*models.Report)) {
	resultChan := make(chan *models.Report)
	errorChan := make(chan error)
	go func() {
		report, err := h.db.GetReport(id)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- report
	}()

	select {
	case report := <-resultChan:
		fn(report)
	case err := <-errorChan:
		if err == database.ErrNotFound {
			respondError(w, "report not found", http.StatusNotFound)
		} else {
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
	case <-time.After(dbTimeout):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

func (h *Handler) deleteReport(w http.ResponseWriter, id string) {
	errorChan := make(chan error)
	doneChan := make(chan bool)
	go func() {
		if err := h.db.DeleteReport(id); err != nil {
			errorChan <- err
			return
		}
		doneChan <- true
	}()

	select {
	case <-doneChan:
		w.WriteHeader(http.StatusNoContent)
	case err := <-errorChan:
		if err == database.ErrNotFound {
			respondError(w, "report not found", http.StatusNotFound)
		} else {
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
	case <-time.After(dbTimeout):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

// createSection queues generation of one report section.
func (h *Handler) createSection(w http.ResponseWriter, r *http.Request, reportID string) {
	var req struct {
		Section string                `json:"section"`
		Context models.SectionContext `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Section == "" {
		respondError(w, "Section field is required", http.StatusBadRequest)
		return
	}

	h.withReport(w, reportID, func(report *models.Report) {
		tracing.SetSpanAttributes(r.Context(),
			attribute.String("report.id", report.ID),
			attribute.String("section.name", req.Section))

		now := time.Now()
		section := &models.Section{
			ID:        generateID(),
			ReportID:  report.ID,
			Name:      req.Section,
			Status:    models.SectionQueued,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := h.db.SaveSection(section); err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		taskID, err := h.queueClient.EnqueueGenerateSection(r.Context(), section.ID, report.ID, req.Section, req.Context)
		if err != nil {
			respondError(w, fmt.Sprintf("Failed to enqueue generation: %v", err), http.StatusInternalServerError)
			return
		}

		respondJSON(w, map[string]interface{}{
			"section_id": section.ID,
			"task_id":    taskID,
			"status":     models.SectionQueued,
		}, http.StatusAccepted)
	})
}

func (h *Handler) listSections(w http.ResponseWriter, reportID string) {
	resultChan := make(chan []*models.Section)
	errorChan := make(chan error)
	go func() {
		sections, err := h.db.ListSectionsByReport(reportID)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- sections
	}()

	select {
	case sections := <-resultChan:
		if sections == nil {
			sections = []*models.Section{}
		}
		respondJSON(w, sections, http.StatusOK)
	case err := <-errorChan:
		respondError(w, err.Error(), http.StatusInternalServerError)
	case <-time.After(dbTimeout):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

func (h *Handler) handleGetSection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Path[len("/api/sections/"):]
	if idx := strings.Index(id, "/"); idx != -1 {
		id = id[:idx]
	}
	if id == "" {
		respondError(w, "Section ID is required", http.StatusBadRequest)
		return
	}

	resultChan := make(chan *models.Section)
	errorChan := make(chan error)
	go func() {
		section, err := h.db.GetSection(id)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- section
	}()

	select {
	case section := <-resultChan:
		respondJSON(w, section, http.StatusOK)
	case err := <-errorChan:
		if err == database.ErrNotFound {
			respondError(w, "section not found", http.StatusNotFound)
		} else {
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
	case <-time.After(dbTimeout):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// generateID generates a random RFC 4122 version 4 UUID.
func generateID() string {
	uuid := make([]byte, 16)
	if _, err := rand.Read(uuid); err != nil {
		// Timestamp fallback if the random source fails.
		return time.Now().Format("20060102150405") + "-" + strconv.FormatInt(time.Now().UnixNano()%1000000, 10)
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x40 // Version 4
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // Variant bits

	return fmt.Sprintf("%s-%s-%s-%s-%s",
		hex.EncodeToString(uuid[0:4]),
		hex.EncodeToString(uuid[4:6]),
		hex.EncodeToString(uuid[6:8]),
		hex.EncodeToString(uuid[8:10]),
		hex.EncodeToString(uuid[10:16]))
}
