package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/najouaboughida-blip/rapport-stage/internal/database"
	"github.com/najouaboughida-blip/rapport-stage/internal/models"
	"github.com/najouaboughida-blip/rapport-stage/internal/styleanalyzer"
)

const formalRequestText = "Nous présentons la méthodologie retenue pour cette étude. " +
	"Par conséquent, nous analysons les résultats obtenus durant le stage. " +
	"En outre, nous proposons une évaluation approfondie du système développé."

// mockQueueClient implements the queue client interface for testing
type mockQueueClient struct {
	analyzeReportIDs []string
	sectionIDs       []string
}

func (m *mockQueueClient) EnqueueAnalyzeStyle(ctx context.Context, reportID, text string) (string, error) {
	m.analyzeReportIDs = append(m.analyzeReportIDs, reportID)
	return "mock-task-id", nil
}

func (m *mockQueueClient) EnqueueGenerateSection(ctx context.Context, sectionID, reportID, section string, sectionCtx models.SectionContext) (string, error) {
	m.sectionIDs = append(m.sectionIDs, sectionID)
	return "mock-task-id", nil
}

func setupTestHandler(t *testing.T) (*Handler, *database.DB, *mockQueueClient) {
	dbPath := filepath.Join(t.TempDir(), "api_test.db")
	db, err := database.New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	mockQueue := &mockQueueClient{}
	handler := &Handler{
		db:          db,
		analyzer:    styleanalyzer.New(),
		queueClient: mockQueue,
		mux:         http.NewServeMux(),
	}
	handler.setupRoutes()

	return handler, db, mockQueue
}

func TestHealthEndpoint(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response["status"])
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)

	body, _ := json.Marshal(map[string]string{"text": formalRequestText})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response models.Report
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.ID == "" {
		t.Error("Expected report ID to be set")
	}
	if response.Status != models.StatusComplete {
		t.Errorf("Expected status 'complete', got '%s'", response.Status)
	}
	if response.Summary.FormalityLevel == "" {
		t.Error("Expected summary formality level to be set")
	}
	if response.Analysis.StyleScores.Formality < 0 || response.Analysis.StyleScores.Formality > 100 {
		t.Errorf("Formality score out of range: %f", response.Analysis.StyleScores.Formality)
	}

	// The report must be retrievable afterwards.
	saved, err := db.GetReport(response.ID)
	if err != nil {
		t.Fatalf("Failed to fetch saved report: %v", err)
	}
	if saved.Text != formalRequestText {
		t.Error("Saved report text does not match request")
	}
}

func TestAnalyzeEndpointShortText(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	body, _ := json.Marshal(map[string]string{"text": "Ok."})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	// Short text is stored with the default analysis, not rejected.
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response models.Report
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Status != models.StatusNoAnalysis {
		t.Errorf("Expected status 'no_analysis', got '%s'", response.Status)
	}
}

func TestAnalyzeEndpointAsync(t *testing.T) {
	handler, _, mockQueue := setupTestHandler(t)

	body, _ := json.Marshal(map[string]interface{}{"text": formalRequestText, "async": true})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response["report_id"] == nil || response["report_id"].(string) == "" {
		t.Errorf("Expected report_id to be set, got: %v", response)
	}
	if response["task_id"] != "mock-task-id" {
		t.Errorf("Expected task_id 'mock-task-id', got: %v", response["task_id"])
	}
	if response["status"] != "queued" {
		t.Errorf("Expected status 'queued', got: %v", response["status"])
	}
	if len(mockQueue.analyzeReportIDs) != 1 {
		t.Errorf("Expected 1 enqueued analysis, got %d", len(mockQueue.analyzeReportIDs))
	}
}

func TestAnalyzeEndpointInvalidMethod(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestAnalyzeEndpointInvalidBody(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func saveTestReport(t *testing.T, db *database.DB, id string) *models.Report {
	t.Helper()
	analyzer := styleanalyzer.New()
	analysis := analyzer.Analyze(formalRequestText)
	report := &models.Report{
		ID:        id,
		Text:      formalRequestText,
		Status:    models.StatusComplete,
		Summary:   styleanalyzer.Summarize(formalRequestText, analysis),
		Analysis:  analysis,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.SaveReport(report); err != nil {
		t.Fatalf("Failed to save test report: %v", err)
	}
	return report
}

func TestGetReportEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)
	saveTestReport(t, db, "test-get-001")

	req := httptest.NewRequest(http.MethodGet, "/api/reports/test-get-001", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response models.Report
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.ID != "test-get-001" {
		t.Errorf("Expected ID 'test-get-001', got '%s'", response.ID)
	}
}

func TestGetReportNotFound(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/nonexistent", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestListReportsEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)

	for i := 1; i <= 5; i++ {
		saveTestReport(t, db, "test-list-"+string(rune('0'+i)))
		time.Sleep(10 * time.Millisecond)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports?limit=3&offset=0", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response []*models.Report
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response) != 3 {
		t.Errorf("Expected 3 reports, got %d", len(response))
	}
}

func TestDeleteReportEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)
	saveTestReport(t, db, "test-delete-001")

	req := httptest.NewRequest(http.MethodDelete, "/api/reports/test-delete-001", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}

	if _, err := db.GetReport("test-delete-001"); err == nil {
		t.Error("Expected report to be deleted")
	}
}

func TestDeleteReportNotFound(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/reports/nonexistent", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestReportSummaryEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)
	report := saveTestReport(t, db, "test-summary-001")

	req := httptest.NewRequest(http.MethodGet, "/api/reports/test-summary-001/summary", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		ReportID string         `json:"report_id"`
		Status   string         `json:"status"`
		Summary  models.Summary `json:"summary"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.ReportID != "test-summary-001" {
		t.Errorf("Expected report_id 'test-summary-001', got '%s'", response.ReportID)
	}
	if response.Summary.FormalityLevel != report.Summary.FormalityLevel {
		t.Errorf("Expected formality level '%s', got '%s'", report.Summary.FormalityLevel, response.Summary.FormalityLevel)
	}
}

func TestReportTipsEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)
	saveTestReport(t, db, "test-tips-001")

	req := httptest.NewRequest(http.MethodGet, "/api/reports/test-tips-001/tips", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		ReportID string       `json:"report_id"`
		Tips     []models.Tip `json:"tips"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	for _, tip := range response.Tips {
		if tip.Title == "" || tip.Content == "" {
			t.Errorf("Expected non-empty tip, got %+v", tip)
		}
	}
}

func TestReportTipsWithoutAnalysis(t *testing.T) {
	handler, db, _ := setupTestHandler(t)

	report := &models.Report{
		ID:        "test-tips-002",
		Text:      "Ok.",
		Status:    models.StatusNoAnalysis,
		Summary:   models.Summary{AcademicLevel: "licence"},
		Analysis:  styleanalyzer.DefaultAnalysis(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.SaveReport(report); err != nil {
		t.Fatalf("Failed to save test report: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/test-tips-002/tips", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Tips []models.Tip `json:"tips"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Tips) != 1 {
		t.Fatalf("Expected the single baseline tip, got %d tips", len(response.Tips))
	}
	if response.Tips[0].Title != "Style académique de base" {
		t.Errorf("Expected baseline tip, got '%s'", response.Tips[0].Title)
	}
}

func TestCreateSectionEndpoint(t *testing.T) {
	handler, db, mockQueue := setupTestHandler(t)
	saveTestReport(t, db, "test-section-001")

	reqBody := map[string]interface{}{
		"section": "introduction",
		"context": models.SectionContext{
			Student: models.StudentInfo{FullName: "Alaoui Samira"},
			Company: models.CompanyInfo{Name: "TechnoServ"},
		},
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/api/reports/test-section-001/sections", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	sectionID, _ := response["section_id"].(string)
	if sectionID == "" {
		t.Fatalf("Expected section_id to be set, got: %v", response)
	}
	if response["status"] != models.SectionQueued {
		t.Errorf("Expected status 'queued', got: %v", response["status"])
	}
	if len(mockQueue.sectionIDs) != 1 || mockQueue.sectionIDs[0] != sectionID {
		t.Errorf("Expected section %s enqueued, got %v", sectionID, mockQueue.sectionIDs)
	}

	// The queued section row must already exist.
	getReq := httptest.NewRequest(http.MethodGet, "/api/sections/"+sectionID, nil)
	getW := httptest.NewRecorder()
	handler.mux.ServeHTTP(getW, getReq)

	if getW.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", getW.Code)
	}

	var section models.Section
	if err := json.NewDecoder(getW.Body).Decode(&section); err != nil {
		t.Fatalf("Failed to decode section: %v", err)
	}
	if section.Status != models.SectionQueued {
		t.Errorf("Expected section status 'queued', got '%s'", section.Status)
	}
	if section.ReportID != "test-section-001" {
		t.Errorf("Expected report ID 'test-section-001', got '%s'", section.ReportID)
	}
}

func TestCreateSectionMissingName(t *testing.T) {
	handler, db, _ := setupTestHandler(t)
	saveTestReport(t, db, "test-section-002")

	body, _ := json.Marshal(map[string]interface{}{"context": models.SectionContext{}})
	req := httptest.NewRequest(http.MethodPost, "/api/reports/test-section-002/sections", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateSectionReportNotFound(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	body, _ := json.Marshal(map[string]interface{}{"section": "introduction"})
	req := httptest.NewRequest(http.MethodPost, "/api/reports/nonexistent/sections", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestGetSectionNotFound(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sections/nonexistent", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestListSectionsEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)
	saveTestReport(t, db, "test-sections-list")

	for _, name := range []string{"introduction", "conclusion"} {
		section := &models.Section{
			ID:        generateID(),
			ReportID:  "test-sections-list",
			Name:      name,
			Status:    models.SectionQueued,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := db.SaveSection(section); err != nil {
			t.Fatalf("Failed to save section: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/test-sections-list/sections", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response []*models.Section
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(response))
	}
	if response[0].Name != "introduction" {
		t.Errorf("Expected oldest section first, got '%s'", response[0].Name)
	}
}

func TestGenerateID(t *testing.T) {
	id1 := generateID()
	id2 := generateID()

	if id1 == id2 {
		t.Error("Generated IDs should be unique")
	}

	// Verify UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
	if len(id1) != 36 {
		t.Errorf("Expected UUID length 36, got %d", len(id1))
	}

	if id1[8] != '-' || id1[13] != '-' || id1[18] != '-' || id1[23] != '-' {
		t.Errorf("Generated ID does not match UUID format: %s", id1)
	}
}
