package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/najouaboughida-blip/rapport-stage/internal/models"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// SaveReport inserts a report with its serialized summary and analysis.
func (db *DB) SaveReport(report *models.Report) error {
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	analysisJSON, err := json.Marshal(report.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO reports (id, text, status, summary, analysis, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.Text, report.Status, summaryJSON, analysisJSON, report.CreatedAt, report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// GetReport retrieves a report by ID.
func (db *DB) GetReport(id string) (*models.Report, error) {
	var (
		text         string
		status       string
		summaryJSON  string
		analysisJSON string
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := db.conn.QueryRow(`
		SELECT text, status, summary, analysis, created_at, updated_at
		FROM reports
		WHERE id = ?
	`, id).Scan(&text, &status, &summaryJSON, &analysisJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	report := &models.Report{
		ID:        id,
		Text:      text,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if err := json.Unmarshal([]byte(summaryJSON), &report.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	if err := json.Unmarshal([]byte(analysisJSON), &report.Analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return report, nil
}

// ListReports retrieves reports ordered by creation time, newest first.
func (db *DB) ListReports(limit, offset int) ([]*models.Report, error) {
	rows, err := db.conn.Query(`
		SELECT id, text, status, summary, analysis, created_at, updated_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		var (
			report       models.Report
			summaryJSON  string
			analysisJSON string
		)
		if err := rows.Scan(&report.ID, &report.Text, &report.Status, &summaryJSON, &analysisJSON, &report.CreatedAt, &report.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(summaryJSON), &report.Summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
		}
		if err := json.Unmarshal([]byte(analysisJSON), &report.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
		}
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return reports, nil
}

// DeleteReport removes a report and, through the foreign key cascade,
// its sections.
func (db *DB) DeleteReport(id string) error {
	result, err := db.conn.Exec("DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveSection inserts a section row.
func (db *DB) SaveSection(section *models.Section) error {
	_, err := db.conn.Exec(`
		INSERT INTO sections (id, report_id, name, status, content, simulated, word_count, prompt_length, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, section.ID, section.ReportID, section.Name, section.Status, section.Content,
		section.Simulated, section.WordCount, section.PromptLength, section.Error,
		section.CreatedAt, section.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert section: %w", err)
	}
	return nil
}

// UpdateSection persists the generation outcome for a section.
func (db *DB) UpdateSection(section *models.Section) error {
	result, err := db.conn.Exec(`
		UPDATE sections
		SET status = ?, content = ?, simulated = ?, word_count = ?, prompt_length = ?, error = ?, updated_at = ?
		WHERE id = ?
	`, section.Status, section.Content, section.Simulated, section.WordCount,
		section.PromptLength, section.Error, section.UpdatedAt, section.ID)
	if err != nil {
		return fmt.Errorf("failed to update section: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetSection retrieves a section by ID.
func (db *DB) GetSection(id string) (*models.Section, error) {
	section := &models.Section{ID: id}
	err := db.conn.QueryRow(`
		SELECT report_id, name, status, content, simulated, word_count, prompt_length, error, created_at, updated_at
		FROM sections
		WHERE id = ?
	`, id).Scan(&section.ReportID, &section.Name, &section.Status, &section.Content,
		&section.Simulated, &section.WordCount, &section.PromptLength, &section.Error,
		&section.CreatedAt, &section.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return section, nil
}

// ListSectionsByReport retrieves all sections of one report, oldest
// first.
func (db *DB) ListSectionsByReport(reportID string) ([]*models.Section, error) {
	rows, err := db.conn.Query(`
		SELECT id, report_id, name, status, content, simulated, word_count, prompt_length, error, created_at, updated_at
		FROM sections
		WHERE report_id = ?
		ORDER BY created_at ASC
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(&section.ID, &section.ReportID, &section.Name, &section.Status,
			&section.Content, &section.Simulated, &section.WordCount, &section.PromptLength,
			&section.Error, &section.CreatedAt, &section.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		sections = append(sections, &section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return sections, nil
}

// CountReports returns the total number of stored reports.
func (db *DB) CountReports() (int, error) {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM reports").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}
