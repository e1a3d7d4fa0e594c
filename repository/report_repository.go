package repository

import (
	"context"
	"fmt"
	"time"

	"storepulse/database"
	"storepulse/models"

	"github.com/jackc/pgx/v5"
)

// ReportRepository provides access to report lifecycle records
type ReportRepository struct {
	q queryable
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *database.DB) *ReportRepository {
	return &ReportRepository{q: db.Pool}
}

// Create persists a new Running report record
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (report_id, status)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, report.ReportID, models.ReportStatusRunning).
		Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", report.ReportID, err)
	}

	report.Status = models.ReportStatusRunning
	return nil
}

// GetByReportID retrieves a report by its caller-visible identifier, or nil
// when no such report exists.
func (r *ReportRepository) GetByReportID(ctx context.Context, reportID string) (*models.Report, error) {
	query := `
		SELECT id, report_id, status, created_at, completed_at, artifact_path
		FROM reports
		WHERE report_id = $1
	`

	var report models.Report
	err := r.q.QueryRow(ctx, query, reportID).Scan(
		&report.ID,
		&report.ReportID,
		&report.Status,
		&report.CreatedAt,
		&report.CompletedAt,
		&report.ArtifactPath,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", reportID, err)
	}

	return &report, nil
}

// MarkComplete transitions a Running report to Complete with its artifact.
// The status guard makes the terminal transition happen at most once.
func (r *ReportRepository) MarkComplete(ctx context.Context, reportID string, artifactPath string, completedAt time.Time) error {
	query := `
		UPDATE reports
		SET status = $1, artifact_path = $2, completed_at = $3
		WHERE report_id = $4 AND status = $5
	`

	result, err := r.q.Exec(ctx, query,
		models.ReportStatusComplete, artifactPath, completedAt,
		reportID, models.ReportStatusRunning,
	)
	if err != nil {
		return fmt.Errorf("failed to mark report %s complete: %w", reportID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("report %s is not running", reportID)
	}

	return nil
}

// MarkFailed transitions a Running report to Failed, leaving the artifact
// reference empty.
func (r *ReportRepository) MarkFailed(ctx context.Context, reportID string) error {
	query := `
		UPDATE reports
		SET status = $1
		WHERE report_id = $2 AND status = $3
	`

	result, err := r.q.Exec(ctx, query,
		models.ReportStatusFailed, reportID, models.ReportStatusRunning,
	)
	if err != nil {
		return fmt.Errorf("failed to mark report %s failed: %w", reportID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("report %s is not running", reportID)
	}

	return nil
}
