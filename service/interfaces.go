package service

import (
	"context"
	"time"

	"storepulse/models"
)

// StoreStatusRepository defines read access to status observations
type StoreStatusRepository interface {
	// LatestTimestamp returns the most recent observation timestamp across
	// all stores, or nil when no observations exist
	LatestTimestamp(ctx context.Context) (*time.Time, error)

	// DistinctStoreIDs returns every store with at least one observation
	DistinctStoreIDs(ctx context.Context) ([]string, error)

	// CountStatuses counts active and inactive observations for a store
	// inside [start, end] (inclusive)
	CountStatuses(ctx context.Context, storeID string, start, end time.Time) (active int, inactive int, err error)
}

// BusinessHoursRepository defines read access to weekly open intervals
type BusinessHoursRepository interface {
	// GetByStore returns the declared intervals ordered by weekday and
	// start time; empty means no declaration
	GetByStore(ctx context.Context, storeID string) ([]*models.BusinessHours, error)
}

// StoreTimezoneRepository defines read access to timezone assignments
type StoreTimezoneRepository interface {
	// GetByStore returns the assignment, or nil when the store has none
	GetByStore(ctx context.Context, storeID string) (*models.StoreTimezone, error)
}

// ReportRepository defines access to report lifecycle records
type ReportRepository interface {
	// Create persists a new Running report
	Create(ctx context.Context, report *models.Report) error

	// GetByReportID returns a report, or nil when unknown
	GetByReportID(ctx context.Context, reportID string) (*models.Report, error)

	// MarkComplete performs the Running->Complete terminal transition
	MarkComplete(ctx context.Context, reportID string, artifactPath string, completedAt time.Time) error

	// MarkFailed performs the Running->Failed terminal transition
	MarkFailed(ctx context.Context, reportID string) error
}

// ArtifactStore persists a finished report table and returns a reference to it
type ArtifactStore interface {
	WriteReport(reportID string, rows []models.ReportRow) (string, error)
}

// ReportGenerator runs the full computation for one report and drives the
// report record to its terminal state.
type ReportGenerator interface {
	Generate(ctx context.Context, reportID string)
}

// ReportService exposes the report lifecycle to callers
type ReportService interface {
	// Start launches the background workers; they stop when ctx is cancelled
	Start(ctx context.Context)

	// StartReport creates a Running report, hands computation to the
	// background executor, and returns the new identifier immediately
	StartReport(ctx context.Context) (string, error)

	// GetReportStatus returns the current report record, or nil when the
	// identifier is unknown
	GetReportStatus(ctx context.Context, reportID string) (*models.Report, error)
}
