package models

import (
	"time"
)

// ReportStatus represents the lifecycle state of a report
type ReportStatus string

const (
	ReportStatusRunning  ReportStatus = "Running"
	ReportStatusComplete ReportStatus = "Complete"
	ReportStatusFailed   ReportStatus = "Failed"
)

// Report tracks one requested uptime report through its lifecycle.
// A report is created Running and makes exactly one terminal transition,
// to Complete (artifact populated) or Failed (artifact left empty).
type Report struct {
	ID           int64        `db:"id"`
	ReportID     string       `db:"report_id"`
	Status       ReportStatus `db:"status"`
	CreatedAt    time.Time    `db:"created_at"`
	CompletedAt  *time.Time   `db:"completed_at"`
	ArtifactPath *string      `db:"artifact_path"`
}

// IsTerminal reports whether the report has reached a final state
func (r *Report) IsTerminal() bool {
	return r.Status == ReportStatusComplete || r.Status == ReportStatusFailed
}

// ReportRow is one line of the generated report table. Hour-window figures
// are in minutes; day- and week-window figures are in hours. The unit split
// is a reporting convention carried over from the consumers of this report.
type ReportRow struct {
	StoreID          string
	UptimeLastHour   float64 // minutes
	UptimeLastDay    float64 // hours
	UptimeLastWeek   float64 // hours
	DowntimeLastHour float64 // minutes
	DowntimeLastDay  float64 // hours
	DowntimeLastWeek float64 // hours
}
