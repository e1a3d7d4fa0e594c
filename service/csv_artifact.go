package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"storepulse/models"
)

// Column order of the generated report table. Hour-window figures are in
// minutes, day- and week-window figures in hours.
var reportHeader = []string{
	"store_id",
	"uptime_last_hour(min)",
	"uptime_last_day(hr)",
	"uptime_last_week(hr)",
	"downtime_last_hour(min)",
	"downtime_last_day(hr)",
	"downtime_last_week(hr)",
}

// FileArtifactStore writes finished report tables as CSV files under a
// single directory.
type FileArtifactStore struct {
	dir string
}

// NewFileArtifactStore creates an artifact store rooted at dir
func NewFileArtifactStore(dir string) *FileArtifactStore {
	return &FileArtifactStore{dir: dir}
}

// WriteReport writes one CSV file per report and returns its path
func (s *FileArtifactStore) WriteReport(reportID string, rows []models.ReportRow) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("report_%s.csv", reportID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.StoreID,
			formatFigure(row.UptimeLastHour),
			formatFigure(row.UptimeLastDay),
			formatFigure(row.UptimeLastWeek),
			formatFigure(row.DowntimeLastHour),
			formatFigure(row.DowntimeLastDay),
			formatFigure(row.DowntimeLastWeek),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report file: %w", err)
	}

	return path, nil
}

func formatFigure(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
