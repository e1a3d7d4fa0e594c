// Package ingest implements the offline CSV batch loads that populate the
// reference data: status observations, weekly business hours and store
// timezone assignments. Malformed rows never abort a load and are never
// silently dropped; each one is collected with its line number and reason
// and surfaced in the load summary.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"storepulse/database"
	"storepulse/events"
	"storepulse/models"
	"storepulse/repository"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

const insertBatchSize = 1000

// RejectedRow records one malformed CSV row
type RejectedRow struct {
	Line   int
	Reason string
}

// Summary reports the outcome of one CSV load
type Summary struct {
	Source    string
	Processed int
	Inserted  int
	Rejected  []RejectedRow
}

// Loader runs CSV batch loads against the storage layer
type Loader struct {
	db       *database.DB
	statuses *repository.StoreStatusRepository
	hours    *repository.BusinessHoursRepository
	bus      *events.Bus
}

// NewLoader creates a new CSV loader
func NewLoader(db *database.DB, bus *events.Bus) *Loader {
	return &Loader{
		db:       db,
		statuses: repository.NewStoreStatusRepository(db),
		hours:    repository.NewBusinessHoursRepository(db),
		bus:      bus,
	}
}

// LoadStoreStatus loads store status observations from a CSV file with
// columns store_id, timestamp_utc, status. Timestamps may carry a trailing
// " UTC" marker.
func (l *Loader) LoadStoreStatus(ctx context.Context, path string) (*Summary, error) {
	summary := &Summary{Source: path}

	var batch []*models.StoreStatus
	flush := func() error {
		inserted, err := l.statuses.BulkInsert(ctx, batch)
		if err != nil {
			return err
		}
		summary.Inserted += int(inserted)
		batch = batch[:0]
		return nil
	}

	err := l.forEachRecord(path, func(line int, fields map[string]string) {
		status, reason := parseStatusRecord(fields)
		if reason != "" {
			summary.Rejected = append(summary.Rejected, RejectedRow{Line: line, Reason: reason})
			return
		}
		batch = append(batch, status)
	}, func() error {
		if len(batch) >= insertBatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	summary.Processed = summary.Inserted + len(summary.Rejected)
	l.finish(ctx, summary)
	return summary, nil
}

// LoadBusinessHours loads weekly open intervals from a CSV file with
// columns store_id, day, start_time_local, end_time_local. Blank times
// default to the full-day sentinel pair, matching the source data contract.
func (l *Loader) LoadBusinessHours(ctx context.Context, path string) (*Summary, error) {
	summary := &Summary{Source: path}

	var batch []*models.BusinessHours
	flush := func() error {
		inserted, err := l.hours.BulkInsert(ctx, batch)
		if err != nil {
			return err
		}
		summary.Inserted += int(inserted)
		batch = batch[:0]
		return nil
	}

	err := l.forEachRecord(path, func(line int, fields map[string]string) {
		hours, reason := parseBusinessHoursRecord(fields)
		if reason != "" {
			summary.Rejected = append(summary.Rejected, RejectedRow{Line: line, Reason: reason})
			return
		}
		batch = append(batch, hours)
	}, func() error {
		if len(batch) >= insertBatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	summary.Processed = summary.Inserted + len(summary.Rejected)
	l.finish(ctx, summary)
	return summary, nil
}

// LoadStoreTimezones loads timezone assignments from a CSV file with
// columns store_id, timezone_str. The whole load is upserted inside one
// transaction so re-ingestion replaces assignments atomically.
func (l *Loader) LoadStoreTimezones(ctx context.Context, path string) (*Summary, error) {
	summary := &Summary{Source: path}

	var all []*models.StoreTimezone
	err := l.forEachRecord(path, func(line int, fields map[string]string) {
		tz, reason := parseTimezoneRecord(fields)
		if reason != "" {
			summary.Rejected = append(summary.Rejected, RejectedRow{Line: line, Reason: reason})
			return
		}
		all = append(all, tz)
	}, nil)
	if err != nil {
		return nil, err
	}

	err = l.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		repo := repository.NewStoreTimezoneRepositoryWithTx(tx)
		for start := 0; start < len(all); start += insertBatchSize {
			end := start + insertBatchSize
			if end > len(all) {
				end = len(all)
			}
			if err := repo.BulkUpsert(ctx, all[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.Inserted = len(all)
	summary.Processed = summary.Inserted + len(summary.Rejected)
	l.finish(ctx, summary)
	return summary, nil
}

// forEachRecord streams a CSV file record by record. handle receives the
// 1-based data line number and a header-keyed field map; afterRecord, when
// non-nil, runs after each record so callers can flush batches.
func (l *Loader) forEachRecord(path string, handle func(line int, fields map[string]string), afterRecord func() error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		line++
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				fields[name] = strings.TrimSpace(record[i])
			}
		}
		handle(line, fields)

		if afterRecord != nil {
			if err := afterRecord(); err != nil {
				return err
			}
		}
	}
}

func (l *Loader) finish(ctx context.Context, summary *Summary) {
	logger := log.WithFields(log.Fields{
		"source":    summary.Source,
		"processed": summary.Processed,
		"inserted":  summary.Inserted,
		"rejected":  len(summary.Rejected),
	})
	logger.Info("CSV load finished")
	for _, rej := range summary.Rejected {
		log.WithFields(log.Fields{
			"source": summary.Source,
			"line":   rej.Line,
			"reason": rej.Reason,
		}).Warn("Rejected row")
	}

	l.bus.Emit(ctx, events.IngestFinishedEvent{
		Source:    summary.Source,
		Processed: summary.Processed,
		Rejected:  len(summary.Rejected),
	})
}

func parseStatusRecord(fields map[string]string) (*models.StoreStatus, string) {
	storeID := fields["store_id"]
	if storeID == "" {
		return nil, "missing store_id"
	}
	status := fields["status"]
	if status == "" {
		return nil, "missing status"
	}

	ts, err := ParseStatusTimestamp(fields["timestamp_utc"])
	if err != nil {
		return nil, fmt.Sprintf("invalid timestamp_utc %q", fields["timestamp_utc"])
	}

	return &models.StoreStatus{
		StoreID:      storeID,
		TimestampUTC: ts,
		Status:       status,
	}, ""
}

func parseBusinessHoursRecord(fields map[string]string) (*models.BusinessHours, string) {
	storeID := fields["store_id"]
	if storeID == "" {
		return nil, "missing store_id"
	}

	day, err := strconv.Atoi(fields["day"])
	if err != nil || day < 0 || day > 6 {
		return nil, fmt.Sprintf("invalid day %q", fields["day"])
	}

	start := fields["start_time_local"]
	if start == "" {
		start = models.FullDayStart
	} else if !validClock(start) {
		return nil, fmt.Sprintf("invalid start_time_local %q", start)
	}

	end := fields["end_time_local"]
	if end == "" {
		end = models.FullDayEnd
	} else if !validClock(end) {
		return nil, fmt.Sprintf("invalid end_time_local %q", end)
	}

	return &models.BusinessHours{
		StoreID:        storeID,
		DayOfWeek:      day,
		StartTimeLocal: start,
		EndTimeLocal:   end,
	}, ""
}

func parseTimezoneRecord(fields map[string]string) (*models.StoreTimezone, string) {
	storeID := fields["store_id"]
	if storeID == "" {
		return nil, "missing store_id"
	}
	tz := fields["timezone_str"]
	if tz == "" {
		return nil, "missing timezone_str"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Sprintf("unknown timezone %q", tz)
	}

	return &models.StoreTimezone{StoreID: storeID, TimezoneStr: tz}, ""
}

// ParseStatusTimestamp parses a source timestamp. The raw data marks UTC
// with a trailing " UTC" rather than an offset.
func ParseStatusTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), " UTC")
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	layouts := []string{
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", raw)
}

func validClock(s string) bool {
	_, err := time.Parse("15:04:05", s)
	return err == nil
}
