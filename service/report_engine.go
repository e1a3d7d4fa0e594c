package service

import (
	"context"
	"fmt"
	"time"

	"storepulse/events"
	"storepulse/models"

	log "github.com/sirupsen/logrus"
)

// Trailing report windows, anchored at the dataset's latest observation
const (
	windowHour = time.Hour
	windowDay  = 24 * time.Hour
	windowWeek = 7 * 24 * time.Hour
)

// ReportEngine computes the full uptime report for a report identifier and
// drives the report record to its terminal state. Reference data is treated
// as a read-only snapshot for the duration of one computation.
type ReportEngine struct {
	statuses  StoreStatusRepository
	hours     BusinessHoursRepository
	timezones StoreTimezoneRepository
	reports   ReportRepository
	artifacts ArtifactStore
	bus       *events.Bus
	fallback  *time.Location
}

// NewReportEngine creates a new report engine. fallback is the timezone
// applied to stores without an assignment.
func NewReportEngine(
	statuses StoreStatusRepository,
	hours BusinessHoursRepository,
	timezones StoreTimezoneRepository,
	reports ReportRepository,
	artifacts ArtifactStore,
	bus *events.Bus,
	fallback *time.Location,
) *ReportEngine {
	return &ReportEngine{
		statuses:  statuses,
		hours:     hours,
		timezones: timezones,
		reports:   reports,
		artifacts: artifacts,
		bus:       bus,
		fallback:  fallback,
	}
}

// Generate runs the whole report. Any failure, including a single store's,
// discards all partial rows and transitions the report to Failed; the
// artifact is written and the record marked Complete only when every store
// succeeded. The terminal write is the last mutation and happens once.
func (e *ReportEngine) Generate(ctx context.Context, reportID string) {
	logger := log.WithField("reportID", reportID)
	logger.Info("Starting report generation")

	rows, err := e.buildRows(ctx, logger)
	if err != nil {
		logger.WithError(err).Error("Report generation failed")
		e.fail(ctx, reportID, err)
		return
	}

	artifactPath, err := e.artifacts.WriteReport(reportID, rows)
	if err != nil {
		logger.WithError(err).Error("Failed to write report artifact")
		e.fail(ctx, reportID, err)
		return
	}

	if err := e.reports.MarkComplete(ctx, reportID, artifactPath, time.Now().UTC()); err != nil {
		logger.WithError(err).Error("Failed to mark report complete")
		return
	}

	logger.WithFields(log.Fields{
		"stores":   len(rows),
		"artifact": artifactPath,
	}).Info("Report generation complete")

	e.bus.Emit(ctx, events.ReportCompletedEvent{
		ReportID:     reportID,
		StoreCount:   len(rows),
		ArtifactPath: artifactPath,
	})
}

func (e *ReportEngine) fail(ctx context.Context, reportID string, cause error) {
	if err := e.reports.MarkFailed(ctx, reportID); err != nil {
		log.WithField("reportID", reportID).WithError(err).Error("Failed to mark report failed")
		return
	}
	e.bus.Emit(ctx, events.ReportFailedEvent{ReportID: reportID, Reason: cause.Error()})
}

// buildRows assembles one row per distinct observed store. "Current time"
// is the dataset's own latest observation, computed once and threaded
// through, not the wall clock: the samples are historical batch data.
func (e *ReportEngine) buildRows(ctx context.Context, logger *log.Entry) ([]models.ReportRow, error) {
	currentTime, err := e.statuses.LatestTimestamp(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current time: %w", err)
	}
	if currentTime == nil {
		return nil, fmt.Errorf("no status observations exist")
	}

	storeIDs, err := e.statuses.DistinctStoreIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	logger.WithField("stores", len(storeIDs)).Info("Processing stores")

	rows := make([]models.ReportRow, 0, len(storeIDs))
	for _, storeID := range storeIDs {
		row, err := e.storeRow(ctx, storeID, *currentTime)
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", storeID, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// storeRow computes the six figures for one store. Day and week windows are
// reported in hours, the hour window in minutes; the asymmetry is the
// consumer-facing convention for this table.
func (e *ReportEngine) storeRow(ctx context.Context, storeID string, currentTime time.Time) (models.ReportRow, error) {
	loc, err := e.locationFor(ctx, storeID)
	if err != nil {
		return models.ReportRow{}, err
	}

	hours, err := e.hours.GetByStore(ctx, storeID)
	if err != nil {
		return models.ReportRow{}, err
	}
	if len(hours) == 0 {
		hours = models.DefaultWeeklyHours(storeID)
	}

	localCurrent := currentTime.In(loc)

	upHour, downHour, err := e.uptimeDowntime(ctx, storeID, hours, localCurrent.Add(-windowHour), localCurrent)
	if err != nil {
		return models.ReportRow{}, err
	}
	upDay, downDay, err := e.uptimeDowntime(ctx, storeID, hours, localCurrent.Add(-windowDay), localCurrent)
	if err != nil {
		return models.ReportRow{}, err
	}
	upWeek, downWeek, err := e.uptimeDowntime(ctx, storeID, hours, localCurrent.Add(-windowWeek), localCurrent)
	if err != nil {
		return models.ReportRow{}, err
	}

	return models.ReportRow{
		StoreID:          storeID,
		UptimeLastHour:   upHour,
		UptimeLastDay:    upDay / 60,
		UptimeLastWeek:   upWeek / 60,
		DowntimeLastHour: downHour,
		DowntimeLastDay:  downDay / 60,
		DowntimeLastWeek: downWeek / 60,
	}, nil
}

// uptimeDowntime estimates the uptime/downtime split in minutes for one
// store over [windowStart, windowEnd], both in the store's local location.
func (e *ReportEngine) uptimeDowntime(ctx context.Context, storeID string, hours []*models.BusinessHours, windowStart, windowEnd time.Time) (float64, float64, error) {
	var totalDuration float64
	if IsAlwaysOpen(hours) {
		totalDuration = windowEnd.Sub(windowStart).Minutes()
	} else {
		periods, err := CalculateOverlap(hours, windowStart, windowEnd)
		if err != nil {
			return 0, 0, err
		}
		if len(periods) == 0 {
			// No open hours inside the window at all: full downtime by
			// policy, distinct from the zero-sample case.
			return 0, windowEnd.Sub(windowStart).Minutes(), nil
		}
		totalDuration = TotalOverlapMinutes(periods)
	}

	active, inactive, err := e.statuses.CountStatuses(ctx, storeID, windowStart, windowEnd)
	if err != nil {
		return 0, 0, err
	}

	uptime, downtime := ExtrapolateUptime(totalDuration, active, inactive)
	return uptime, downtime, nil
}

// locationFor resolves a store's IANA timezone, applying the configured
// fallback when the store has no assignment. An assignment that fails to
// load is a data error and fails the report.
func (e *ReportEngine) locationFor(ctx context.Context, storeID string) (*time.Location, error) {
	tz, err := e.timezones.GetByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if tz == nil {
		return e.fallback, nil
	}

	loc, err := time.LoadLocation(tz.TimezoneStr)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz.TimezoneStr, err)
	}
	return loc, nil
}
