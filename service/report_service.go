package service

import (
	"context"
	"fmt"

	"storepulse/events"
	"storepulse/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type reportService struct {
	reports   ReportRepository
	generator ReportGenerator
	bus       *events.Bus
	tasks     chan string
	workers   int
}

// NewReportService creates the report lifecycle controller. Computation is
// handed to a buffered task channel drained by a fixed pool of workers;
// callers observe completion only by polling the report record.
func NewReportService(reports ReportRepository, generator ReportGenerator, bus *events.Bus, workers, queueSize int) ReportService {
	if workers < 1 {
		workers = 1
	}
	return &reportService{
		reports:   reports,
		generator: generator,
		bus:       bus,
		tasks:     make(chan string, queueSize),
		workers:   workers,
	}
}

// Start launches the background workers. They run until ctx is cancelled.
func (s *reportService) Start(ctx context.Context) {
	for i := 0; i < s.workers; i++ {
		go s.worker(ctx, i)
	}
	log.WithField("workers", s.workers).Info("Report workers started")
}

func (s *reportService) worker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case reportID := <-s.tasks:
			log.WithFields(log.Fields{
				"worker":   id,
				"reportID": reportID,
			}).Debug("Worker picked up report")
			s.generator.Generate(ctx, reportID)
		}
	}
}

// StartReport persists a Running report record and enqueues its
// computation, returning the fresh identifier without waiting for the
// computation to finish. Identifiers are never reused, so exactly one
// computation ever runs per identifier.
func (s *reportService) StartReport(ctx context.Context) (string, error) {
	reportID := uuid.NewString()

	report := &models.Report{ReportID: reportID}
	if err := s.reports.Create(ctx, report); err != nil {
		return "", fmt.Errorf("failed to create report record: %w", err)
	}

	s.tasks <- reportID
	s.bus.Emit(ctx, events.ReportStartedEvent{ReportID: reportID})

	log.WithField("reportID", reportID).Info("Report queued")
	return reportID, nil
}

// GetReportStatus returns the current report record by identifier, or nil
// when the identifier is unknown.
func (s *reportService) GetReportStatus(ctx context.Context, reportID string) (*models.Report, error) {
	report, err := s.reports.GetByReportID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up report %s: %w", reportID, err)
	}
	return report, nil
}
