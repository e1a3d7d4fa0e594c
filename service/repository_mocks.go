package service

import (
	"context"
	"time"

	"storepulse/models"

	"github.com/stretchr/testify/mock"
)

// MockStoreStatusRepository is a mock implementation of StoreStatusRepository
type MockStoreStatusRepository struct {
	mock.Mock
}

func (m *MockStoreStatusRepository) LatestTimestamp(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockStoreStatusRepository) DistinctStoreIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStoreStatusRepository) CountStatuses(ctx context.Context, storeID string, start, end time.Time) (int, int, error) {
	args := m.Called(ctx, storeID, start, end)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockBusinessHoursRepository is a mock implementation of BusinessHoursRepository
type MockBusinessHoursRepository struct {
	mock.Mock
}

func (m *MockBusinessHoursRepository) GetByStore(ctx context.Context, storeID string) ([]*models.BusinessHours, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BusinessHours), args.Error(1)
}

// MockStoreTimezoneRepository is a mock implementation of StoreTimezoneRepository
type MockStoreTimezoneRepository struct {
	mock.Mock
}

func (m *MockStoreTimezoneRepository) GetByStore(ctx context.Context, storeID string) (*models.StoreTimezone, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoreTimezone), args.Error(1)
}

// MockReportRepository is a mock implementation of ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByReportID(ctx context.Context, reportID string) (*models.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportRepository) MarkComplete(ctx context.Context, reportID string, artifactPath string, completedAt time.Time) error {
	args := m.Called(ctx, reportID, artifactPath, completedAt)
	return args.Error(0)
}

func (m *MockReportRepository) MarkFailed(ctx context.Context, reportID string) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}

// MockArtifactStore is a mock implementation of ArtifactStore
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) WriteReport(reportID string, rows []models.ReportRow) (string, error) {
	args := m.Called(reportID, rows)
	return args.String(0), args.Error(1)
}

// MockReportGenerator is a mock implementation of ReportGenerator
type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) Generate(ctx context.Context, reportID string) {
	m.Called(ctx, reportID)
}
