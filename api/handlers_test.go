package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storepulse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockReportService) StartReport(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockReportService) GetReportStatus(ctx context.Context, reportID string) (*models.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func setupRouter(svc *mockReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(svc))
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTriggerReport(t *testing.T) {
	svc := new(mockReportService)
	svc.On("StartReport", mock.Anything).Return("report-123", nil)

	w := doRequest(setupRouter(svc), http.MethodPost, "/trigger_report")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "report-123", decodeBody(t, w)["report_id"])
}

func TestTriggerReport_ServiceError(t *testing.T) {
	svc := new(mockReportService)
	svc.On("StartReport", mock.Anything).Return("", assert.AnError)

	w := doRequest(setupRouter(svc), http.MethodPost, "/trigger_report")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetReport_MissingParam(t *testing.T) {
	svc := new(mockReportService)

	w := doRequest(setupRouter(svc), http.MethodGet, "/get_report")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetReportStatus", mock.Anything, mock.Anything)
}

func TestGetReport_NotFound(t *testing.T) {
	svc := new(mockReportService)
	svc.On("GetReportStatus", mock.Anything, "nope").Return(nil, nil)

	w := doRequest(setupRouter(svc), http.MethodGet, "/get_report?report_id=nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReport_Running(t *testing.T) {
	svc := new(mockReportService)
	svc.On("GetReportStatus", mock.Anything, "r1").
		Return(&models.Report{ReportID: "r1", Status: models.ReportStatusRunning}, nil)

	w := doRequest(setupRouter(svc), http.MethodGet, "/get_report?report_id=r1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Running", decodeBody(t, w)["status"])
}

func TestGetReport_Complete(t *testing.T) {
	artifact := "reports/report_r1.csv"
	svc := new(mockReportService)
	svc.On("GetReportStatus", mock.Anything, "r1").
		Return(&models.Report{ReportID: "r1", Status: models.ReportStatusComplete, ArtifactPath: &artifact}, nil)

	w := doRequest(setupRouter(svc), http.MethodGet, "/get_report?report_id=r1")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Complete", body["status"])
	assert.Equal(t, artifact, body["report_url"])
}

func TestGetReport_Failed(t *testing.T) {
	svc := new(mockReportService)
	svc.On("GetReportStatus", mock.Anything, "r1").
		Return(&models.Report{ReportID: "r1", Status: models.ReportStatusFailed}, nil)

	w := doRequest(setupRouter(svc), http.MethodGet, "/get_report?report_id=r1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed", decodeBody(t, w)["status"])
}
