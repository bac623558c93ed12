package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meditrack/internal/analytics"
	"meditrack/internal/caching"
	"meditrack/internal/common"
	"meditrack/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateLog_Success(t *testing.T) {
	e := echo.New()
	mockDispense := &MockDispenseService{}
	mockDispense.Test(t)
	h := NewLogHandlers(mockDispense, nil, nil)

	mockDispense.On("RecordDispense", mock.Anything, "TAG1", true, "dev-07").Return(&models.DispenseLog{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Timestamp:     time.Now(),
		PillDispensed: true,
		DeviceID:      "dev-07",
	}, nil)

	body := `{"user_uid":"TAG1","pill_dispensed":true,"device_id":"dev-07"}`
	req := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CreateLog(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Log created"`)
	mockDispense.AssertExpectations(t)
}

func TestCreateLog_UnknownTag(t *testing.T) {
	e := echo.New()
	mockDispense := &MockDispenseService{}
	mockDispense.Test(t)
	h := NewLogHandlers(mockDispense, nil, nil)

	mockDispense.On("RecordDispense", mock.Anything, "TAG-UNKNOWN", true, "dev-07").
		Return(nil, fmt.Errorf("user for tag: %w", common.ErrNotFound))

	body := `{"user_uid":"TAG-UNKNOWN","pill_dispensed":true,"device_id":"dev-07"}`
	req := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CreateLog(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestCreateLog_ValidationError(t *testing.T) {
	e := echo.New()
	mockDispense := &MockDispenseService{}
	mockDispense.Test(t)
	h := NewLogHandlers(mockDispense, nil, nil)

	mockDispense.On("RecordDispense", mock.Anything, "", false, "dev-07").
		Return(nil, fmt.Errorf("user_uid is required: %w", common.ErrValidation))

	body := `{"user_uid":"","pill_dispensed":false,"device_id":"dev-07"}`
	req := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CreateLog(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLogs_Success(t *testing.T) {
	e := echo.New()
	mockRepo := &MockDispenseLogRepository{}
	mockRepo.Test(t)
	h := NewLogHandlers(nil, mockRepo, nil)

	mockRepo.On("List", mock.Anything, 50, 0).Return([]*models.DispenseLog{
		{ID: uuid.New(), UserID: uuid.New(), Timestamp: time.Now(), PillDispensed: true, DeviceID: "dev-07"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/logs/list", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListLogs(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dev-07")
	mockRepo.AssertExpectations(t)
}

func TestListUserLogs_InvalidID(t *testing.T) {
	e := echo.New()
	h := NewLogHandlers(nil, &MockDispenseLogRepository{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/logs/user/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	require.NoError(t, h.ListUserLogs(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStats_ServedFromCache(t *testing.T) {
	e := echo.New()
	mockRepo := &MockDispenseLogRepository{}
	mockCache := &MockCacheService{}
	mockRepo.Test(t)
	mockCache.Test(t)
	analyticsSvc := analytics.NewAnalyticsService(mockRepo, mockCache)
	h := NewLogHandlers(nil, mockRepo, analyticsSvc)

	mockCache.On("GetAdherenceStats", mock.Anything).Return(&caching.AdherenceStats{
		TotalEvents:    10,
		PillsDispensed: 7,
		ByDevice:       map[string]int64{"dev-07": 6},
		ComputedAt:     time.Now().UTC(),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/logs/stats", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetStats(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_events":10`)
	// Cache hit: the store is never queried.
	mockRepo.AssertNotCalled(t, "CountByOutcome", mock.Anything)
	mockCache.AssertExpectations(t)
}
