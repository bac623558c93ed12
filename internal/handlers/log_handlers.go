package handlers

import (
	"errors"
	"net/http"

	"meditrack/internal/analytics"
	"meditrack/internal/common"
	"meditrack/internal/repositories"
	"meditrack/internal/services"

	"github.com/labstack/echo/v4"
)

// LogHandlers handles dispense event recording and the admin log views.
type LogHandlers struct {
	dispenseSvc  services.DispenseService
	logRepo      repositories.DispenseLogRepository
	analyticsSvc *analytics.AnalyticsService
}

func NewLogHandlers(dispenseSvc services.DispenseService, logRepo repositories.DispenseLogRepository, analyticsSvc *analytics.AnalyticsService) *LogHandlers {
	return &LogHandlers{
		dispenseSvc:  dispenseSvc,
		logRepo:      logRepo,
		analyticsSvc: analyticsSvc,
	}
}

// CreateLogRequest is the payload the dispenser firmware posts after each
// dispense attempt. UserUID is the RFID tag string, not a user id.
type CreateLogRequest struct {
	UserUID       string `json:"user_uid"`
	PillDispensed bool   `json:"pill_dispensed"`
	DeviceID      string `json:"device_id"`
}

// CreateLog records one dispense event against the user the tag resolves
// to. Responds 404 when the tag matches no user; nothing is written in
// that case.
func (h *LogHandlers) CreateLog(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	_, err := h.dispenseSvc.RecordDispense(ctx, req.UserUID, req.PillDispensed, req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			return common.SendValidationError(c, "body", err.Error())
		case errors.Is(err, common.ErrNotFound):
			return common.SendNotFoundError(c, "User")
		default:
			return common.SendServerError(c, "Failed to create log")
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "Log created"})
}

// ListLogsRequest represents query parameters for listing logs
type ListLogsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListLogs returns recent dispense events for the dashboard.
func (h *LogHandlers) ListLogs(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListLogsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	logs, err := h.logRepo.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list logs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}

// ListUserLogs returns the dispense history of one user.
func (h *LogHandlers) ListUserLogs(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req ListLogsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	logs, err := h.logRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list logs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}

// GetStats serves the dashboard adherence aggregate.
func (h *LogHandlers) GetStats(c echo.Context) error {
	stats, err := h.analyticsSvc.GetAdherenceStats(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to compute stats")
	}
	return c.JSON(http.StatusOK, stats)
}
