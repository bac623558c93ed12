package handlers

import (
	"net/http"

	"meditrack/internal/common"
	"meditrack/internal/services"

	"github.com/labstack/echo/v4"
)

// PillHandlers serves the medication schedule to the mobile client.
type PillHandlers struct {
	reminderSvc services.ReminderService
}

func NewPillHandlers(reminderSvc services.ReminderService) *PillHandlers {
	return &PillHandlers{reminderSvc: reminderSvc}
}

// GetReminders returns the reminder list as a bare JSON array, matching
// what the mobile client already consumes.
func (h *PillHandlers) GetReminders(c echo.Context) error {
	reminders, err := h.reminderSvc.GetReminders(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to load reminders")
	}
	return c.JSON(http.StatusOK, reminders)
}
