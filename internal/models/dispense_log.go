package models

import (
	"time"

	"github.com/google/uuid"
)

// DispenseLog is one dispense attempt recorded by a device. Rows are
// append-only; nothing in the service updates or deletes them.
type DispenseLog struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
	PillDispensed bool      `json:"pill_dispensed" db:"pill_dispensed"`
	DeviceID      string    `json:"device_id" db:"device_id"`
}
