package repositories

import (
	"context"
	"time"

	"meditrack/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DeviceCount aggregates dispense events for one hardware unit.
type DeviceCount struct {
	DeviceID  string `json:"device_id"`
	Events    int64  `json:"events"`
	Dispensed int64  `json:"dispensed"`
}

type DispenseLogRepository interface {
	Create(ctx context.Context, logEntry *models.DispenseLog) error
	List(ctx context.Context, limit, offset int) ([]*models.DispenseLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.DispenseLog, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.DispenseLog, error)
	CountByOutcome(ctx context.Context) (total int64, dispensed int64, err error)
	CountByDevice(ctx context.Context) ([]DeviceCount, error)
}

type dispenseLogRepo struct {
	db Database
}

func NewDispenseLogRepo(db Database) DispenseLogRepository {
	return &dispenseLogRepo{db: db}
}

// Create appends one log row. The timestamp is assigned by the database,
// never by the caller, and is scanned back into logEntry.
func (r *dispenseLogRepo) Create(ctx context.Context, logEntry *models.DispenseLog) error {
	query := `
		INSERT INTO dispense_logs (id, user_id, timestamp, pill_dispensed, device_id)
		VALUES ($1, $2, NOW(), $3, $4)
		RETURNING timestamp
	`
	return r.db.QueryRow(ctx, query, logEntry.ID, logEntry.UserID, logEntry.PillDispensed, logEntry.DeviceID).Scan(&logEntry.Timestamp)
}

func (r *dispenseLogRepo) List(ctx context.Context, limit, offset int) ([]*models.DispenseLog, error) {
	query := `
		SELECT id, user_id, timestamp, pill_dispensed, device_id
		FROM dispense_logs
		ORDER BY timestamp DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *dispenseLogRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.DispenseLog, error) {
	query := `
		SELECT id, user_id, timestamp, pill_dispensed, device_id
		FROM dispense_logs
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *dispenseLogRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*models.DispenseLog, error) {
	query := `
		SELECT id, user_id, timestamp, pill_dispensed, device_id
		FROM dispense_logs
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY timestamp ASC
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *dispenseLogRepo) CountByOutcome(ctx context.Context) (int64, int64, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE pill_dispensed)
		FROM dispense_logs
	`
	var total, dispensed int64
	if err := r.db.QueryRow(ctx, query).Scan(&total, &dispensed); err != nil {
		return 0, 0, err
	}
	return total, dispensed, nil
}

func (r *dispenseLogRepo) CountByDevice(ctx context.Context) ([]DeviceCount, error) {
	query := `
		SELECT device_id, COUNT(*), COUNT(*) FILTER (WHERE pill_dispensed)
		FROM dispense_logs
		GROUP BY device_id
		ORDER BY device_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DeviceCount
	for rows.Next() {
		var dc DeviceCount
		if err := rows.Scan(&dc.DeviceID, &dc.Events, &dc.Dispensed); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

func scanLogs(rows pgx.Rows) ([]*models.DispenseLog, error) {
	var logs []*models.DispenseLog
	for rows.Next() {
		entry := &models.DispenseLog{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Timestamp, &entry.PillDispensed, &entry.DeviceID); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
