package services

import (
	"context"
	"errors"
	"fmt"

	"meditrack/internal/common"
	"meditrack/internal/models"
	"meditrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DispenseService records dispense attempts reported by the hardware
// units. The tag identifier is resolved against users.rfid_uid; the log
// row references the resolved user id.
type DispenseService interface {
	RecordDispense(ctx context.Context, userUID string, pillDispensed bool, deviceID string) (*models.DispenseLog, error)
}

type dispenseService struct {
	userRepo repositories.UserRepository
	logRepo  repositories.DispenseLogRepository
}

func NewDispenseService(userRepo repositories.UserRepository, logRepo repositories.DispenseLogRepository) DispenseService {
	return &dispenseService{userRepo: userRepo, logRepo: logRepo}
}

// RecordDispense inserts exactly one immutable log row per call. Duplicate
// calls with identical fields create distinct rows; the service never
// deduplicates dispense events.
func (s *dispenseService) RecordDispense(ctx context.Context, userUID string, pillDispensed bool, deviceID string) (*models.DispenseLog, error) {
	if err := common.ValidateRequiredString(userUID, "user_uid"); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if err := common.ValidateRequiredString(deviceID, "device_id"); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	user, err := s.userRepo.GetByRFIDUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user for tag: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve tag: %w", err)
	}

	logEntry := &models.DispenseLog{
		ID:            uuid.New(),
		UserID:        user.ID,
		PillDispensed: pillDispensed,
		DeviceID:      deviceID,
	}
	if err := s.logRepo.Create(ctx, logEntry); err != nil {
		return nil, fmt.Errorf("failed to record dispense event: %w", err)
	}
	return logEntry, nil
}
