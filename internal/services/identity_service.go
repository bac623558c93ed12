package services

import (
	"context"
	"errors"

	"meditrack/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// IdentityService answers whether an RFID tag belongs to an active user.
type IdentityService interface {
	CheckUID(ctx context.Context, uid string) (bool, error)
}

type identityService struct {
	userRepo repositories.UserRepository
}

func NewIdentityService(userRepo repositories.UserRepository) IdentityService {
	return &identityService{userRepo: userRepo}
}

// CheckUID returns true only for a known tag whose user is active. An
// unknown tag and an inactive user both come back as a plain false so the
// caller cannot probe which tags exist.
func (s *identityService) CheckUID(ctx context.Context, uid string) (bool, error) {
	user, err := s.userRepo.GetByRFIDUID(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return user.IsActive, nil
}
