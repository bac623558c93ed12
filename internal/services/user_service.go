package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meditrack/internal/common"
	"meditrack/internal/models"
	"meditrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserRequest carries the provisioning parameters. RFIDUID is
// optional; a user without a paired tag simply never passes the identity
// check until one is assigned.
type CreateUserRequest struct {
	Username string
	Email    string
	Password string
	RFIDUID  *string
}

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Create provisions one user with active=true. The password is stored only
// as a bcrypt hash. Uniqueness of username, email and rfid_uid rests on the
// database constraints, so concurrent calls for the same identifier cannot
// race past each other; the losing insert surfaces as a conflict.
func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("email is not a valid address: %w", common.ErrValidation)
	}
	if err := common.ValidateRequiredString(req.Password, "password"); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if req.RFIDUID != nil && strings.TrimSpace(*req.RFIDUID) == "" {
		return nil, fmt.Errorf("rfid_uid must not be blank when provided: %w", common.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		RFIDUID:      req.RFIDUID,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive toggles the per-user gate the identity check consults.
func (s *userService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	if err := s.userRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", common.ErrNotFound)
		}
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.userRepo.List(ctx, limit, offset)
}
