package services

import (
	"context"
	"time"

	"meditrack/internal/caching"
	"meditrack/internal/models"
	"meditrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByRFIDUID(ctx context.Context, rfidUID string) (*models.User, error) {
	args := m.Called(ctx, rfidUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockDispenseLogRepository struct {
	mock.Mock
}

func (m *MockDispenseLogRepository) Create(ctx context.Context, logEntry *models.DispenseLog) error {
	args := m.Called(ctx, logEntry)
	return args.Error(0)
}

func (m *MockDispenseLogRepository) List(ctx context.Context, limit, offset int) ([]*models.DispenseLog, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DispenseLog), args.Error(1)
}

func (m *MockDispenseLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.DispenseLog, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DispenseLog), args.Error(1)
}

func (m *MockDispenseLogRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.DispenseLog, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DispenseLog), args.Error(1)
}

func (m *MockDispenseLogRepository) CountByOutcome(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockDispenseLogRepository) CountByDevice(ctx context.Context) ([]repositories.DeviceCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.DeviceCount), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetReminders(ctx context.Context) ([]models.Reminder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reminder), args.Error(1)
}

func (m *MockCacheService) SetReminders(ctx context.Context, reminders []models.Reminder) error {
	args := m.Called(ctx, reminders)
	return args.Error(0)
}

func (m *MockCacheService) GetAdherenceStats(ctx context.Context) (*caching.AdherenceStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*caching.AdherenceStats), args.Error(1)
}

func (m *MockCacheService) SetAdherenceStats(ctx context.Context, stats *caching.AdherenceStats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
