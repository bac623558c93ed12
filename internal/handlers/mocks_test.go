package handlers

import (
	"context"
	"time"

	"meditrack/internal/caching"
	"meditrack/internal/models"
	"meditrack/internal/repositories"
	"meditrack/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) CheckUID(ctx context.Context, uid string) (bool, error) {
	args := m.Called(ctx, uid)
	return args.Bool(0), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*services.TokenResponse, *models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*services.TokenResponse), args.Get(1).(*models.User), args.Error(2)
}

type MockDispenseService struct {
	mock.Mock
}

func (m *MockDispenseService) RecordDispense(ctx context.Context, userUID string, pillDispensed bool, deviceID string) (*models.DispenseLog, error) {
	args := m.Called(ctx, userUID, pillDispensed, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DispenseLog), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, req *services.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockReminderService struct {
	mock.Mock
}

func (m *MockReminderService) GetReminders(ctx context.Context) ([]models.Reminder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reminder), args.Error(1)
}

func (m *MockReminderService) Seed(ctx context.Context, reminders []models.Reminder) {
	m.Called(ctx, reminders)
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
