package services

import (
	"context"
	"log"

	"meditrack/internal/caching"
	"meditrack/internal/models"
)

// ReminderService serves the medication schedule. The schedule is fed
// externally: a seed list is pushed into Redis at startup and whatever is
// in Redis wins afterwards. There is no scheduling logic here.
type ReminderService interface {
	GetReminders(ctx context.Context) ([]models.Reminder, error)
	Seed(ctx context.Context, reminders []models.Reminder)
}

type reminderService struct {
	cacheSvc caching.CacheService
	fallback []models.Reminder
}

func NewReminderService(cacheSvc caching.CacheService, fallback []models.Reminder) ReminderService {
	return &reminderService{cacheSvc: cacheSvc, fallback: fallback}
}

func (s *reminderService) GetReminders(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.cacheSvc.GetReminders(ctx)
	if err != nil {
		log.Printf("Failed to read reminders from cache, serving fallback: %v", err)
		return s.fallback, nil
	}
	if reminders == nil {
		return s.fallback, nil
	}
	return reminders, nil
}

// Seed pushes the configured schedule into Redis. Best effort: the
// fallback list still serves reads if the write fails.
func (s *reminderService) Seed(ctx context.Context, reminders []models.Reminder) {
	if len(reminders) == 0 {
		return
	}
	if err := s.cacheSvc.SetReminders(ctx, reminders); err != nil {
		log.Printf("Failed to seed reminders cache: %v", err)
	}
}
