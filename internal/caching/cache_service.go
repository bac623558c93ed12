package caching

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"meditrack/internal/models"
)

const (
	remindersKey      = "meditrack:reminders"
	adherenceStatsKey = "meditrack:stats:adherence"
)

// AdherenceStats is the dashboard aggregate cached between refreshes.
type AdherenceStats struct {
	TotalEvents    int64            `json:"total_events"`
	PillsDispensed int64            `json:"pills_dispensed"`
	ByDevice       map[string]int64 `json:"by_device"`
	ComputedAt     time.Time        `json:"computed_at"`
}

type CacheService interface {
	// Reminder schedule, fed externally and read by the mobile client.
	GetReminders(ctx context.Context) ([]models.Reminder, error)
	SetReminders(ctx context.Context, reminders []models.Reminder) error

	// Dashboard aggregates, refreshed by the background job.
	GetAdherenceStats(ctx context.Context) (*AdherenceStats, error)
	SetAdherenceStats(ctx context.Context, stats *AdherenceStats, ttl time.Duration) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port URLs as well as bare host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetReminders(ctx context.Context) ([]models.Reminder, error) {
	data, err := r.client.Get(ctx, remindersKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var reminders []models.Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *redisCacheService) SetReminders(ctx context.Context, reminders []models.Reminder) error {
	data, err := json.Marshal(reminders)
	if err != nil {
		return err
	}
	// No TTL: the schedule stays until the next feed replaces it.
	return r.client.Set(ctx, remindersKey, data, 0).Err()
}

func (r *redisCacheService) GetAdherenceStats(ctx context.Context) (*AdherenceStats, error) {
	data, err := r.client.Get(ctx, adherenceStatsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats AdherenceStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetAdherenceStats(ctx context.Context, stats *AdherenceStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, adherenceStatsKey, data, ttl).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
