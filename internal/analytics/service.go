package analytics

import (
	"context"
	"log"
	"time"

	"meditrack/internal/caching"
	"meditrack/internal/repositories"
)

const statsCacheTTL = 24 * time.Hour

// AnalyticsService aggregates dispense logs for the dashboard. Results are
// cached in Redis; the background job refreshes them nightly and reads
// recompute on a cache miss.
type AnalyticsService struct {
	logRepo  repositories.DispenseLogRepository
	cacheSvc caching.CacheService
}

func NewAnalyticsService(logRepo repositories.DispenseLogRepository, cacheSvc caching.CacheService) *AnalyticsService {
	return &AnalyticsService{
		logRepo:  logRepo,
		cacheSvc: cacheSvc,
	}
}

// GetAdherenceStats returns the cached aggregate, recomputing when the
// cache is empty or unreachable.
func (s *AnalyticsService) GetAdherenceStats(ctx context.Context) (*caching.AdherenceStats, error) {
	stats, err := s.cacheSvc.GetAdherenceStats(ctx)
	if err != nil {
		log.Printf("Failed to read adherence stats from cache: %v", err)
	}
	if stats != nil {
		return stats, nil
	}
	return s.RefreshAdherenceStats(ctx)
}

// RefreshAdherenceStats recomputes the aggregate from the store and writes
// it back to the cache.
func (s *AnalyticsService) RefreshAdherenceStats(ctx context.Context) (*caching.AdherenceStats, error) {
	total, dispensed, err := s.logRepo.CountByOutcome(ctx)
	if err != nil {
		return nil, err
	}

	deviceCounts, err := s.logRepo.CountByDevice(ctx)
	if err != nil {
		return nil, err
	}

	byDevice := make(map[string]int64, len(deviceCounts))
	for _, dc := range deviceCounts {
		byDevice[dc.DeviceID] = dc.Events
	}

	stats := &caching.AdherenceStats{
		TotalEvents:    total,
		PillsDispensed: dispensed,
		ByDevice:       byDevice,
		ComputedAt:     time.Now().UTC(),
	}

	if err := s.cacheSvc.SetAdherenceStats(ctx, stats, statsCacheTTL); err != nil {
		// Serve the freshly computed value even if the cache write failed.
		log.Printf("Failed to cache adherence stats: %v", err)
	}
	return stats, nil
}
