package jobs

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"meditrack/internal/repositories"
	"meditrack/internal/services"
)

// LogExportService writes one CSV file per day of dispense logs to object
// storage, for offline review and archival.
type LogExportService struct {
	logRepo    repositories.DispenseLogRepository
	storageSvc services.StorageService
	bucket     string
}

func NewLogExportService(logRepo repositories.DispenseLogRepository, storageSvc services.StorageService, bucket string) *LogExportService {
	return &LogExportService{
		logRepo:    logRepo,
		storageSvc: storageSvc,
		bucket:     bucket,
	}
}

// ExportDay exports all dispense logs whose timestamp falls on the given
// UTC day. Days with no events produce no object.
func (s *LogExportService) ExportDay(ctx context.Context, day time.Time) error {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	logs, err := s.logRepo.ListBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to load logs for export: %w", err)
	}
	if len(logs) == 0 {
		log.Printf("Log export: no events on %s, skipping", from.Format("2006-01-02"))
		return nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "user_id", "timestamp", "pill_dispensed", "device_id"}); err != nil {
		return err
	}
	for _, entry := range logs {
		record := []string{
			entry.ID.String(),
			entry.UserID.String(),
			entry.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatBool(entry.PillDispensed),
			entry.DeviceID,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	objectName := fmt.Sprintf("dispense-logs/%s.csv", from.Format("2006-01-02"))
	if err := s.storageSvc.UploadExport(ctx, s.bucket, objectName, &buf, int64(buf.Len())); err != nil {
		return fmt.Errorf("failed to upload export %s: %w", objectName, err)
	}

	log.Printf("Log export: wrote %d events to %s/%s", len(logs), s.bucket, objectName)
	return nil
}

// ExportYesterday is the entry point the scheduler runs after midnight.
func (s *LogExportService) ExportYesterday(ctx context.Context) error {
	return s.ExportDay(ctx, time.Now().UTC().AddDate(0, 0, -1))
}
