package background

import (
	"context"
	"log"
	"time"

	"meditrack/internal/analytics"
	"meditrack/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the recurring maintenance jobs: the adherence stats
// refresh and the daily log export.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.AnalyticsService
	exportSvc    *jobs.LogExportService
	jobHandles   map[string]gocron.Job
}

// NewJobScheduler creates a scheduler with all jobs registered but not
// yet started. exportSvc may be nil when object storage is not configured.
func NewJobScheduler(analyticsSvc *analytics.AnalyticsService, exportSvc *jobs.LogExportService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		exportSvc:    exportSvc,
		jobHandles:   make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.refreshAdherenceStats, context.Background()),
		gocron.WithName("adherence-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stats refresh job: %v", err)
	} else {
		js.jobHandles["adherence-stats"] = statsJob
	}

	if js.exportSvc != nil {
		exportJob, err := js.scheduler.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 30, 0))),
			gocron.NewTask(js.exportLogs, context.Background()),
			gocron.WithName("dispense-log-export"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			log.Printf("Failed to create log export job: %v", err)
		} else {
			js.jobHandles["log-export"] = exportJob
		}
	}

	log.Printf("Registered %d background jobs", len(js.jobHandles))
}

func (js *JobScheduler) refreshAdherenceStats(ctx context.Context) error {
	start := time.Now()
	if _, err := js.analyticsSvc.RefreshAdherenceStats(ctx); err != nil {
		log.Printf("Adherence stats refresh failed: %v", err)
		return err
	}
	log.Printf("Adherence stats refreshed in %v", time.Since(start))
	return nil
}

func (js *JobScheduler) exportLogs(ctx context.Context) error {
	if err := js.exportSvc.ExportYesterday(ctx); err != nil {
		log.Printf("Dispense log export failed: %v", err)
		return err
	}
	return nil
}
