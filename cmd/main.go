package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"meditrack/internal/analytics"
	"meditrack/internal/caching"
	"meditrack/internal/config"
	"meditrack/internal/handlers"
	"meditrack/internal/jobs"
	"meditrack/internal/jobs/background"
	"meditrack/internal/middleware"
	"meditrack/internal/repositories"
	"meditrack/internal/services"
	"meditrack/pkg/database"
)

const version = "1.0.0"

const exportBucket = "meditrack-exports"

func main() {
	ctx := context.Background()

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	if err := database.RunMigrations(ctx, databaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// Reminder schedule seed
	seedReminders := config.DefaultReminders()
	if remindersFile := os.Getenv("REMINDERS_FILE"); remindersFile != "" {
		remindersCfg, err := config.LoadRemindersConfig(remindersFile)
		if err != nil {
			log.Fatalf("Failed to load reminders config: %v", err)
		}
		seedReminders = remindersCfg.Reminders
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	logRepo := repositories.NewDispenseLogRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	identitySvc := services.NewIdentityService(userRepo)
	dispenseSvc := services.NewDispenseService(userRepo, logRepo)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, jwtSecret, time.Hour)
	analyticsSvc := analytics.NewAnalyticsService(logRepo, cacheSvc)
	reminderSvc := services.NewReminderService(cacheSvc, seedReminders)
	reminderSvc.Seed(ctx, seedReminders)

	// Object storage for daily log exports; optional in development
	exportSvc := newExportService(ctx, logRepo)

	// Background jobs
	scheduler, err := background.NewJobScheduler(analyticsSvc, exportSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(identitySvc, authSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	logHandlers := handlers.NewLogHandlers(dispenseSvc, logRepo, analyticsSvc)
	pillHandlers := handlers.NewPillHandlers(reminderSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	api := e.Group("/api")

	// Device-facing endpoints; the dispenser firmware carries no token
	api.GET("/auth/check_uid", authHandlers.CheckUID)
	api.POST("/logs", logHandlers.CreateLog)

	// Onboarding and mobile client endpoints
	api.POST("/auth/login", authHandlers.Login)
	api.POST("/user/create", userHandlers.CreateUser)
	api.GET("/pill/reminders", pillHandlers.GetReminders)

	// Admin dashboard endpoints (require JWT)
	admin := api.Group("")
	admin.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	admin.GET("/user/list", userHandlers.ListUsers)
	admin.PUT("/user/:id/active", userHandlers.SetActive)
	admin.GET("/logs/list", logHandlers.ListLogs)
	admin.GET("/logs/user/:id", logHandlers.ListUserLogs)
	admin.GET("/logs/stats", logHandlers.GetStats)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("MediTrack backend v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}

// newExportService builds the MinIO-backed log export service, or returns
// nil when MINIO_ENDPOINT is unset so the export job stays unregistered.
func newExportService(ctx context.Context, logRepo repositories.DispenseLogRepository) *jobs.LogExportService {
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		log.Printf("MINIO_ENDPOINT not set, log export disabled")
		return nil
	}

	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorageService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(ctx, exportBucket); err != nil {
		log.Printf("WARN: could not ensure export bucket exists: %v", err)
	}

	return jobs.NewLogExportService(logRepo, storageSvc, exportBucket)
}
