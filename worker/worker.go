package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"safecheck-backend/infrastructure"
	"safecheck-backend/models"
	"safecheck-backend/utils/logger"

	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/robfig/cron"
)

// Worker runs the DynamoDB table provisioning job
type Worker struct {
	Worker *models.Worker // Use pointer to avoid copying mutex
}

func NewWorker(ctx context.Context, cfg *models.Config, log logger.Logger, db models.DBClient) (*models.Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database client cannot be nil")
	}

	// Generate unique owner ID for this instance
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	requiredTables := cfg.Tables
	if len(requiredTables) == 0 {
		requiredTables = []string{"equipment", "safety_checks", "users"}
	}

	workerConfig := &models.WorkerConfig{
		CronSchedule:   getCronScheduleForEnvironment(cfg.AppEnv),
		LockTimeout:    30 * time.Minute,
		MaxRetries:     5,
		RetryDelay:     2 * time.Second,
		Environment:    cfg.AppEnv,
		RequiredTables: requiredTables,
		LockFilePath:   fmt.Sprintf("/tmp/safecheck-provision-%s.lock", cfg.AppEnv),
		StatusFilePath: fmt.Sprintf("/tmp/safecheck-status-%s.json", cfg.AppEnv),
		RunOnce:        true,
	}

	if err := validateWorkerConfig(workerConfig); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}

	lockManager := NewLockManager(workerConfig.LockFilePath, workerConfig.LockTimeout, workerConfig.Environment)
	statusManager := NewStatusManager(workerConfig.StatusFilePath)

	cronJob := cron.New()
	workerCtx, cancel := context.WithCancel(context.Background())

	return &models.Worker{
		Config:        cfg,
		Logger:        log,
		CronJob:       cronJob,
		LockManager:   lockManager,
		StatusManager: statusManager,
		DBClient:      db,
		WorkerConfig:  workerConfig,
		OwnerID:       ownerID,
		StopChan:      make(chan struct{}),
		Ctx:           workerCtx,
		Cancel:        cancel,
	}, nil
}

// Start starts the provisioning worker
func (w *Worker) Start() error {
	w.Worker.Mu.Lock()
	defer w.Worker.Mu.Unlock()

	if w.Worker.IsRunning {
		return fmt.Errorf("worker is already running")
	}

	if w.Worker.Ctx == nil || w.Worker.Cancel == nil {
		return fmt.Errorf("worker context is nil, worker may have been improperly initialized")
	}

	select {
	case <-w.Worker.Ctx.Done():
		return fmt.Errorf("worker context is cancelled, cannot start")
	default:
	}

	w.Worker.Logger.Infof("Starting provisioning worker with schedule: %s", w.Worker.WorkerConfig.CronSchedule)
	w.Worker.Logger.Infof("Worker ID: %s", w.Worker.OwnerID)

	statusManager := &StatusManager{StatusManager: *w.Worker.StatusManager}
	if statusManager.IsSetupCompleted() {
		w.Worker.Logger.Info("Table provisioning already completed, worker idle")
		return nil
	}

	if w.Worker.WorkerConfig.RunOnce {
		w.Worker.Logger.Info("Running in RunOnce mode, provisioning tables once")
		w.Worker.IsRunning = true
		go w.runOnceSetup()
		return nil
	}

	if err := w.Worker.CronJob.AddFunc(w.Worker.WorkerConfig.CronSchedule, w.executeSetupJobWithContext); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	w.Worker.CronJob.Start()
	w.Worker.IsRunning = true

	go func() {
		w.Worker.Logger.Info("Attempting immediate table provisioning")
		w.executeSetupJobWithContext()
	}()

	return nil
}

// executeSetupJobWithContext is the context-aware cron job function
func (w *Worker) executeSetupJobWithContext() {
	ctx, cancel := context.WithTimeout(w.Worker.Ctx, 15*time.Minute)
	defer cancel()

	w.executeSetupJob(ctx)
}

// runOnceSetup handles RunOnce mode execution
func (w *Worker) runOnceSetup() {
	defer func() {
		if r := recover(); r != nil {
			w.Worker.Logger.Errorf("RunOnce provisioning panicked: %v", r)
		}
		w.Stop()
	}()

	ctx, cancel := context.WithTimeout(w.Worker.Ctx, 15*time.Minute)
	defer cancel()

	w.executeSetupJob(ctx)
}

// executeSetupJob is the core provisioning logic
func (w *Worker) executeSetupJob(ctx context.Context) {
	statusManager := &StatusManager{StatusManager: *w.Worker.StatusManager}
	lockManager := &LockManager{LockManager: *w.Worker.LockManager}

	select {
	case <-w.Worker.Ctx.Done():
		w.Worker.Logger.Info("Worker is stopping, skipping execution")
		return
	case <-ctx.Done():
		w.Worker.Logger.Info("Context cancelled, skipping execution")
		return
	default:
	}

	w.Worker.Logger.Info("Table provisioning job triggered")

	if statusManager.IsSetupCompleted() {
		w.Worker.Logger.Info("Table provisioning already completed, skipping execution")
		return
	}

	if err := lockManager.CleanupExpiredLocks(); err != nil {
		w.Worker.Logger.Warnf("Failed to clean up expired locks: %v", err)
	}

	lockInfo, err := lockManager.AcquireLock(w.Worker.OwnerID)
	if err != nil {
		w.Worker.Logger.Warnf("Failed to acquire lock: %v", err)
		return
	}
	defer func() {
		if err := lockManager.ReleaseLock(lockInfo); err != nil {
			w.Worker.Logger.Errorf("Failed to release lock: %v", err)
		}
	}()

	w.Worker.Logger.Info("Lock acquired, starting table provisioning")

	if err := statusManager.UpdateProgress(models.StatusRunning, "provisioning started"); err != nil {
		w.Worker.Logger.Errorf("Failed to update status: %v", err)
	}

	if err := w.provisionTablesWithRetry(ctx, statusManager); err != nil {
		w.Worker.Logger.Errorf("Table provisioning failed: %v", err)
		if markErr := statusManager.MarkFailed(err); markErr != nil {
			w.Worker.Logger.Errorf("Failed to record failure: %v", markErr)
		}
		return
	}

	if err := statusManager.MarkCompleted("all tables available"); err != nil {
		w.Worker.Logger.Errorf("Failed to record completion: %v", err)
	}
	w.Worker.Logger.Info("Table provisioning completed successfully")
}

// provisionTablesWithRetry ensures every required table exists, retrying
// transient failures per table.
func (w *Worker) provisionTablesWithRetry(ctx context.Context, statusManager *StatusManager) error {
	if err := statusManager.UpdateProgress(models.StatusCreatingTables, "creating missing tables"); err != nil {
		w.Worker.Logger.Errorf("Failed to update status: %v", err)
	}

	for _, baseName := range w.Worker.WorkerConfig.RequiredTables {
		tableName := w.Worker.Config.DynamoDBTablePrefix + "_" + baseName

		var lastErr error
		for attempt := 0; attempt <= w.Worker.WorkerConfig.MaxRetries; attempt++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if attempt > 0 {
				if _, err := statusManager.IncrementRetryCount(); err != nil {
					w.Worker.Logger.Warnf("Failed to record retry: %v", err)
				}
				time.Sleep(w.Worker.WorkerConfig.RetryDelay)
			}

			lastErr = w.ensureTable(ctx, tableName, statusManager)
			if lastErr == nil {
				break
			}
			w.Worker.Logger.Warnf("Attempt %d failed for table %s: %v", attempt+1, tableName, lastErr)
		}

		if lastErr != nil {
			return fmt.Errorf("failed to provision table %s: %w", tableName, lastErr)
		}
	}

	return nil
}

// ensureTable creates tableName when DynamoDB does not know it yet
func (w *Worker) ensureTable(ctx context.Context, tableName string, statusManager *StatusManager) error {
	_, err := w.Worker.DBClient.DescribeTable(ctx, tableName)
	if err == nil {
		w.Worker.Logger.Debugf("Table %s already exists", tableName)
		return nil
	}
	if !isTableNotFoundError(err) {
		return fmt.Errorf("failed to describe table %s: %w", tableName, err)
	}

	input, err := infrastructure.GetTables(tableName)
	if err != nil {
		return fmt.Errorf("no schema for table %s: %w", tableName, err)
	}

	w.Worker.Logger.Infof("Creating table %s", tableName)
	if err := w.Worker.DBClient.CreateTable(ctx, input); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	if err := statusManager.AddTableCreated(tableName); err != nil {
		w.Worker.Logger.Warnf("Failed to record created table %s: %v", tableName, err)
	}

	return nil
}

// GetStatus returns the current worker status
func (w *Worker) GetStatus() (*models.ExecutionResult, error) {
	statusManager := &StatusManager{StatusManager: *w.Worker.StatusManager}
	return statusManager.LoadStatus()
}

// Stop stops the provisioning worker
func (w *Worker) Stop() error {
	w.Worker.StopOnce.Do(func() {
		w.Worker.Mu.Lock()
		defer w.Worker.Mu.Unlock()

		if !w.Worker.IsRunning {
			return
		}

		w.Worker.Logger.Info("Stopping provisioning worker")

		if w.Worker.Cancel != nil {
			w.Worker.Cancel()
		}

		if w.Worker.CronJob != nil {
			w.Worker.CronJob.Stop()
		}

		w.Worker.IsRunning = false

		select {
		case <-w.Worker.StopChan:
			// Already closed
		default:
			close(w.Worker.StopChan)
		}

		w.Worker.Logger.Info("Provisioning worker stopped")
	})

	return nil
}

// isTableNotFoundError checks if error indicates table not found
func isTableNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}

	errorStr := err.Error()
	return strings.Contains(errorStr, "ResourceNotFoundException") ||
		strings.Contains(errorStr, "Requested resource not found")
}

// validateWorkerConfig validates the worker configuration
func validateWorkerConfig(config *models.WorkerConfig) error {
	if config == nil {
		return fmt.Errorf("worker config cannot be nil")
	}
	if config.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if config.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive")
	}
	if config.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if config.RetryDelay <= 0 {
		return fmt.Errorf("retry delay must be positive")
	}
	if len(config.RequiredTables) == 0 {
		return fmt.Errorf("at least one required table must be specified")
	}
	if config.LockFilePath == "" {
		return fmt.Errorf("lock file path is required")
	}
	if config.StatusFilePath == "" {
		return fmt.Errorf("status file path is required")
	}

	if config.CronSchedule != "" {
		cronParser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := cronParser.Parse(config.CronSchedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s': %w", config.CronSchedule, err)
		}
	}

	return nil
}

// getCronScheduleForEnvironment returns environment-specific cron schedules
func getCronScheduleForEnvironment(env string) string {
	switch env {
	case "development":
		return "*/30 * * * * *" // Every 30 seconds for development
	case "testing":
		return "0 */5 * * * *" // Every 5 minutes for testing
	case "production":
		return "0 */15 * * * *" // Every 15 minutes for production
	default:
		return "0 */10 * * * *" // Every 10 minutes default
	}
}
