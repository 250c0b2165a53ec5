package worker

import (
	"context"
	"fmt"
	"time"

	"safecheck-backend/models"
	"safecheck-backend/utils/logger"
)

// Service wraps the provisioning worker for easy integration
type Service struct {
	worker *models.Worker
	logger logger.Logger
}

// NewService creates a new worker service
func NewService(ctx context.Context, cfg *models.Config, log logger.Logger, db models.DBClient) (*Service, error) {
	worker, err := NewWorker(ctx, cfg, log, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create provisioning worker: %w", err)
	}

	return &Service{
		worker: worker,
		logger: log,
	}, nil
}

// StartInBackground starts the provisioning worker in the background
func (s *Service) StartInBackground() error {
	s.logger.Info("Starting provisioning worker service in background")

	go func() {
		w := &Worker{Worker: s.worker}
		if err := w.Start(); err != nil {
			s.logger.Errorf("Provisioning worker failed to start: %v", err)
		}
	}()

	return nil
}

// Stop stops the provisioning worker service
func (s *Service) Stop() error {
	w := &Worker{Worker: s.worker}
	s.logger.Info("Stopping provisioning worker service")
	return w.Stop()
}

// GetStatus returns the current provisioning status
func (s *Service) GetStatus() (*models.ExecutionResult, error) {
	w := &Worker{Worker: s.worker}
	return w.GetStatus()
}

// IsSetupCompleted checks if table provisioning is completed
func (s *Service) IsSetupCompleted() (bool, error) {
	status, err := s.GetStatus()
	if err != nil {
		return false, err
	}

	return status.Status == models.StatusCompleted && status.Success, nil
}

// GetHealthStatus returns a health status for monitoring
func (s *Service) GetHealthStatus() map[string]interface{} {
	status, err := s.GetStatus()
	if err != nil {
		return map[string]interface{}{
			"status":         "error",
			"message":        fmt.Sprintf("Failed to get status: %v", err),
			"healthy":        false,
			"worker_running": s.worker.IsRunning,
		}
	}

	healthy := status.Status == models.StatusCompleted && status.Success

	return map[string]interface{}{
		"status":         string(status.Status),
		"healthy":        healthy,
		"worker_running": s.worker.IsRunning,
		"tables_created": status.TablesCreated,
		"retry_count":    status.RetryCount,
		"environment":    status.Environment,
		"start_time":     status.StartTime,
		"duration":       status.Duration.String(),
		"error_message":  status.ErrorMessage,
	}
}

// WaitForCompletion waits for table provisioning to complete (with timeout)
func (s *Service) WaitForCompletion(timeoutSeconds int) error {
	s.logger.Infof("Waiting for table provisioning completion (timeout: %ds)", timeoutSeconds)

	for i := 0; i < timeoutSeconds; i++ {
		if completed, err := s.IsSetupCompleted(); err != nil {
			return fmt.Errorf("error checking completion status: %w", err)
		} else if completed {
			s.logger.Info("Table provisioning completed")
			return nil
		}

		select {
		case <-s.worker.StopChan:
			return fmt.Errorf("worker stopped before completion")
		default:
		}

		time.Sleep(1 * time.Second)
	}

	return fmt.Errorf("timeout waiting for table provisioning completion")
}
