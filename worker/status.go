package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"safecheck-backend/models"
)

// StatusManager persists table provisioning progress between runs
type StatusManager struct {
	models.StatusManager
}

// NewStatusManager creates a new status manager
func NewStatusManager(statusPath string) *models.StatusManager {
	return &models.StatusManager{
		StatusFilePath: statusPath,
	}
}

// SaveStatus writes the execution result to the status file
func (sm *StatusManager) SaveStatus(result *models.ExecutionResult) error {
	if err := os.MkdirAll(filepath.Dir(sm.StatusFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize status: %w", err)
	}

	tempFile := sm.StatusFilePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp status file: %w", err)
	}
	if err := os.Rename(tempFile, sm.StatusFilePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp status file: %w", err)
	}
	return nil
}

// LoadStatus reads the last execution result, returning an idle result when
// no status file exists yet.
func (sm *StatusManager) LoadStatus() (*models.ExecutionResult, error) {
	data, err := os.ReadFile(sm.StatusFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.ExecutionResult{
				Status:        models.StatusIdle,
				TablesCreated: []models.TableStatus{},
			}, nil
		}
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse status file: %w", err)
	}

	return &result, nil
}

// IsSetupCompleted reports whether a previous run finished successfully
func (sm *StatusManager) IsSetupCompleted() bool {
	result, err := sm.LoadStatus()
	if err != nil {
		return false
	}
	return result.Status == models.StatusCompleted
}

// UpdateProgress records the current worker status
func (sm *StatusManager) UpdateProgress(status models.WorkerStatus, message string) error {
	result, err := sm.LoadStatus()
	if err != nil {
		result = &models.ExecutionResult{TablesCreated: []models.TableStatus{}}
	}

	result.Status = status
	result.Message = message
	if result.StartTime.IsZero() {
		result.StartTime = time.Now()
	}

	return sm.SaveStatus(result)
}

// AddTableCreated records a table that this run provisioned
func (sm *StatusManager) AddTableCreated(tableName string) error {
	result, err := sm.LoadStatus()
	if err != nil {
		return err
	}

	for _, existing := range result.TablesCreated {
		if existing.Name == tableName {
			return nil
		}
	}

	result.TablesCreated = append(result.TablesCreated, models.TableStatus{
		Name:      tableName,
		Status:    "ACTIVE",
		CreatedAt: time.Now(),
	})
	return sm.SaveStatus(result)
}

// MarkCompleted records a successful run
func (sm *StatusManager) MarkCompleted(message string) error {
	result, err := sm.LoadStatus()
	if err != nil {
		result = &models.ExecutionResult{TablesCreated: []models.TableStatus{}}
	}

	now := time.Now()
	result.Success = true
	result.Status = models.StatusCompleted
	result.Message = message
	result.EndTime = &now
	result.ErrorMessage = ""
	if !result.StartTime.IsZero() {
		result.Duration = now.Sub(result.StartTime)
	}

	return sm.SaveStatus(result)
}

// MarkFailed records a failed run
func (sm *StatusManager) MarkFailed(err error) error {
	result, loadErr := sm.LoadStatus()
	if loadErr != nil {
		result = &models.ExecutionResult{TablesCreated: []models.TableStatus{}}
	}

	now := time.Now()
	result.Success = false
	result.Status = models.StatusFailed
	result.ErrorMessage = err.Error()
	result.Message = "table provisioning failed"
	result.EndTime = &now
	if !result.StartTime.IsZero() {
		result.Duration = now.Sub(result.StartTime)
	}

	return sm.SaveStatus(result)
}

// IncrementRetryCount bumps the retry counter and returns the new value
func (sm *StatusManager) IncrementRetryCount() (int, error) {
	result, err := sm.LoadStatus()
	if err != nil {
		return 0, err
	}

	result.RetryCount++
	result.Status = models.StatusRetrying

	if err := sm.SaveStatus(result); err != nil {
		return 0, err
	}
	return result.RetryCount, nil
}

// ResetStatus clears the status file so provisioning starts fresh
func (sm *StatusManager) ResetStatus() error {
	if err := os.Remove(sm.StatusFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove status file: %w", err)
	}
	return nil
}
