package worker

import (
	"errors"
	"path/filepath"
	"testing"

	"safecheck-backend/models"

	"github.com/stretchr/testify/assert"
)

func newTestStatusManager(t *testing.T) *StatusManager {
	statusPath := filepath.Join(t.TempDir(), "status.json")
	return &StatusManager{StatusManager: *NewStatusManager(statusPath)}
}

func TestLoadStatusDefaultsToIdle(t *testing.T) {
	sm := newTestStatusManager(t)

	result, err := sm.LoadStatus()
	assert.NoError(t, err)
	assert.Equal(t, models.StatusIdle, result.Status)
	assert.Empty(t, result.TablesCreated)
	assert.False(t, sm.IsSetupCompleted())
}

func TestUpdateProgressPersistsStatus(t *testing.T) {
	sm := newTestStatusManager(t)

	err := sm.UpdateProgress(models.StatusCreatingTables, "creating missing tables")
	assert.NoError(t, err)

	result, err := sm.LoadStatus()
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCreatingTables, result.Status)
	assert.Equal(t, "creating missing tables", result.Message)
	assert.False(t, result.StartTime.IsZero())
}

func TestAddTableCreatedDeduplicates(t *testing.T) {
	sm := newTestStatusManager(t)

	assert.NoError(t, sm.AddTableCreated("safecheck_equipment"))
	assert.NoError(t, sm.AddTableCreated("safecheck_users"))
	assert.NoError(t, sm.AddTableCreated("safecheck_equipment"))

	result, err := sm.LoadStatus()
	assert.NoError(t, err)
	assert.Len(t, result.TablesCreated, 2)
	assert.Equal(t, "safecheck_equipment", result.TablesCreated[0].Name)
	assert.Equal(t, "ACTIVE", result.TablesCreated[0].Status)
}

func TestMarkCompleted(t *testing.T) {
	sm := newTestStatusManager(t)

	assert.NoError(t, sm.UpdateProgress(models.StatusRunning, "provisioning started"))
	assert.NoError(t, sm.MarkCompleted("all tables available"))

	result, err := sm.LoadStatus()
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.StatusCompleted, result.Status)
	assert.NotNil(t, result.EndTime)
	assert.Empty(t, result.ErrorMessage)
	assert.True(t, sm.IsSetupCompleted())
}

func TestMarkFailed(t *testing.T) {
	sm := newTestStatusManager(t)

	assert.NoError(t, sm.UpdateProgress(models.StatusRunning, "provisioning started"))
	assert.NoError(t, sm.MarkFailed(errors.New("describe table timed out")))

	result, err := sm.LoadStatus()
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Equal(t, "describe table timed out", result.ErrorMessage)
	assert.False(t, sm.IsSetupCompleted())
}

func TestIncrementRetryCount(t *testing.T) {
	sm := newTestStatusManager(t)

	count, err := sm.IncrementRetryCount()
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = sm.IncrementRetryCount()
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	result, err := sm.LoadStatus()
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRetrying, result.Status)
}

func TestResetStatus(t *testing.T) {
	sm := newTestStatusManager(t)

	assert.NoError(t, sm.MarkCompleted("all tables available"))
	assert.NoError(t, sm.ResetStatus())

	result, err := sm.LoadStatus()
	assert.NoError(t, err)
	assert.Equal(t, models.StatusIdle, result.Status)

	// Resetting with no status file is fine
	assert.NoError(t, sm.ResetStatus())
}
