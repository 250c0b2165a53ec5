package models

import (
	"context"
	"safecheck-backend/utils/logger"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/robfig/cron"
)

// DBClient is the slice of the database client the provisioning worker
// needs. Declared here to avoid a circular dependency on the dal package.
type DBClient interface {
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error
	DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error)
}

// LockManager handles file-based locking so that only one instance runs the
// table provisioning job per environment.
type LockManager struct {
	LockFilePath string
	LockTimeout  time.Duration
	Environment  string
}

// StatusManager persists provisioning status between runs.
type StatusManager struct {
	StatusFilePath string
}

// Worker manages the table provisioning cron job.
type Worker struct {
	Config        *Config
	Logger        logger.Logger
	CronJob       *cron.Cron
	LockManager   *LockManager
	StatusManager *StatusManager
	DBClient      DBClient

	WorkerConfig *WorkerConfig
	OwnerID      string
	IsRunning    bool
	StopChan     chan struct{}

	Mu       sync.RWMutex
	Ctx      context.Context
	Cancel   context.CancelFunc
	StopOnce sync.Once
}

// WorkerConfig holds configuration for the provisioning worker
type WorkerConfig struct {
	CronSchedule string `json:"cron_schedule"`

	LockTimeout time.Duration `json:"lock_timeout"`

	MaxRetries int           `json:"max_retries"`
	RetryDelay time.Duration `json:"retry_delay"`

	Environment    string   `json:"environment"`
	RequiredTables []string `json:"required_tables"`

	LockFilePath   string `json:"lock_file_path"`
	StatusFilePath string `json:"status_file_path"`

	RunOnce bool `json:"run_once"`
}

// LockInfo represents the on-disk lock contents
type LockInfo struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}

// WorkerStatus represents the current status of the provisioning worker
type WorkerStatus string

const (
	StatusIdle           WorkerStatus = "idle"
	StatusRunning        WorkerStatus = "running"
	StatusCreatingTables WorkerStatus = "creating_tables"
	StatusCompleted      WorkerStatus = "completed"
	StatusFailed         WorkerStatus = "failed"
	StatusRetrying       WorkerStatus = "retrying"
)

// TableStatus records the provisioning outcome of one table.
type TableStatus struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"` // CREATING, ACTIVE, FAILED
	CreatedAt time.Time `json:"created_at"`
}

// ExecutionResult holds the result of a provisioning run
type ExecutionResult struct {
	Success       bool                   `json:"success"`
	Status        WorkerStatus           `json:"status"`
	Message       string                 `json:"message,omitempty"`
	StartTime     time.Time              `json:"start_time"`
	EndTime       *time.Time             `json:"end_time,omitempty"`
	Duration      time.Duration          `json:"duration"`
	TablesCreated []TableStatus          `json:"tables_created"`
	ErrorMessage  string                 `json:"error_message,omitempty"`
	RetryCount    int                    `json:"retry_count"`
	Environment   string                 `json:"environment"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}
