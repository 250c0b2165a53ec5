package repository

import (
	"context"
	"safecheck-backend/models"
	"time"
)

// EquipmentRepositoryInterface defines the contract for equipment repository operations
type EquipmentRepositoryInterface interface {
	CreateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error)
	GetEquipment(key string) ([]*models.Equipment, error)
	GetEquipmentByFilter(filter *models.EquipmentFilter) ([]*models.Equipment, error)
	UpdateEquipment(id string, equipment *models.Equipment) (*models.Equipment, error)
	DeleteEquipment(id string) error
	TouchLastSafetyCheck(ctx context.Context, equipmentID string, performedAt time.Time) error
}

// CheckRepositoryInterface defines the contract for completed-check repository operations
type CheckRepositoryInterface interface {
	CreateCheck(ctx context.Context, check *models.CompletedCheck) (*models.CompletedCheck, error)
	GetCheck(id string) (*models.CompletedCheck, error)
	GetChecksByFilter(filter *models.CheckFilter) ([]*models.CompletedCheck, error)
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(key string) ([]*models.User, error)
	UpdateUser(id string, user *models.User) (*models.User, error)
}
