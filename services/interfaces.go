package services

import (
	"context"

	"safecheck-backend/models"
)

// ScheduleServiceInterface defines the contract for the scheduling service
type ScheduleServiceInterface interface {
	GetScheduleView(ctx context.Context, viewer models.ViewerContext, view models.ScheduleView) (*models.ScheduleViewResult, error)
	GetOverdueCount(ctx context.Context, viewer models.ViewerContext) (int, error)
}

// EquipmentServiceInterface defines the contract for equipment service
type EquipmentServiceInterface interface {
	CreateEquipment(ctx context.Context, req *models.CreateEquipmentRequest, createdBy string) (*models.Equipment, error)
	GetEquipment(filter *models.EquipmentFilter) ([]*models.Equipment, error)
	GetEquipmentByID(id string) (*models.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, req *models.UpdateEquipmentRequest, updatedBy string) (*models.Equipment, error)
	DeleteEquipment(id string) error
}

// CheckServiceInterface defines the contract for safety-check service
type CheckServiceInterface interface {
	SubmitCheck(ctx context.Context, req *models.SubmitCheckRequest, performedBy string) (*models.CompletedCheck, error)
	GetCheckHistory(filter *models.CheckFilter) ([]*models.CompletedCheck, error)
}

// UserServiceInterface defines the contract for user service
type UserServiceInterface interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
}

// ServiceContainerInterface defines the main service container contract
type ServiceContainerInterface interface {
	GetScheduleService() ScheduleServiceInterface
	GetEquipmentService() EquipmentServiceInterface
	GetCheckService() CheckServiceInterface
	GetUserService() UserServiceInterface
}
