package services

import (
	"context"

	"safecheck-backend/dal"
	"safecheck-backend/models"
	"safecheck-backend/repository"
	"safecheck-backend/utils/logger"
)

// Service implements ServiceContainerInterface
type Service struct {
	scheduleService  ScheduleServiceInterface
	equipmentService EquipmentServiceInterface
	checkService     CheckServiceInterface
	userService      UserServiceInterface
}

// NewService creates a new service container with all dependencies injected
func NewService(
	ctx context.Context,
	db dal.DatabaseClientInterface,
	logger logger.Logger,
	config *models.Config,
) ServiceContainerInterface {
	equipmentRepo := repository.NewEquipmentRepository(db, config, logger)
	checkRepo := repository.NewCheckRepository(db, config, logger)
	userRepo := repository.NewUserRepository(db, config, logger)

	return &Service{
		scheduleService:  NewScheduleService(equipmentRepo, checkRepo, userRepo, logger),
		equipmentService: NewEquipmentService(equipmentRepo, logger),
		checkService:     NewCheckService(checkRepo, equipmentRepo, logger),
		userService:      NewUserService(ctx, userRepo),
	}
}

// GetScheduleService returns the schedule service interface
func (s *Service) GetScheduleService() ScheduleServiceInterface {
	return s.scheduleService
}

// GetEquipmentService returns the equipment service interface
func (s *Service) GetEquipmentService() EquipmentServiceInterface {
	return s.equipmentService
}

// GetCheckService returns the check service interface
func (s *Service) GetCheckService() CheckServiceInterface {
	return s.checkService
}

// GetUserService returns the user service interface
func (s *Service) GetUserService() UserServiceInterface {
	return s.userService
}
