package services

import (
	"context"
	"errors"
	"time"

	"safecheck-backend/models"
	"safecheck-backend/repository"
	"safecheck-backend/utils/logger"
)

type CheckService struct {
	checkRepo     repository.CheckRepositoryInterface
	equipmentRepo repository.EquipmentRepositoryInterface
	logger        logger.Logger
}

func NewCheckService(checkRepo repository.CheckRepositoryInterface, equipmentRepo repository.EquipmentRepositoryInterface, logger logger.Logger) *CheckService {
	return &CheckService{
		checkRepo:     checkRepo,
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

// SubmitCheck records a performed safety check and stamps the equipment's
// last-check marker. The marker update is best effort: a persisted check
// record is never rolled back because of it.
func (s *CheckService) SubmitCheck(ctx context.Context, req *models.SubmitCheckRequest, performedBy string) (*models.CompletedCheck, error) {
	if err := s.validateSubmitCheck(req); err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.GetEquipment(req.EquipmentID)
	if err != nil {
		return nil, err
	}
	if len(equipment) == 0 {
		return nil, errors.New("equipment not found")
	}

	performedAt := time.Now()
	if req.PerformedDate != nil && !req.PerformedDate.IsZero() {
		performedAt = *req.PerformedDate
	}

	check := &models.CompletedCheck{
		EquipmentID:   req.EquipmentID,
		OrgID:         equipment[0].OrgID,
		PerformedBy:   performedBy,
		PerformedDate: &performedAt,
		Status:        req.Status,
		Issues:        req.Issues,
		Notes:         req.Notes,
		CheckData:     req.CheckData,
	}
	if check.CheckData == nil {
		check.CheckData = []models.CheckItem{}
	}

	created, err := s.checkRepo.CreateCheck(ctx, check)
	if err != nil {
		return nil, err
	}

	if err := s.equipmentRepo.TouchLastSafetyCheck(ctx, req.EquipmentID, performedAt); err != nil {
		s.logger.Warnf("Check %s recorded but last-check marker update failed: %v", created.CheckID, err)
	}

	return created, nil
}

func (s *CheckService) validateSubmitCheck(req *models.SubmitCheckRequest) error {
	if req == nil {
		return errors.New("check request is required")
	}

	if req.EquipmentID == "" {
		return errors.New("equipment ID is required")
	}

	if req.Status == "" {
		return errors.New("check status is required")
	}

	return nil
}

func (s *CheckService) GetCheckHistory(filter *models.CheckFilter) ([]*models.CompletedCheck, error) {
	if filter == nil {
		filter = &models.CheckFilter{}
	}
	return s.checkRepo.GetChecksByFilter(filter)
}
