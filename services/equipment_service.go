package services

import (
	"context"
	"errors"
	"strings"

	"safecheck-backend/models"
	"safecheck-backend/repository"
	"safecheck-backend/utils/logger"
)

type EquipmentService struct {
	equipmentRepo repository.EquipmentRepositoryInterface
	logger        logger.Logger
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepositoryInterface, logger logger.Logger) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, req *models.CreateEquipmentRequest, createdBy string) (*models.Equipment, error) {
	if err := s.validateCreateEquipment(req); err != nil {
		return nil, err
	}

	equipment := &models.Equipment{
		OrgID:              req.OrgID,
		Name:               req.Name,
		Manufacturer:       req.Manufacturer,
		Model:              req.Model,
		SafetyFrequency:    req.SafetyFrequency,
		SafetyInstructions: req.SafetyInstructions,
		SafetyManagerID:    req.SafetyManagerID,
		TrainingVideo:      req.TrainingVideo,
		CreatedBy:          createdBy,
	}

	if equipment.SafetyInstructions == nil {
		equipment.SafetyInstructions = []string{}
	}
	if req.AuthorizedOfficers != nil {
		// New records always persist officers as a native string list.
		equipment.AuthorizedOfficers = req.AuthorizedOfficers
	}

	return s.equipmentRepo.CreateEquipment(ctx, equipment)
}

func (s *EquipmentService) validateCreateEquipment(req *models.CreateEquipmentRequest) error {
	if req == nil {
		return errors.New("equipment request is required")
	}

	if strings.TrimSpace(req.Name) == "" {
		return errors.New("equipment name is required")
	}

	if len(req.Name) < 2 || len(req.Name) > 200 {
		return errors.New("equipment name must be between 2 and 200 characters")
	}

	if strings.TrimSpace(req.OrgID) == "" {
		return errors.New("organization ID is required")
	}

	if req.SafetyFrequency != "" && !req.SafetyFrequency.IsKnown() {
		return errors.New("unrecognized safety frequency")
	}

	return nil
}

func (s *EquipmentService) GetEquipment(filter *models.EquipmentFilter) ([]*models.Equipment, error) {
	if filter == nil {
		filter = &models.EquipmentFilter{}
	}
	return s.equipmentRepo.GetEquipmentByFilter(filter)
}

func (s *EquipmentService) GetEquipmentByID(id string) (*models.Equipment, error) {
	items, err := s.equipmentRepo.GetEquipment(id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("equipment not found")
	}
	return items[0], nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, req *models.UpdateEquipmentRequest, updatedBy string) (*models.Equipment, error) {
	if err := s.validateUpdateEquipment(req); err != nil {
		return nil, err
	}

	existing, err := s.GetEquipmentByID(id)
	if err != nil {
		return nil, err
	}

	updated := *existing

	if req.Name != "" {
		updated.Name = req.Name
	}
	if req.Manufacturer != "" {
		updated.Manufacturer = req.Manufacturer
	}
	if req.Model != "" {
		updated.Model = req.Model
	}
	if req.SafetyFrequency != "" {
		updated.SafetyFrequency = req.SafetyFrequency
	}
	if req.SafetyInstructions != nil {
		updated.SafetyInstructions = req.SafetyInstructions
	}
	if req.AuthorizedOfficers != nil {
		updated.AuthorizedOfficers = req.AuthorizedOfficers
	}
	if req.SafetyManagerID != "" {
		updated.SafetyManagerID = req.SafetyManagerID
	}
	if req.TrainingVideo != nil {
		updated.TrainingVideo = req.TrainingVideo
	}
	updated.UpdatedBy = updatedBy

	return s.equipmentRepo.UpdateEquipment(id, &updated)
}

func (s *EquipmentService) validateUpdateEquipment(req *models.UpdateEquipmentRequest) error {
	if req == nil {
		return errors.New("update request is required")
	}

	if req.Name != "" && (len(req.Name) < 2 || len(req.Name) > 200) {
		return errors.New("equipment name must be between 2 and 200 characters")
	}

	if req.SafetyFrequency != "" && !req.SafetyFrequency.IsKnown() {
		return errors.New("unrecognized safety frequency")
	}

	return nil
}

func (s *EquipmentService) DeleteEquipment(id string) error {
	return s.equipmentRepo.DeleteEquipment(id)
}
