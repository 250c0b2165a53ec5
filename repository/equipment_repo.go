package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"safecheck-backend/dal"
	"safecheck-backend/models"
	"safecheck-backend/utils"
	"safecheck-backend/utils/logger"
)

type EquipmentRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewEquipmentRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *EquipmentRepository {
	return &EquipmentRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error) {
	r.logger.Infof("Creating equipment: %s", equipment.Name)

	now := time.Now()
	equipment.EquipmentID = utils.GenerateUUID()
	equipment.CreatedAt = now
	equipment.UpdatedAt = now

	err := r.db.PutItem(ctx, r.config.DynamoDBTablePrefix+"_equipment", equipment)
	if err != nil {
		r.logger.Errorf("Failed to create equipment: %v", err)
		return nil, err
	}

	r.logger.Infof("Equipment created successfully: %s", equipment.EquipmentID)
	return equipment, nil
}

func (r *EquipmentRepository) GetEquipment(key string) ([]*models.Equipment, error) {
	ctx := context.Background()

	if key == "" {
		return nil, errors.New("equipment key is required")
	}

	equipment := models.Equipment{}
	keyType, indexName, keyName := r.determineKeyType(key)

	var config models.QueryConfig

	if keyType == "id" {
		config = models.QueryConfig{
			TableName: r.config.DynamoDBTablePrefix + "_equipment",
			KeyName:   "equipmentID",
			KeyValue:  key,
			KeyType:   models.StringType,
		}
	} else {
		config = models.QueryConfig{
			TableName: r.config.DynamoDBTablePrefix + "_equipment",
			IndexName: indexName,
			KeyName:   keyName,
			KeyValue:  key,
			KeyType:   models.StringType,
		}
	}

	r.logger.Infof("Querying %s table with %s: %s", r.config.DynamoDBTablePrefix, keyName, key)

	err := r.db.GetItem(ctx, config, &equipment)
	if err != nil {
		r.logger.Errorf("Failed to get equipment by %s: %v", keyName, err)
		return nil, fmt.Errorf("failed to get equipment by %s: %w", keyName, err)
	}

	if equipment.EquipmentID == "" {
		return nil, errors.New("equipment not found")
	}

	return []*models.Equipment{&equipment}, nil
}

func (r *EquipmentRepository) GetEquipmentByFilter(filter *models.EquipmentFilter) ([]*models.Equipment, error) {
	ctx := context.Background()
	r.logger.Infof("Getting equipment with filter")

	var equipment []*models.Equipment
	var err error

	if filter != nil && filter.OrgID != "" {
		err = r.db.QueryByIndex(ctx,
			r.config.DynamoDBTablePrefix+"_equipment",
			"orgID-index",
			"orgID", filter.OrgID,
			&equipment)
	} else {
		// Scan the full catalogue (use with caution in production)
		err = r.db.ScanTable(ctx, r.config.DynamoDBTablePrefix+"_equipment", &equipment)
	}

	if err != nil {
		r.logger.Errorf("Failed to get equipment: %v", err)
		return nil, err
	}

	filtered := r.applyAdditionalFilters(equipment, filter)

	r.logger.Infof("Found %d equipment items", len(filtered))
	return filtered, nil
}

func (r *EquipmentRepository) UpdateEquipment(id string, equipment *models.Equipment) (*models.Equipment, error) {
	ctx := context.Background()
	r.logger.Infof("Updating equipment: %s", id)

	if id == "" {
		return nil, errors.New("equipment ID is required")
	}

	existing, err := r.GetEquipment(id)
	if err != nil {
		return nil, fmt.Errorf("equipment not found: %w", err)
	}
	if len(existing) == 0 {
		return nil, errors.New("equipment not found")
	}

	equipment.EquipmentID = id
	equipment.CreatedAt = existing[0].CreatedAt
	equipment.CreatedBy = existing[0].CreatedBy
	if equipment.LastSafetyCheck == nil {
		equipment.LastSafetyCheck = existing[0].LastSafetyCheck
	}
	equipment.UpdatedAt = time.Now()

	err = r.db.PutItem(ctx, r.config.DynamoDBTablePrefix+"_equipment", equipment)
	if err != nil {
		r.logger.Errorf("Failed to update equipment: %v", err)
		return nil, err
	}

	r.logger.Infof("Equipment updated successfully: %s", id)
	return equipment, nil
}

func (r *EquipmentRepository) DeleteEquipment(id string) error {
	ctx := context.Background()
	r.logger.Infof("Deleting equipment: %s", id)

	if id == "" {
		return errors.New("equipment ID is required")
	}

	err := r.db.DeleteItem(ctx, r.config.DynamoDBTablePrefix+"_equipment", "equipmentID", id)
	if err != nil {
		r.logger.Errorf("Failed to delete equipment: %v", err)
		return err
	}

	r.logger.Infof("Equipment deleted successfully: %s", id)
	return nil
}

// TouchLastSafetyCheck records the latest performed check without rewriting
// the whole item.
func (r *EquipmentRepository) TouchLastSafetyCheck(ctx context.Context, equipmentID string, performedAt time.Time) error {
	if equipmentID == "" {
		return errors.New("equipment ID is required")
	}

	updates := map[string]interface{}{
		"lastSafetyCheck": performedAt.Format(time.RFC3339),
		"updatedAt":       time.Now().Format(time.RFC3339),
	}

	err := r.db.UpdateItem(ctx, r.config.DynamoDBTablePrefix+"_equipment", "equipmentID", equipmentID, updates)
	if err != nil {
		r.logger.Errorf("Failed to update last safety check for %s: %v", equipmentID, err)
		return err
	}

	return nil
}

func (r *EquipmentRepository) determineKeyType(key string) (keyType, indexName, keyName string) {
	uuidPattern := `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
	isUUID, _ := regexp.MatchString(uuidPattern, strings.ToLower(key))

	if isUUID {
		return "id", "", "equipmentID"
	}
	// Assume it's an organization ID
	return "orgID", "orgID-index", "orgID"
}

func (r *EquipmentRepository) applyAdditionalFilters(equipment []*models.Equipment, filter *models.EquipmentFilter) []*models.Equipment {
	if filter == nil {
		return equipment
	}

	var filtered []*models.Equipment
	for _, item := range equipment {
		if filter.SafetyFrequency != "" && item.SafetyFrequency != filter.SafetyFrequency {
			continue
		}
		if filter.Manufacturer != "" && !strings.EqualFold(item.Manufacturer, filter.Manufacturer) {
			continue
		}
		if filter.CreatedBy != "" && item.CreatedBy != filter.CreatedBy {
			continue
		}

		filtered = append(filtered, item)
	}

	return filtered
}
