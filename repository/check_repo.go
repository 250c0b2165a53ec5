package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"safecheck-backend/dal"
	"safecheck-backend/models"
	"safecheck-backend/utils"
	"safecheck-backend/utils/logger"
)

type CheckRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewCheckRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *CheckRepository {
	return &CheckRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *CheckRepository) CreateCheck(ctx context.Context, check *models.CompletedCheck) (*models.CompletedCheck, error) {
	r.logger.Infof("Recording safety check for equipment: %s", check.EquipmentID)

	now := time.Now()
	check.CheckID = utils.GenerateUUID()
	check.CreatedAt = now
	if check.Status == "" {
		check.Status = models.CheckStatusPerformed
	}

	err := r.db.PutItem(ctx, r.config.DynamoDBTablePrefix+"_safety_checks", check)
	if err != nil {
		r.logger.Errorf("Failed to record safety check: %v", err)
		return nil, err
	}

	r.logger.Infof("Safety check recorded successfully: %s", check.CheckID)
	return check, nil
}

func (r *CheckRepository) GetCheck(id string) (*models.CompletedCheck, error) {
	ctx := context.Background()

	if id == "" {
		return nil, errors.New("check ID is required")
	}

	check := models.CompletedCheck{}
	config := models.QueryConfig{
		TableName: r.config.DynamoDBTablePrefix + "_safety_checks",
		KeyName:   "checkID",
		KeyValue:  id,
		KeyType:   models.StringType,
	}

	err := r.db.GetItem(ctx, config, &check)
	if err != nil {
		r.logger.Errorf("Failed to get safety check: %v", err)
		return nil, fmt.Errorf("failed to get safety check: %w", err)
	}

	if check.CheckID == "" {
		return nil, errors.New("safety check not found")
	}

	return &check, nil
}

func (r *CheckRepository) GetChecksByFilter(filter *models.CheckFilter) ([]*models.CompletedCheck, error) {
	ctx := context.Background()
	r.logger.Infof("Getting safety checks with filter")

	var checks []*models.CompletedCheck
	var err error

	if filter != nil && filter.EquipmentID != "" {
		err = r.db.QueryByIndex(ctx,
			r.config.DynamoDBTablePrefix+"_safety_checks",
			"equipmentID-index",
			"equipmentID", filter.EquipmentID,
			&checks)
	} else if filter != nil && filter.OrgID != "" {
		err = r.db.QueryByIndex(ctx,
			r.config.DynamoDBTablePrefix+"_safety_checks",
			"orgID-index",
			"orgID", filter.OrgID,
			&checks)
	} else if filter != nil && filter.PerformedBy != "" {
		err = r.db.QueryByIndex(ctx,
			r.config.DynamoDBTablePrefix+"_safety_checks",
			"performedBy-index",
			"performedBy", filter.PerformedBy,
			&checks)
	} else {
		// Scan all checks (use with caution in production)
		err = r.db.ScanTable(ctx, r.config.DynamoDBTablePrefix+"_safety_checks", &checks)
	}

	if err != nil {
		r.logger.Errorf("Failed to get safety checks: %v", err)
		return nil, err
	}

	filtered := r.applyAdditionalFilters(checks, filter)

	r.logger.Infof("Found %d safety checks", len(filtered))
	return filtered, nil
}

func (r *CheckRepository) applyAdditionalFilters(checks []*models.CompletedCheck, filter *models.CheckFilter) []*models.CompletedCheck {
	if filter == nil {
		return checks
	}

	var filtered []*models.CompletedCheck
	for _, check := range checks {
		if filter.Status != "" && check.Status != filter.Status {
			continue
		}
		if !filter.FromDate.IsZero() && check.SortDate().Before(filter.FromDate) {
			continue
		}
		if !filter.ToDate.IsZero() && check.SortDate().After(filter.ToDate) {
			continue
		}

		filtered = append(filtered, check)
	}

	return filtered
}
