package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"safecheck-backend/models"
	"safecheck-backend/repository"
	"safecheck-backend/scheduler"
	"safecheck-backend/utils/logger"
)

// ScheduleService assembles schedule views on demand. Nothing it produces
// is persisted: every request re-derives the projection from the current
// equipment catalogue and check history.
type ScheduleService struct {
	equipmentRepo repository.EquipmentRepositoryInterface
	checkRepo     repository.CheckRepositoryInterface
	userRepo      repository.UserRepositoryInterface
	engine        *scheduler.Engine
	logger        logger.Logger

	mu    sync.RWMutex
	names map[string]string
}

func NewScheduleService(
	equipmentRepo repository.EquipmentRepositoryInterface,
	checkRepo repository.CheckRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	log logger.Logger,
) *ScheduleService {
	s := &ScheduleService{
		equipmentRepo: equipmentRepo,
		checkRepo:     checkRepo,
		userRepo:      userRepo,
		logger:        log,
		names:         make(map[string]string),
	}
	s.engine = scheduler.NewEngine(log, s.resolveDisplayName)
	return s
}

// GetScheduleView computes the requested view for the viewer. Storage
// failures degrade to an empty catalogue or history rather than failing the
// request; the only error path is an unrecognized view name.
func (s *ScheduleService) GetScheduleView(ctx context.Context, viewer models.ViewerContext, view models.ScheduleView) (*models.ScheduleViewResult, error) {
	if !view.IsValid() {
		return nil, fmt.Errorf("unknown schedule view: %s", view)
	}

	now := time.Now()
	visible := s.visibleCatalogue(viewer)

	// The completed view is built from check history alone; projection is
	// skipped entirely.
	if view == models.ViewCompleted {
		result := s.engine.Partition(nil, s.completedHistory(visible), view, now)
		return &result, nil
	}

	entries := s.engine.ProjectCatalogue(visible, now, time.Time{})
	entries = s.engine.Classify(entries, now)

	result := s.engine.Partition(entries, nil, view, now)
	return &result, nil
}

// GetOverdueCount returns the number of visible equipment items whose next
// scheduled check is past due for the viewer.
func (s *ScheduleService) GetOverdueCount(ctx context.Context, viewer models.ViewerContext) (int, error) {
	now := time.Now()
	visible := s.visibleCatalogue(viewer)

	entries := s.engine.ProjectCatalogue(visible, now, time.Time{})
	entries = s.engine.Classify(entries, now)

	return s.engine.OverdueCount(entries, now), nil
}

func (s *ScheduleService) visibleCatalogue(viewer models.ViewerContext) []*models.Equipment {
	catalogue, err := s.equipmentRepo.GetEquipmentByFilter(&models.EquipmentFilter{})
	if err != nil {
		s.logger.Errorf("Failed to load equipment catalogue, degrading to empty schedule: %v", err)
		catalogue = nil
	}
	return s.engine.FilterVisible(catalogue, viewer)
}

// completedHistory fetches check records for the equipment the viewer can
// see. History visibility follows equipment visibility.
func (s *ScheduleService) completedHistory(visible []*models.Equipment) []models.CompletedCheck {
	records, err := s.checkRepo.GetChecksByFilter(&models.CheckFilter{})
	if err != nil {
		s.logger.Errorf("Failed to load check history, degrading to empty list: %v", err)
		return nil
	}

	allowed := make(map[string]bool, len(visible))
	for _, eq := range visible {
		allowed[eq.EquipmentID] = true
	}

	var checks []models.CompletedCheck
	for _, record := range records {
		if allowed[record.EquipmentID] {
			checks = append(checks, *record)
		}
	}
	return checks
}

// resolveDisplayName maps a user ID to its display label, falling back to
// the raw ID when the lookup fails. Results are cached for the lifetime of
// the service.
func (s *ScheduleService) resolveDisplayName(userID string) string {
	s.mu.RLock()
	name, ok := s.names[userID]
	s.mu.RUnlock()
	if ok {
		return name
	}

	name = userID
	users, err := s.userRepo.GetUser(userID)
	if err != nil || len(users) == 0 {
		s.logger.Warnf("Could not resolve display name for user %s: %v", userID, err)
	} else {
		name = users[0].DisplayName()
	}

	s.mu.Lock()
	s.names[userID] = name
	s.mu.Unlock()
	return name
}
