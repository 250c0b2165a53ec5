package scheduler

import (
	"safecheck-backend/models"
	"safecheck-backend/utils/logger"
	"time"
)

// NameResolver turns a user identifier into a display label. Lookup
// failures must resolve to a placeholder, never an error.
type NameResolver func(userID string) string

// Engine projects safety-check schedules from equipment state. It holds no
// mutable state of its own: every invocation computes a fresh projection
// from the inputs, so a single Engine is safe for concurrent use.
type Engine struct {
	log     logger.Logger
	resolve NameResolver
}

// NewEngine creates a scheduling engine. resolve may be nil, in which case
// raw user IDs are used as display labels.
func NewEngine(log logger.Logger, resolve NameResolver) *Engine {
	if resolve == nil {
		resolve = func(userID string) string { return userID }
	}
	return &Engine{
		log:     log,
		resolve: resolve,
	}
}

// Project produces the ordered occurrence list for one equipment item
// inside [windowStart, windowEnd). A zero windowEnd defaults to one year
// past windowStart. At most the first occurrence plus MaxFutureOccurrences
// entries are generated.
//
// Non-weekly frequencies always seed the first occurrence at windowStart,
// regardless of LastSafetyCheck; downstream consumers are not wired to
// reconcile projected occurrences against recent completions.
func (e *Engine) Project(eq *models.Equipment, windowStart, windowEnd time.Time) []models.ScheduleEntry {
	if eq == nil || !eq.HasSchedule() {
		return nil
	}

	freq := eq.SafetyFrequency
	if !freq.IsKnown() && e.log != nil {
		e.log.Warnf("equipment %s has unrecognized safety frequency %q, treating as monthly", eq.EquipmentID, freq)
	}

	start := StartOfDay(windowStart)
	if windowEnd.IsZero() {
		windowEnd = start.AddDate(1, 0, 0)
	}

	first := start
	if freq == models.FrequencyWeekly {
		first = NextAnchorWeekday(start)
	}

	officers := e.officerDisplay(eq)
	manager := ""
	if eq.SafetyManagerID != "" {
		manager = e.resolve(eq.SafetyManagerID)
	}

	var entries []models.ScheduleEntry
	for date := first; date.Before(windowEnd) && len(entries) <= MaxFutureOccurrences; date = NextOccurrence(freq, date) {
		entries = append(entries, models.ScheduleEntry{
			EquipmentID:          eq.EquipmentID,
			EquipmentName:        eq.Name,
			Manufacturer:         eq.Manufacturer,
			ScheduledDate:        date,
			Frequency:            freq,
			Instructions:         eq.SafetyInstructions,
			AuthorizedOfficers:   officers,
			SafetyManagerDisplay: manager,
			TrainingVideo:        eq.TrainingVideo,
		})
	}

	return entries
}

// ProjectCatalogue projects every equipment item in the catalogue and
// concatenates the results. Items without a frequency contribute nothing.
func (e *Engine) ProjectCatalogue(catalogue []*models.Equipment, windowStart, windowEnd time.Time) []models.ScheduleEntry {
	var all []models.ScheduleEntry
	for _, eq := range catalogue {
		all = append(all, e.Project(eq, windowStart, windowEnd)...)
	}
	return all
}

// Classify marks each entry past-due when its scheduled date falls strictly
// before the start of today. A pure annotation pass: entry order is never
// affected.
func (e *Engine) Classify(entries []models.ScheduleEntry, today time.Time) []models.ScheduleEntry {
	cutoff := StartOfDay(today)
	for i := range entries {
		entries[i].IsPastDue = entries[i].ScheduledDate.Before(cutoff)
	}
	return entries
}

func (e *Engine) officerDisplay(eq *models.Equipment) []string {
	ids := e.NormalizeOfficers(eq.AuthorizedOfficers)
	if len(ids) == 0 {
		return nil
	}
	display := make([]string, 0, len(ids))
	for _, id := range ids {
		display = append(display, e.resolve(id))
	}
	return display
}
