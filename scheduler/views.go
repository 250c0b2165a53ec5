package scheduler

import (
	"safecheck-backend/models"
	"sort"
	"time"
)

// CompletedDisplayLimit caps how many recent completed checks the completed
// view returns. A display bound, not a correctness limit.
const CompletedDisplayLimit = 50

// Partition splits the classified schedule into the requested view and
// applies the priority ordering. The completed view is built from the
// supplied check history and is independent of the projected entries.
func (e *Engine) Partition(entries []models.ScheduleEntry, checks []models.CompletedCheck, view models.ScheduleView, today time.Time) models.ScheduleViewResult {
	if view == models.ViewCompleted {
		return models.ScheduleViewResult{
			View:   view,
			Checks: sortCompleted(checks),
		}
	}

	weekStart := StartOfWeek(today)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var selected []models.ScheduleEntry
	for _, entry := range entries {
		switch view {
		case models.ViewOverdue:
			if entry.IsPastDue {
				selected = append(selected, entry)
			}
		case models.ViewThisWeek:
			if inWindow(entry.ScheduledDate, weekStart, weekEnd) {
				selected = append(selected, entry)
			}
		case models.ViewFuture:
			if !entry.ScheduledDate.Before(weekEnd) {
				selected = append(selected, entry)
			}
		default: // models.ViewAll
			selected = append(selected, entry)
		}
	}

	sortEntries(selected, weekStart, weekEnd)

	return models.ScheduleViewResult{
		View:    view,
		Entries: selected,
	}
}

// OverdueCount returns the size of the overdue view for the classified
// entries.
func (e *Engine) OverdueCount(entries []models.ScheduleEntry, today time.Time) int {
	return len(e.Partition(entries, nil, models.ViewOverdue, today).Entries)
}

// sortEntries applies the priority ordering shared by the overdue,
// this-week, future and all views. Ties fall through to the next rule:
//
//  1. past-due entries before everything else
//  2. among entries inside the current calendar week, weekly checks first
//  3. weekly checks before non-weekly generally
//  4. ascending scheduled date
//
// Overdue work must surface first regardless of view; weekly checks are a
// recurring batch ritual worth grouping even before they are due.
func sortEntries(entries []models.ScheduleEntry, weekStart, weekEnd time.Time) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.IsPastDue != b.IsPastDue {
			return a.IsPastDue
		}

		aWeekly := a.Frequency == models.FrequencyWeekly
		bWeekly := b.Frequency == models.FrequencyWeekly

		if inWindow(a.ScheduledDate, weekStart, weekEnd) && inWindow(b.ScheduledDate, weekStart, weekEnd) {
			if aWeekly != bWeekly {
				return aWeekly
			}
		}

		if aWeekly != bWeekly {
			return aWeekly
		}

		return a.ScheduledDate.Before(b.ScheduledDate)
	})
}

// sortCompleted orders completed checks newest-first by performed date,
// falling back to creation time, capped to the display limit.
func sortCompleted(checks []models.CompletedCheck) []models.CompletedCheck {
	sorted := make([]models.CompletedCheck, len(checks))
	copy(sorted, checks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortDate().After(sorted[j].SortDate())
	})

	if len(sorted) > CompletedDisplayLimit {
		sorted = sorted[:CompletedDisplayLimit]
	}
	return sorted
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
