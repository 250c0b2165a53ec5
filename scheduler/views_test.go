package scheduler

import (
	"safecheck-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// today is Wednesday 2025-06-11; its calendar week runs Sunday 2025-06-08
// through Saturday 2025-06-14.
var today = date(2025, 6, 11)

func entry(id string, freq models.SafetyFrequency, scheduled time.Time, pastDue bool) models.ScheduleEntry {
	return models.ScheduleEntry{
		EquipmentID:   id,
		EquipmentName: "Asset " + id,
		Frequency:     freq,
		ScheduledDate: scheduled,
		IsPastDue:     pastDue,
	}
}

func TestPartitionOverdueView(t *testing.T) {
	eng := testEngine()
	entries := []models.ScheduleEntry{
		entry("late", models.FrequencyMonthly, date(2025, 6, 10), true),
		entry("due", models.FrequencyMonthly, date(2025, 6, 11), false),
	}

	result := eng.Partition(entries, nil, models.ViewOverdue, today)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "late", result.Entries[0].EquipmentID)
}

func TestPartitionThisWeekView(t *testing.T) {
	eng := testEngine()
	entries := []models.ScheduleEntry{
		entry("before", models.FrequencyMonthly, date(2025, 6, 7), true),   // Saturday last week
		entry("sunday", models.FrequencyMonthly, date(2025, 6, 8), true),   // week start
		entry("saturday", models.FrequencyMonthly, date(2025, 6, 14), false), // week end
		entry("next", models.FrequencyMonthly, date(2025, 6, 15), false),   // next Sunday
	}

	result := eng.Partition(entries, nil, models.ViewThisWeek, today)
	ids := entryIDs(result.Entries)
	assert.ElementsMatch(t, []string{"sunday", "saturday"}, ids)
}

func TestPartitionFutureView(t *testing.T) {
	eng := testEngine()
	entries := []models.ScheduleEntry{
		entry("thisweek", models.FrequencyMonthly, date(2025, 6, 13), false),
		entry("nextweek", models.FrequencyMonthly, date(2025, 6, 15), false),
		entry("later", models.FrequencyMonthly, date(2025, 7, 21), false),
	}

	result := eng.Partition(entries, nil, models.ViewFuture, today)
	assert.Equal(t, []string{"nextweek", "later"}, entryIDs(result.Entries))
}

func TestPartitionAllViewPriorityOrder(t *testing.T) {
	eng := testEngine()
	// One overdue monthly dated yesterday, one this-week weekly dated
	// tomorrow, one future monthly dated in 40 days.
	entries := []models.ScheduleEntry{
		entry("future-monthly", models.FrequencyMonthly, date(2025, 7, 21), false),
		entry("week-weekly", models.FrequencyWeekly, date(2025, 6, 12), false),
		entry("overdue-monthly", models.FrequencyMonthly, date(2025, 6, 10), true),
	}

	result := eng.Partition(entries, nil, models.ViewAll, today)
	assert.Equal(t, []string{"overdue-monthly", "week-weekly", "future-monthly"}, entryIDs(result.Entries))
}

func TestPartitionWeeklyGroupsBeforeNonWeeklyOutsideCurrentWeek(t *testing.T) {
	eng := testEngine()
	entries := []models.ScheduleEntry{
		entry("monthly-soon", models.FrequencyMonthly, date(2025, 6, 16), false),
		entry("weekly-later", models.FrequencyWeekly, date(2025, 6, 20), false),
	}

	result := eng.Partition(entries, nil, models.ViewAll, today)
	// Weekly surfaces first even though its date is later
	assert.Equal(t, []string{"weekly-later", "monthly-soon"}, entryIDs(result.Entries))
}

func TestPartitionSortsByDateWithinSameClass(t *testing.T) {
	eng := testEngine()
	entries := []models.ScheduleEntry{
		entry("b", models.FrequencyMonthly, date(2025, 7, 11), false),
		entry("a", models.FrequencyMonthly, date(2025, 6, 18), false),
		entry("c", models.FrequencyQuarterly, date(2025, 9, 11), false),
	}

	result := eng.Partition(entries, nil, models.ViewAll, today)
	assert.Equal(t, []string{"a", "b", "c"}, entryIDs(result.Entries))
}

func TestPartitionCompletedViewNewestFirst(t *testing.T) {
	eng := testEngine()
	performedOld := date(2025, 5, 1)
	performedNew := date(2025, 6, 9)
	checks := []models.CompletedCheck{
		{CheckID: "old", PerformedDate: &performedOld, CreatedAt: date(2025, 5, 1)},
		{CheckID: "new", PerformedDate: &performedNew, CreatedAt: date(2025, 6, 9)},
		{CheckID: "created-only", CreatedAt: date(2025, 6, 2)},
	}

	result := eng.Partition(nil, checks, models.ViewCompleted, today)
	require.Len(t, result.Checks, 3)
	assert.Equal(t, "new", result.Checks[0].CheckID)
	assert.Equal(t, "created-only", result.Checks[1].CheckID)
	assert.Equal(t, "old", result.Checks[2].CheckID)
}

func TestPartitionCompletedViewIsCapped(t *testing.T) {
	eng := testEngine()
	var checks []models.CompletedCheck
	for i := 0; i < CompletedDisplayLimit+20; i++ {
		checks = append(checks, models.CompletedCheck{
			CheckID:   "chk",
			CreatedAt: date(2025, 1, 1).AddDate(0, 0, i),
		})
	}

	result := eng.Partition(nil, checks, models.ViewCompleted, today)
	assert.Len(t, result.Checks, CompletedDisplayLimit)
}

func TestPartitionCompletedViewIgnoresProjectedEntries(t *testing.T) {
	eng := testEngine()
	entries := []models.ScheduleEntry{entry("x", models.FrequencyMonthly, today, false)}

	result := eng.Partition(entries, nil, models.ViewCompleted, today)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.Checks)
}

func TestPartitionDoesNotMutateInput(t *testing.T) {
	eng := testEngine()
	checks := []models.CompletedCheck{
		{CheckID: "a", CreatedAt: date(2025, 6, 1)},
		{CheckID: "b", CreatedAt: date(2025, 6, 5)},
	}

	eng.Partition(nil, checks, models.ViewCompleted, today)
	assert.Equal(t, "a", checks[0].CheckID, "input slice order unchanged")
}

func TestOverdueCount(t *testing.T) {
	eng := testEngine()
	entries := []models.ScheduleEntry{
		entry("late1", models.FrequencyMonthly, date(2025, 6, 9), true),
		entry("late2", models.FrequencyWeekly, date(2025, 6, 6), true),
		entry("ok", models.FrequencyMonthly, date(2025, 6, 12), false),
	}

	assert.Equal(t, 2, eng.OverdueCount(entries, today))
}

func entryIDs(entries []models.ScheduleEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EquipmentID)
	}
	return ids
}
