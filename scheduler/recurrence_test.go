package scheduler

import (
	"safecheck-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrenceDaily(t *testing.T) {
	next := NextOccurrence(models.FrequencyDaily, date(2025, 6, 11))
	assert.Equal(t, date(2025, 6, 12), next)
}

func TestNextOccurrenceWeekly(t *testing.T) {
	next := NextOccurrence(models.FrequencyWeekly, date(2025, 6, 13))
	assert.Equal(t, date(2025, 6, 20), next)
}

func TestNextOccurrenceMonthly(t *testing.T) {
	next := NextOccurrence(models.FrequencyMonthly, date(2025, 6, 11))
	assert.Equal(t, date(2025, 7, 11), next)
}

func TestNextOccurrenceMonthlyClampsToShorterMonth(t *testing.T) {
	// March 31 + 1 calendar month is April 30, not May 1
	next := NextOccurrence(models.FrequencyMonthly, date(2025, 3, 31))
	assert.Equal(t, date(2025, 4, 30), next)

	// January 31 clamps to the end of February
	assert.Equal(t, date(2025, 2, 28), NextOccurrence(models.FrequencyMonthly, date(2025, 1, 31)))
	assert.Equal(t, date(2024, 2, 29), NextOccurrence(models.FrequencyMonthly, date(2024, 1, 31)))
}

func TestNextOccurrenceQuarterly(t *testing.T) {
	assert.Equal(t, date(2025, 9, 11), NextOccurrence(models.FrequencyQuarterly, date(2025, 6, 11)))

	// November 30 + 3 months crosses the year boundary
	assert.Equal(t, date(2026, 2, 28), NextOccurrence(models.FrequencyQuarterly, date(2025, 11, 30)))
}

func TestNextOccurrenceBiannually(t *testing.T) {
	assert.Equal(t, date(2025, 12, 11), NextOccurrence(models.FrequencyBiannually, date(2025, 6, 11)))
	assert.Equal(t, date(2026, 2, 28), NextOccurrence(models.FrequencyBiannually, date(2025, 8, 31)))
}

func TestNextOccurrenceAnnually(t *testing.T) {
	assert.Equal(t, date(2026, 6, 11), NextOccurrence(models.FrequencyAnnually, date(2025, 6, 11)))

	// Feb 29 clamps to Feb 28 in a non-leap year
	assert.Equal(t, date(2025, 2, 28), NextOccurrence(models.FrequencyAnnually, date(2024, 2, 29)))
}

func TestNextOccurrenceUnrecognizedFallsBackToMonthly(t *testing.T) {
	next := NextOccurrence(models.SafetyFrequency("fortnightly"), date(2025, 6, 11))
	assert.Equal(t, date(2025, 7, 11), next)
}

func TestNextAnchorWeekday(t *testing.T) {
	// 2025-06-11 is a Wednesday; the anchor Friday is two days out
	assert.Equal(t, date(2025, 6, 13), NextAnchorWeekday(date(2025, 6, 11)))

	// The anchor day itself counts, no skip
	assert.Equal(t, date(2025, 6, 13), NextAnchorWeekday(date(2025, 6, 13)))

	// A Saturday rolls forward to the following Friday
	assert.Equal(t, date(2025, 6, 20), NextAnchorWeekday(date(2025, 6, 14)))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 6, 11, 17, 42, 9, 120, time.UTC)
	assert.Equal(t, date(2025, 6, 11), StartOfDay(ts))
}

func TestStartOfWeekIsSunday(t *testing.T) {
	// Week containing Wednesday 2025-06-11 starts Sunday 2025-06-08
	assert.Equal(t, date(2025, 6, 8), StartOfWeek(date(2025, 6, 11)))

	// A Sunday is its own week start
	assert.Equal(t, date(2025, 6, 8), StartOfWeek(date(2025, 6, 8)))

	// A Saturday belongs to the week that began six days earlier
	assert.Equal(t, date(2025, 6, 8), StartOfWeek(date(2025, 6, 14)))
}
