package scheduler

import (
	"safecheck-backend/models"
	"time"
)

// WeeklyAnchorDay is the fixed weekday all weekly checks are pinned to.
// Weekly checks are a standing operational ritual run on one day of the
// business week so that an inspector can batch them in a single site visit.
const WeeklyAnchorDay = time.Friday

// MaxFutureOccurrences bounds how many follow-on occurrences are projected
// after the first one.
const MaxFutureOccurrences = 12

// NextOccurrence computes the next check date after from for the given
// frequency. Total over its domain: an unrecognized frequency falls back to
// monthly (callers log the data-quality signal, this function never fails).
func NextOccurrence(freq models.SafetyFrequency, from time.Time) time.Time {
	switch freq {
	case models.FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return addMonthsClamped(from, 1)
	case models.FrequencyQuarterly:
		return addMonthsClamped(from, 3)
	case models.FrequencyBiannually:
		return addMonthsClamped(from, 6)
	case models.FrequencyAnnually:
		return addMonthsClamped(from, 12)
	default:
		return addMonthsClamped(from, 1)
	}
}

// addMonthsClamped adds calendar months keeping the day-of-month, clamping
// to the last day when the target month is shorter (Mar 31 + 1 month is
// Apr 30, not May 1 as time.AddDate would give).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + months
	year += total / 12
	month = time.Month(total%12 + 1)

	if last := daysInMonth(year, month); day > last {
		day = last
	}

	h, m, s := t.Clock()
	return time.Date(year, month, day, h, m, s, t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextAnchorWeekday returns the first occurrence of the anchor weekday on
// or after t. If t already falls on the anchor weekday it counts, no skip.
func NextAnchorWeekday(t time.Time) time.Time {
	offset := (int(WeeklyAnchorDay) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Sunday beginning the calendar week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
