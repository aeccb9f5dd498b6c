package booking

import (
	"context"
	"sort"
	"time"

	"stayhub/models"
)

// NormalizeDay truncates a timestamp to whole-day granularity in UTC.
// All boundary comparisons in the availability calculator are exact-day.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BlockedWindows computes the blocked date ranges from a reservation set:
// exactly the normalized [startDate, endDate] pairs of reservations in an
// occupying state, ordered by start date.
func BlockedWindows(reservations []models.Reservation) []models.AvailabilityWindow {
	var windows []models.AvailabilityWindow
	for _, res := range reservations {
		if !res.State.Occupying() {
			continue
		}
		windows = append(windows, models.AvailabilityWindow{
			StartDate: NormalizeDay(res.StartDate),
			EndDate:   NormalizeDay(res.EndDate),
		})
	}
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].StartDate.Before(windows[j].StartDate)
	})
	return windows
}

// IsDateBlocked reports whether date falls within any window, inclusive on
// both ends. Time-of-day noise in the input is discarded.
func IsDateBlocked(date time.Time, windows []models.AvailabilityWindow) bool {
	day := NormalizeDay(date)
	for _, w := range windows {
		if !day.Before(w.StartDate) && !day.After(w.EndDate) {
			return true
		}
	}
	return false
}

// Overlaps reports whether the candidate range [start, end] intersects any
// blocked window under inclusive-bound semantics. A window ending on day D
// conflicts with a candidate starting on day D: no same-day turnover.
func Overlaps(start, end time.Time, windows []models.AvailabilityWindow) bool {
	s, e := NormalizeDay(start), NormalizeDay(end)
	for _, w := range windows {
		if !s.After(w.EndDate) && !e.Before(w.StartDate) {
			return true
		}
	}
	return false
}

// BlockedRanges returns the blocked windows for a location, recomputed on
// demand from its occupying reservations.
func (s *DefaultBookingService) BlockedRanges(ctx context.Context, locationID string) ([]models.AvailabilityWindow, error) {
	reservations, err := s.Repo.ListOccupyingByLocation(ctx, locationID)
	if err != nil {
		return nil, wrapCollaborator(err, "list occupying reservations")
	}
	return BlockedWindows(reservations), nil
}
