// File: database/repository/schedule/window.go
package scheduleRepo

import (
	"time"

	"shuttle/models"
)

// ActiveWindow picks the window covering the given instant, if any. Time
// is an explicit parameter so the lookup stays testable without a real
// clock. When windows overlap, the latest-starting one wins.
func ActiveWindow(windows []models.DutyWindow, now time.Time) (models.DutyWindow, bool) {
	var best models.DutyWindow
	found := false
	for _, w := range windows {
		if !w.Covers(now) {
			continue
		}
		if !found || w.StartTime.After(best.StartTime) {
			best = w
			found = true
		}
	}
	return best, found
}

// DayBounds returns the [start, end) range of the calendar day the given
// "YYYY-MM-DD" date names, in the location provided.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day.AddDate(0, 0, 1), nil
}
