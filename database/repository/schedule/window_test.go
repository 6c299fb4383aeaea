// File: database/repository/schedule/window_test.go
package scheduleRepo

import (
	"testing"
	"time"

	"shuttle/models"
)

func window(id string, start, end time.Time) models.DutyWindow {
	return models.DutyWindow{ID: id, DriverID: "drv-1", VehicleID: "veh-1", StartTime: start, EndTime: end}
}

func TestActiveWindowPicksCoveringWindow(t *testing.T) {
	base := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	windows := []models.DutyWindow{
		window("morning", base.Add(5*time.Hour), base.Add(13*time.Hour)),
		window("evening", base.Add(13*time.Hour), base.Add(21*time.Hour)),
	}

	w, ok := ActiveWindow(windows, base.Add(9*time.Hour))
	if !ok || w.ID != "morning" {
		t.Fatalf("got %q ok=%v, want morning", w.ID, ok)
	}

	w, ok = ActiveWindow(windows, base.Add(15*time.Hour))
	if !ok || w.ID != "evening" {
		t.Fatalf("got %q ok=%v, want evening", w.ID, ok)
	}
}

func TestActiveWindowBoundaries(t *testing.T) {
	base := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	windows := []models.DutyWindow{
		window("shift", base.Add(5*time.Hour), base.Add(13*time.Hour)),
	}

	// Start inclusive.
	if _, ok := ActiveWindow(windows, base.Add(5*time.Hour)); !ok {
		t.Fatalf("window start should be covered")
	}
	// End exclusive.
	if _, ok := ActiveWindow(windows, base.Add(13*time.Hour)); ok {
		t.Fatalf("window end should not be covered")
	}
	if _, ok := ActiveWindow(windows, base.Add(4*time.Hour)); ok {
		t.Fatalf("time before the window should not be covered")
	}
}

func TestActiveWindowOverlapLatestStartWins(t *testing.T) {
	base := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	windows := []models.DutyWindow{
		window("long", base.Add(5*time.Hour), base.Add(21*time.Hour)),
		window("override", base.Add(12*time.Hour), base.Add(16*time.Hour)),
	}

	w, ok := ActiveWindow(windows, base.Add(14*time.Hour))
	if !ok || w.ID != "override" {
		t.Fatalf("got %q ok=%v, want override", w.ID, ok)
	}
}

func TestActiveWindowNone(t *testing.T) {
	if _, ok := ActiveWindow(nil, time.Now()); ok {
		t.Fatalf("no windows should yield no match")
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2026-09-10", time.UTC)
	if err != nil {
		t.Fatalf("DayBounds failed: %v", err)
	}
	if !start.Equal(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", end)
	}

	if _, _, err := DayBounds("10/09/2026", time.UTC); err == nil {
		t.Fatalf("expected malformed date to be rejected")
	}
}
