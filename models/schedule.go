package models

import "time"

// DutyWindow binds a driver to a vehicle for a time range: who drives
// what, when. Windows are scheduling data maintained by hotel admins;
// the seat engine only reads them.
type DutyWindow struct {
	ID        string    `bson:"id" json:"id"`
	DriverID  string    `bson:"driverId" json:"driverId"`
	VehicleID string    `bson:"vehicleId" json:"vehicleId"`
	HotelID   string    `bson:"hotelId" json:"hotelId"`
	StartTime time.Time `bson:"startTime" json:"startTime"`
	EndTime   time.Time `bson:"endTime" json:"endTime"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}

// Covers reports whether the window spans the given instant. Start is
// inclusive, end exclusive.
func (w *DutyWindow) Covers(t time.Time) bool {
	return !t.Before(w.StartTime) && t.Before(w.EndTime)
}

// Overlaps reports whether the window intersects [from, to).
func (w *DutyWindow) Overlaps(from, to time.Time) bool {
	return w.StartTime.Before(to) && w.EndTime.After(from)
}
