package models

import "time"

// Vehicle represents a shuttle owned by a hotel. The per-direction seat
// counters form the capacity ledger: they are mutated only through the
// vehicle repository's atomic increment/decrement operations, never
// read-then-written by callers.
type Vehicle struct {
	ID               string    `bson:"id" json:"id"`
	HotelID          string    `bson:"hotelId" json:"hotelId"`
	Name             string    `bson:"name" json:"name"`
	PlateNumber      string    `bson:"plateNumber" json:"plateNumber,omitempty"`
	TotalSeats       int       `bson:"totalSeats" json:"totalSeats"`
	Active           bool      `bson:"active" json:"active"`
	AssignedDriverID string    `bson:"assignedDriverId,omitempty" json:"assignedDriverId,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`

	// SeatCapacity overrides TotalSeats per direction when set.
	SeatCapacity   map[Direction]int `bson:"seatCapacity,omitempty" json:"seatCapacity,omitempty"`
	SeatsHeld      map[Direction]int `bson:"seatsHeld,omitempty" json:"seatsHeld,omitempty"`
	SeatsConfirmed map[Direction]int `bson:"seatsConfirmed,omitempty" json:"seatsConfirmed,omitempty"`
}

// CapacityFor returns the seat capacity for one direction, defaulting to
// the vehicle's total seats when no per-direction override is set.
func (v *Vehicle) CapacityFor(dir Direction) int {
	if c, ok := v.SeatCapacity[dir]; ok && c > 0 {
		return c
	}
	return v.TotalSeats
}

// Availability returns capacity minus held and confirmed seats for one
// direction. A read-only snapshot: by the time the caller acts on it the
// counters may have moved.
func (v *Vehicle) Availability(dir Direction) int {
	return v.CapacityFor(dir) - v.SeatsHeld[dir] - v.SeatsConfirmed[dir]
}
