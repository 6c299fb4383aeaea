package models

import "time"

// Reservation is the seat-hold sub-state of a booking. It is mutated
// exclusively by the reservation service; a booking owns at most one
// outstanding reservation at a time.
type Reservation struct {
	Held        bool       `bson:"held" json:"held"`
	HeldAt      *time.Time `bson:"heldAt,omitempty" json:"heldAt,omitempty"`
	HeldUntil   *time.Time `bson:"heldUntil,omitempty" json:"heldUntil,omitempty"`
	Confirmed   bool       `bson:"confirmed" json:"confirmed"`
	ConfirmedAt *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
}

// Booking represents a guest's request for seats on one leg of the
// shuttle run for a given day.
type Booking struct {
	ID        string    `bson:"id" json:"id"`
	GuestID   string    `bson:"guestId" json:"guestId"`
	HotelID   string    `bson:"hotelId" json:"hotelId"`
	Persons   int       `bson:"persons" json:"persons"`
	Direction Direction `bson:"direction" json:"direction"`
	TripDate  string    `bson:"tripDate" json:"tripDate"` // "YYYY-MM-DD"

	// VehicleID is set while a hold or confirmation binds the booking to
	// a shuttle; TripID once a driver's trip claims it. Both optional.
	VehicleID string `bson:"vehicleId,omitempty" json:"vehicleId,omitempty"`
	TripID    string `bson:"tripId,omitempty" json:"tripId,omitempty"`

	Reservation Reservation `bson:"reservation" json:"reservation"`

	// Lifecycle flags, independent of the reservation sub-state.
	// Verified is flipped by the check-in token workflow only.
	Verified               bool `bson:"verified" json:"verified"`
	Completed              bool `bson:"completed" json:"completed"`
	Cancelled              bool `bson:"cancelled" json:"cancelled"`
	NeedsStaffVerification bool `bson:"needsStaffVerification" json:"needsStaffVerification"`

	PickupLocation  string `bson:"pickupLocation,omitempty" json:"pickupLocation,omitempty"`
	DropoffLocation string `bson:"dropoffLocation,omitempty" json:"dropoffLocation,omitempty"`
	Notes           string `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// HoldExpired reports whether the booking carries a hold whose deadline
// has passed.
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.Reservation.Held && b.Reservation.HeldUntil != nil && now.After(*b.Reservation.HeldUntil)
}

// Claimable reports whether a trip may claim this booking: confirmed,
// not yet claimed, and still alive.
func (b *Booking) Claimable() bool {
	return b.Reservation.Confirmed && b.TripID == "" && !b.Cancelled && !b.Completed
}
