package models

import "time"

// TripStatus is the coarse lifecycle of a driver's round trip.
type TripStatus string

const (
	TripActive    TripStatus = "ACTIVE"
	TripCompleted TripStatus = "COMPLETED"
)

// TripPhase is the leg a trip is currently running.
type TripPhase string

const (
	PhaseOutbound  TripPhase = "OUTBOUND"
	PhaseReturn    TripPhase = "RETURN"
	PhaseCompleted TripPhase = "COMPLETED"
)

// phaseTransitions encodes the legal phase flow as code.
var phaseTransitions = map[TripPhase][]TripPhase{
	PhaseOutbound: {PhaseReturn, PhaseCompleted},
	PhaseReturn:   {PhaseCompleted},
}

// CanTransitionPhase reports whether a trip may move between two phases.
func CanTransitionPhase(from, to TripPhase) bool {
	for _, next := range phaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Trip is one driver's round trip on a fixed vehicle. At most one trip
// should be ACTIVE per driver; the overlap-cleanup routine repairs
// violations rather than a single atomic constraint preventing them.
// Trips are never deleted, only completed.
type Trip struct {
	ID        string     `bson:"id" json:"id"`
	DriverID  string     `bson:"driverId" json:"driverId"`
	VehicleID string     `bson:"vehicleId" json:"vehicleId"`
	HotelID   string     `bson:"hotelId" json:"hotelId"`
	Status    TripStatus `bson:"status" json:"status"`
	Phase     TripPhase  `bson:"phase" json:"phase"`

	StartTime       time.Time  `bson:"startTime" json:"startTime"`
	OutboundEndTime *time.Time `bson:"outboundEndTime,omitempty" json:"outboundEndTime,omitempty"`
	ReturnStartTime *time.Time `bson:"returnStartTime,omitempty" json:"returnStartTime,omitempty"`
	EndTime         *time.Time `bson:"endTime,omitempty" json:"endTime,omitempty"`

	// BookingIDs is the denormalized set of bookings claimed into this
	// trip. The booking's tripId field is authoritative.
	BookingIDs []string `bson:"bookingIds" json:"bookingIds"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}
