// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"shuttle/database"
	"shuttle/models"
)

// BookingRepository is the data-access surface for bookings. The
// reservation-field writers (MarkHeld, MarkConfirmed, ClearHold) are
// conditional updates: their filters encode the legal prior state, so a
// transition attempted twice or out of order matches nothing instead of
// corrupting the record.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByGuest(ctx context.Context, guestID string) ([]models.Booking, error)
	ListByTrip(ctx context.Context, tripID string) ([]models.Booking, error)

	// Reservation sub-state transitions.
	MarkHeld(ctx context.Context, id, vehicleID string, heldAt, heldUntil time.Time) error
	MarkConfirmed(ctx context.Context, id string, at time.Time) error
	ClearHold(ctx context.Context, id string) (bool, error)

	// Lifecycle flags.
	MarkCancelled(ctx context.Context, id string) error
	MarkVerified(ctx context.Context, id string) error
	MarkCompletedVerified(ctx context.Context, tripID string) (int64, error)

	// Trip claiming.
	ListConfirmedUnclaimed(ctx context.Context, vehicleID string, dir models.Direction) ([]models.Booking, error)
	ClaimForTrip(ctx context.Context, bookingIDs []string, tripID string) (int64, error)
	DetachUnverified(ctx context.Context, tripID string) (int64, error)
	DetachAll(ctx context.Context, tripID string) (int64, error)

	// Staff worklist and sweep scans.
	ListUnassigned(ctx context.Context, hotelID string) ([]models.Booking, error)
	ListExpiredHolds(ctx context.Context, now time.Time) ([]models.Booking, error)
	ListStaleUnverified(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{coll: database.DB().Collection("bookings")}
}
