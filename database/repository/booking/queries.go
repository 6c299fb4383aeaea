// File: database/repository/booking/queries.go
//
// Claim-pool and sweep queries used by the trip controller and the
// periodic reconcilers.
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"shuttle/models"
)

// ListConfirmedUnclaimed returns the claim pool for one vehicle and
// direction: confirmed bookings no trip has taken yet.
func (repo *mongoBookingRepo) ListConfirmedUnclaimed(ctx context.Context, vehicleID string, dir models.Direction) ([]models.Booking, error) {
	filter := bson.M{
		"vehicleId":             vehicleID,
		"direction":             dir,
		"reservation.confirmed": true,
		"cancelled":             false,
		"completed":             false,
		"tripId":                bson.M{"$exists": false},
	}
	return repo.list(ctx, filter)
}

// ClaimForTrip stamps the trip id onto the given bookings in one batch.
// The tripId-absent filter keeps a booking from being claimed twice when
// two trip transitions race.
func (repo *mongoBookingRepo) ClaimForTrip(ctx context.Context, bookingIDs []string, tripID string) (int64, error) {
	if len(bookingIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"id":     bson.M{"$in": bookingIDs},
		"tripId": bson.M{"$exists": false},
	}
	res, err := repo.coll.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{"tripId": tripID, "updatedAt": time.Now()},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to claim bookings for trip %s: %w", tripID, err)
	}
	return res.ModifiedCount, nil
}

// DetachUnverified releases a stale trip's unverified bookings back into
// the unclaimed pool so a surviving or future trip can pick them up.
func (repo *mongoBookingRepo) DetachUnverified(ctx context.Context, tripID string) (int64, error) {
	filter := bson.M{
		"tripId":    tripID,
		"verified":  false,
		"completed": false,
	}
	res, err := repo.coll.UpdateMany(ctx, filter, bson.M{
		"$unset": bson.M{"tripId": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to detach bookings from trip %s: %w", tripID, err)
	}
	return res.ModifiedCount, nil
}

// DetachAll releases every booking claimed into a trip, used when a
// trip start has to be rolled back after its ledger reset failed.
func (repo *mongoBookingRepo) DetachAll(ctx context.Context, tripID string) (int64, error) {
	res, err := repo.coll.UpdateMany(ctx, bson.M{"tripId": tripID}, bson.M{
		"$unset": bson.M{"tripId": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to detach bookings from trip %s: %w", tripID, err)
	}
	return res.ModifiedCount, nil
}

// ListUnassigned returns bookings the finder could not place, surfaced
// to staff for manual vehicle assignment.
func (repo *mongoBookingRepo) ListUnassigned(ctx context.Context, hotelID string) ([]models.Booking, error) {
	filter := bson.M{
		"hotelId":               hotelID,
		"reservation.held":      false,
		"reservation.confirmed": false,
		"cancelled":             false,
		"completed":             false,
		"vehicleId":             bson.M{"$exists": false},
	}
	return repo.list(ctx, filter)
}

// ListExpiredHolds returns holds whose deadline has passed, for the
// expiry sweep.
func (repo *mongoBookingRepo) ListExpiredHolds(ctx context.Context, now time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"reservation.held":      true,
		"reservation.heldUntil": bson.M{"$lt": now},
	}
	return repo.list(ctx, filter)
}

// ListStaleUnverified returns bookings still waiting on staff
// verification past the cutoff, for the stale sweep.
func (repo *mongoBookingRepo) ListStaleUnverified(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"needsStaffVerification": true,
		"cancelled":              false,
		"completed":              false,
		"createdAt":              bson.M{"$lt": cutoff},
	}
	return repo.list(ctx, filter)
}
