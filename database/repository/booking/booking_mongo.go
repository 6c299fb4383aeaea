package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shuttle/models"
)

var (
	// ErrBookingNotFound is returned when no booking matches the given id.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidReservationState signals a reservation transition whose
	// precondition no longer holds (e.g. confirming a booking that is
	// not held).
	ErrInvalidReservationState = errors.New("invalid reservation state")
)

func (repo *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (repo *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *mongoBookingRepo) ListByGuest(ctx context.Context, guestID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"guestId": guestID})
}

func (repo *mongoBookingRepo) ListByTrip(ctx context.Context, tripID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"tripId": tripID})
}

// MarkHeld stamps a fresh hold onto an unreserved booking. The filter
// guards against double-holding.
func (repo *mongoBookingRepo) MarkHeld(ctx context.Context, id, vehicleID string, heldAt, heldUntil time.Time) error {
	filter := bson.M{
		"id":                    id,
		"reservation.held":      false,
		"reservation.confirmed": false,
		"cancelled":             false,
	}
	update := bson.M{
		"$set": bson.M{
			"vehicleId":             vehicleID,
			"reservation.held":      true,
			"reservation.heldAt":    heldAt,
			"reservation.heldUntil": heldUntil,
			"updatedAt":             time.Now(),
		},
	}
	return repo.transition(ctx, id, filter, update)
}

// MarkConfirmed promotes a held booking. The hold timestamps are
// cleared, the vehicle reference is retained, and the booking leaves the
// staff-verification worklist.
func (repo *mongoBookingRepo) MarkConfirmed(ctx context.Context, id string, at time.Time) error {
	filter := bson.M{"id": id, "reservation.held": true}
	update := bson.M{
		"$set": bson.M{
			"reservation.held":        false,
			"reservation.confirmed":   true,
			"reservation.confirmedAt": at,
			"needsStaffVerification":  false,
			"updatedAt":               time.Now(),
		},
		"$unset": bson.M{
			"reservation.heldAt":    "",
			"reservation.heldUntil": "",
		},
	}
	return repo.transition(ctx, id, filter, update)
}

// ClearHold drops the hold fields and detaches the vehicle. Returns
// false when the booking held nothing, which makes a second release a
// clean no-op for the caller.
func (repo *mongoBookingRepo) ClearHold(ctx context.Context, id string) (bool, error) {
	filter := bson.M{"id": id, "reservation.held": true}
	update := bson.M{
		"$set": bson.M{
			"reservation.held": false,
			"updatedAt":        time.Now(),
		},
		"$unset": bson.M{
			"reservation.heldAt":    "",
			"reservation.heldUntil": "",
			"vehicleId":             "",
		},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to clear hold on booking %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

func (repo *mongoBookingRepo) MarkCancelled(ctx context.Context, id string) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"cancelled": true, "needsStaffVerification": false, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// MarkVerified is the check-in workflow's single write: it flips the
// verified flag and nothing else.
func (repo *mongoBookingRepo) MarkVerified(ctx context.Context, id string) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id, "cancelled": false}, bson.M{
		"$set": bson.M{"verified": true, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to verify booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// MarkCompletedVerified completes every verified, non-cancelled booking
// claimed into a trip. Unverified claimed bookings are deliberately left
// incomplete, and a cancelled booking never becomes completed.
func (repo *mongoBookingRepo) MarkCompletedVerified(ctx context.Context, tripID string) (int64, error) {
	res, err := repo.coll.UpdateMany(ctx, bson.M{"tripId": tripID, "verified": true, "cancelled": false}, bson.M{
		"$set": bson.M{"completed": true, "updatedAt": time.Now()},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to complete bookings for trip %s: %w", tripID, err)
	}
	return res.ModifiedCount, nil
}

func (repo *mongoBookingRepo) transition(ctx context.Context, id string, filter, update bson.M) error {
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		// Either the booking is gone or its reservation state moved on.
		if _, getErr := repo.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrInvalidReservationState
	}
	return nil
}

func (repo *mongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
