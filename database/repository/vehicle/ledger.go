// File: database/repository/vehicle/ledger.go
//
// Seat-ledger operations. Every mutation here is a single Mongo update
// so that concurrent holds, confirms and releases against the same
// vehicle serialize inside the database; application code never does a
// read-modify-write on the counters.
package vehicleRepo

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
	// ErrInsufficientHeldSeats signals a confirm of more seats than the
	// direction currently holds.
	ErrInsufficientHeldSeats = errors.New("insufficient held seats")
	// ErrVehicleFull signals a strict reserve that lost the race: the
	// conditional increment matched no document because held+confirmed
	// would exceed capacity.
	ErrVehicleFull = errors.New("vehicle has no free seats")
)

func heldField(dir models.Direction) string      { return "seatsHeld." + string(dir) }
func confirmedField(dir models.Direction) string { return "seatsConfirmed." + string(dir) }
func capacityField(dir models.Direction) string  { return "seatCapacity." + string(dir) }

// ReserveSeats increments the held counter by n, unconditionally. The
// caller is expected to have checked availability beforehand; the gap
// between that check and this increment is the documented oversell
// window bounded by the hold TTL.
func (repo *mongoVehicleRepo) ReserveSeats(ctx context.Context, vehicleID string, dir models.Direction, n int) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": vehicleID}, bson.M{
		"$inc": bson.M{heldField(dir): n},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to reserve %d seats on vehicle %s: %w", n, vehicleID, err)
	}
	if res.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// ReserveSeatsStrict folds the capacity check into the increment: the
// update matches only while held+confirmed+n stays within capacity, so
// two racing holds cannot both get in past the limit.
func (repo *mongoVehicleRepo) ReserveSeatsStrict(ctx context.Context, vehicleID string, dir models.Direction, n int) error {
	filter := bson.M{
		"id": vehicleID,
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{
					bson.M{"$ifNull": bson.A{"$" + heldField(dir), 0}},
					bson.M{"$ifNull": bson.A{"$" + confirmedField(dir), 0}},
					n,
				}},
				bson.M{"$ifNull": bson.A{"$" + capacityField(dir), "$totalSeats"}},
			},
		},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{heldField(dir): n},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to reserve %d seats on vehicle %s: %w", n, vehicleID, err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing vehicle from one that filled up.
		if _, getErr := repo.GetByID(ctx, vehicleID); getErr != nil {
			return getErr
		}
		return ErrVehicleFull
	}
	return nil
}

// ConfirmSeats moves n seats from held to confirmed. The filter requires
// at least n held seats, so a confirm can never push the held counter
// negative or invent confirmed seats.
func (repo *mongoVehicleRepo) ConfirmSeats(ctx context.Context, vehicleID string, dir models.Direction, n int) error {
	filter := bson.M{
		"id":           vehicleID,
		heldField(dir): bson.M{"$gte": n},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{heldField(dir): -n, confirmedField(dir): n},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to confirm %d seats on vehicle %s: %w", n, vehicleID, err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := repo.GetByID(ctx, vehicleID); getErr != nil {
			return getErr
		}
		return ErrInsufficientHeldSeats
	}
	return nil
}

// ReleaseSeats returns n held seats to the pool, flooring the counter at
// zero. The floor makes a double release a no-op instead of an
// underflow.
func (repo *mongoVehicleRepo) ReleaseSeats(ctx context.Context, vehicleID string, dir models.Direction, n int) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: heldField(dir), Value: bson.D{
				{Key: "$max", Value: bson.A{
					0,
					bson.D{{Key: "$subtract", Value: bson.A{
						bson.D{{Key: "$ifNull", Value: bson.A{"$" + heldField(dir), 0}}},
						n,
					}}},
				}},
			}},
			{Key: "updatedAt", Value: time.Now()},
		}}},
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": vehicleID}, pipeline)
	if err != nil {
		return fmt.Errorf("failed to release %d seats on vehicle %s: %w", n, vehicleID, err)
	}
	if res.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// ReleaseConfirmedSeats returns n confirmed seats to the pool, flooring
// the counter at zero. Used when a confirmed booking is cancelled before
// its trip claims it; the floor keeps a late cancel against an already
// reset ledger from underflowing.
func (repo *mongoVehicleRepo) ReleaseConfirmedSeats(ctx context.Context, vehicleID string, dir models.Direction, n int) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: confirmedField(dir), Value: bson.D{
				{Key: "$max", Value: bson.A{
					0,
					bson.D{{Key: "$subtract", Value: bson.A{
						bson.D{{Key: "$ifNull", Value: bson.A{"$" + confirmedField(dir), 0}}},
						n,
					}}},
				}},
			}},
			{Key: "updatedAt", Value: time.Now()},
		}}},
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": vehicleID}, pipeline)
	if err != nil {
		return fmt.Errorf("failed to release %d confirmed seats on vehicle %s: %w", n, vehicleID, err)
	}
	if res.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// ResetDirections zeroes held and confirmed counters for the given
// directions. Used only at trip boundaries, never mid-trip.
func (repo *mongoVehicleRepo) ResetDirections(ctx context.Context, vehicleID string, dirs ...models.Direction) error {
	set := bson.M{"updatedAt": time.Now()}
	for _, dir := range dirs {
		set[heldField(dir)] = 0
		set[confirmedField(dir)] = 0
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": vehicleID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to reset seat ledger on vehicle %s: %w", vehicleID, err)
	}
	if res.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}
