package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shuttle/database"
)

// EnsureBookingIndexes creates the indexes the claim queries and sweeps
// rely on.
func EnsureBookingIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := database.DB().Collection("bookings")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "guestId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "vehicleId", Value: 1}, {Key: "direction", Value: 1}, {Key: "reservation.confirmed", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "tripId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "reservation.held", Value: 1}, {Key: "reservation.heldUntil", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "needsStaffVerification", Value: 1}, {Key: "createdAt", Value: 1}},
		},
	})
	return err
}
