package tripRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shuttle/database"
)

// EnsureTripIndexes creates the indexes the overlap scan relies on.
func EnsureTripIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := database.DB().Collection("trips")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "driverId", Value: 1}, {Key: "status", Value: 1}, {Key: "startTime", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "vehicleId", Value: 1}, {Key: "status", Value: 1}},
		},
	})
	return err
}
