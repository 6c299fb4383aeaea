package tripRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shuttle/models"
)

var (
	// ErrTripNotFound is returned when no trip matches the given id.
	ErrTripNotFound = errors.New("trip not found")
	// ErrIllegalPhaseTransition signals a phase update whose
	// precondition (the expected prior phase) no longer holds.
	ErrIllegalPhaseTransition = errors.New("illegal trip phase transition")
)

func (repo *mongoTripRepo) Create(ctx context.Context, trip *models.Trip) error {
	now := time.Now()
	trip.CreatedAt = now
	trip.UpdatedAt = now
	if trip.BookingIDs == nil {
		trip.BookingIDs = []string{}
	}
	if _, err := repo.coll.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

func (repo *mongoTripRepo) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	var trip models.Trip
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trip %s: %w", id, err)
	}
	return &trip, nil
}

func (repo *mongoTripRepo) ListActiveByDriver(ctx context.Context, driverID string) ([]models.Trip, error) {
	filter := bson.M{"driverId": driverID, "status": models.TripActive}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active trips for driver %s: %w", driverID, err)
	}
	defer cursor.Close(ctx)

	var trips []models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}
	return trips, nil
}

func (repo *mongoTripRepo) GetActiveByDriver(ctx context.Context, driverID string) (*models.Trip, error) {
	trips, err := repo.ListActiveByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, ErrTripNotFound
	}
	return &trips[0], nil
}

// BeginReturn moves an outbound trip into its return leg. Legal only
// from OUTBOUND.
func (repo *mongoTripRepo) BeginReturn(ctx context.Context, id string, outboundEnd, returnStart time.Time) error {
	filter := bson.M{"id": id, "status": models.TripActive, "phase": models.PhaseOutbound}
	update := bson.M{
		"$set": bson.M{
			"phase":           models.PhaseReturn,
			"outboundEndTime": outboundEnd,
			"returnStartTime": returnStart,
			"updatedAt":       time.Now(),
		},
	}
	return repo.transition(ctx, id, filter, update)
}

// Complete finishes a trip from either active phase.
func (repo *mongoTripRepo) Complete(ctx context.Context, id string, endTime time.Time) error {
	filter := bson.M{"id": id, "status": models.TripActive}
	update := bson.M{
		"$set": bson.M{
			"status":    models.TripCompleted,
			"phase":     models.PhaseCompleted,
			"endTime":   endTime,
			"updatedAt": time.Now(),
		},
	}
	return repo.transition(ctx, id, filter, update)
}

func (repo *mongoTripRepo) AddClaimedBookings(ctx context.Context, id string, bookingIDs []string) error {
	if len(bookingIDs) == 0 {
		return nil
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$addToSet": bson.M{"bookingIds": bson.M{"$each": bookingIDs}},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to record claimed bookings on trip %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrTripNotFound
	}
	return nil
}

func (repo *mongoTripRepo) transition(ctx context.Context, id string, filter, update bson.M) error {
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update trip %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := repo.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrIllegalPhaseTransition
	}
	return nil
}
