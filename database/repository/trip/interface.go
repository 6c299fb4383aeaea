// File: database/repository/trip/interface.go
package tripRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"shuttle/database"
	"shuttle/models"
)

// TripRepository is the data-access surface for driver trips. Phase and
// status writers are conditional updates keyed on the prior phase, so an
// illegal transition matches nothing.
type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, id string) (*models.Trip, error)
	// ListActiveByDriver returns ACTIVE trips newest-first; the overlap
	// cleanup keeps the head and heals the rest.
	ListActiveByDriver(ctx context.Context, driverID string) ([]models.Trip, error)
	GetActiveByDriver(ctx context.Context, driverID string) (*models.Trip, error)

	BeginReturn(ctx context.Context, id string, outboundEnd, returnStart time.Time) error
	Complete(ctx context.Context, id string, endTime time.Time) error
	AddClaimedBookings(ctx context.Context, id string, bookingIDs []string) error
}

type mongoTripRepo struct {
	coll *mongo.Collection
}

// NewMongoTripRepo constructs a new MongoDB TripRepository.
func NewMongoTripRepo() TripRepository {
	return &mongoTripRepo{coll: database.DB().Collection("trips")}
}
