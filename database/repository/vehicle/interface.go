// File: database/repository/vehicle/interface.go
package vehicleRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"shuttle/database"
	"shuttle/models"
)

// VehicleRepository is the data-access surface for shuttles and their
// seat ledger. The seat counter methods are the only writers of
// seatsHeld/seatsConfirmed anywhere in the system; each is a single
// atomic Mongo update so concurrent callers never interleave a
// read-modify-write.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	ListActiveByHotel(ctx context.Context, hotelID string) ([]models.Vehicle, error)
	SetActive(ctx context.Context, id string, active bool) error
	AssignDriver(ctx context.Context, id, driverID string) error

	// Capacity ledger. ReserveSeats performs no capacity check of its
	// own; ReserveSeatsStrict folds the check into the increment and
	// fails with ErrVehicleFull when the vehicle filled up in between.
	ReserveSeats(ctx context.Context, vehicleID string, dir models.Direction, n int) error
	ReserveSeatsStrict(ctx context.Context, vehicleID string, dir models.Direction, n int) error
	ConfirmSeats(ctx context.Context, vehicleID string, dir models.Direction, n int) error
	ReleaseSeats(ctx context.Context, vehicleID string, dir models.Direction, n int) error
	ReleaseConfirmedSeats(ctx context.Context, vehicleID string, dir models.Direction, n int) error
	ResetDirections(ctx context.Context, vehicleID string, dirs ...models.Direction) error
}

type mongoVehicleRepo struct {
	coll *mongo.Collection
}

// NewMongoVehicleRepo constructs a new MongoDB VehicleRepository.
func NewMongoVehicleRepo() VehicleRepository {
	return &mongoVehicleRepo{coll: database.DB().Collection("vehicles")}
}
