// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"shuttle/database"
	"shuttle/models"
)

// ScheduleRepository is a read-model over duty windows. Windows are
// written by hotel admin tooling; the seat engine only queries them.
type ScheduleRepository interface {
	Create(ctx context.Context, window *models.DutyWindow) error
	WindowsForDriver(ctx context.Context, driverID string, from, to time.Time) ([]models.DutyWindow, error)
	WindowsForVehicle(ctx context.Context, vehicleID string, from, to time.Time) ([]models.DutyWindow, error)
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	return &mongoScheduleRepo{coll: database.DB().Collection("duty_windows")}
}
