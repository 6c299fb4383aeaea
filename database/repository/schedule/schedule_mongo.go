package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"shuttle/models"
)

func (repo *mongoScheduleRepo) Create(ctx context.Context, window *models.DutyWindow) error {
	window.CreatedAt = time.Now()
	if _, err := repo.coll.InsertOne(ctx, window); err != nil {
		return fmt.Errorf("failed to insert duty window: %w", err)
	}
	return nil
}

// WindowsForDriver returns the driver's windows overlapping [from, to).
func (repo *mongoScheduleRepo) WindowsForDriver(ctx context.Context, driverID string, from, to time.Time) ([]models.DutyWindow, error) {
	return repo.list(ctx, bson.M{
		"driverId":  driverID,
		"startTime": bson.M{"$lt": to},
		"endTime":   bson.M{"$gt": from},
	})
}

// WindowsForVehicle returns the vehicle's windows overlapping [from, to).
func (repo *mongoScheduleRepo) WindowsForVehicle(ctx context.Context, vehicleID string, from, to time.Time) ([]models.DutyWindow, error) {
	return repo.list(ctx, bson.M{
		"vehicleId": vehicleID,
		"startTime": bson.M{"$lt": to},
		"endTime":   bson.M{"$gt": from},
	})
}

func (repo *mongoScheduleRepo) list(ctx context.Context, filter bson.M) ([]models.DutyWindow, error) {
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list duty windows: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.DutyWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode duty windows: %w", err)
	}
	return windows, nil
}
