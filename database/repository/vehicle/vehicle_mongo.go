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

// ErrVehicleNotFound is returned when no vehicle matches the given id.
var ErrVehicleNotFound = errors.New("vehicle not found")

func (repo *mongoVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	now := time.Now()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	if vehicle.SeatsHeld == nil {
		vehicle.SeatsHeld = map[models.Direction]int{}
	}
	if vehicle.SeatsConfirmed == nil {
		vehicle.SeatsConfirmed = map[models.Direction]int{}
	}
	if _, err := repo.coll.InsertOne(ctx, vehicle); err != nil {
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return nil
}

func (repo *mongoVehicleRepo) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&vehicle)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle %s: %w", id, err)
	}
	return &vehicle, nil
}

func (repo *mongoVehicleRepo) ListActiveByHotel(ctx context.Context, hotelID string) ([]models.Vehicle, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{"hotelId": hotelID, "active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles for hotel %s: %w", hotelID, err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, nil
}

func (repo *mongoVehicleRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"active": active, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update vehicle %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (repo *mongoVehicleRepo) AssignDriver(ctx context.Context, id, driverID string) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"assignedDriverId": driverID, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to assign driver to vehicle %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}
