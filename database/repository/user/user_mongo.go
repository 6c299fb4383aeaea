package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shuttle/models"
)

// ErrUserNotFound is returned when no guest or driver matches the id.
var ErrUserNotFound = errors.New("user not found")

func (repo *mongoUserRepo) CreateGuest(ctx context.Context, guest *models.Guest) error {
	guest.CreatedAt = time.Now()
	if _, err := repo.guests.InsertOne(ctx, guest); err != nil {
		return fmt.Errorf("failed to insert guest: %w", err)
	}
	return nil
}

func (repo *mongoUserRepo) CreateDriver(ctx context.Context, driver *models.Driver) error {
	driver.CreatedAt = time.Now()
	if _, err := repo.drivers.InsertOne(ctx, driver); err != nil {
		return fmt.Errorf("failed to insert driver: %w", err)
	}
	return nil
}

func (repo *mongoUserRepo) GetGuestByID(ctx context.Context, id string) (*models.Guest, error) {
	var guest models.Guest
	err := repo.guests.FindOne(ctx, bson.M{"id": id}).Decode(&guest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guest %s: %w", id, err)
	}
	return &guest, nil
}

func (repo *mongoUserRepo) GetDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	var driver models.Driver
	err := repo.drivers.FindOne(ctx, bson.M{"id": id}).Decode(&driver)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch driver %s: %w", id, err)
	}
	return &driver, nil
}

func (repo *mongoUserRepo) UpdateGuestFCMToken(ctx context.Context, id, token string) error {
	return repo.updateToken(ctx, repo.guests, id, token)
}

func (repo *mongoUserRepo) UpdateDriverFCMToken(ctx context.Context, id, token string) error {
	return repo.updateToken(ctx, repo.drivers, id, token)
}

func (repo *mongoUserRepo) updateToken(ctx context.Context, coll *mongo.Collection, id, token string) error {
	res, err := coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"fcmToken": token},
	})
	if err != nil {
		return fmt.Errorf("failed to update fcm token for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
