// File: database/repository/user/interface.go
package userRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"shuttle/database"
	"shuttle/models"
)

// UserRepository resolves guests and drivers, mainly so the
// notification dispatcher can find their device tokens.
type UserRepository interface {
	CreateGuest(ctx context.Context, guest *models.Guest) error
	CreateDriver(ctx context.Context, driver *models.Driver) error
	GetGuestByID(ctx context.Context, id string) (*models.Guest, error)
	GetDriverByID(ctx context.Context, id string) (*models.Driver, error)
	UpdateGuestFCMToken(ctx context.Context, id, token string) error
	UpdateDriverFCMToken(ctx context.Context, id, token string) error
}

type mongoUserRepo struct {
	guests  *mongo.Collection
	drivers *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	db := database.DB()
	return &mongoUserRepo{
		guests:  db.Collection("guests"),
		drivers: db.Collection("drivers"),
	}
}
