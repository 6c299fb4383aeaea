// File: tests/seed/main.go
//
// Seeds a local database with a hotel's worth of vehicles, drivers,
// guests, and today's duty windows. Run with: go run ./tests/seed
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"shuttle/config"
	"shuttle/database"
	scheduleRepoPkg "shuttle/database/repository/schedule"
	userRepoPkg "shuttle/database/repository/user"
	vehicleRepoPkg "shuttle/database/repository/vehicle"
	"shuttle/models"
)

const hotelID = "hotel-aurora"

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Clear previous seed data.
	for _, coll := range []string{"vehicles", "bookings", "trips", "duty_windows", "guests", "drivers"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", coll, err)
		}
	}

	vehicles := vehicleRepoPkg.NewMongoVehicleRepo()
	users := userRepoPkg.NewMongoUserRepo()
	windows := scheduleRepoPkg.NewMongoScheduleRepo()

	// Two shuttles of different sizes.
	vehicleIDs := make([]string, 0, 2)
	for i, seats := range []int{8, 14} {
		v := &models.Vehicle{
			ID:         uuid.New().String(),
			HotelID:    hotelID,
			TotalSeats: seats,
			Active:     true,
		}
		if err := vehicles.Create(ctx, v); err != nil {
			log.Fatalf("Failed to seed vehicle %d: %v", i+1, err)
		}
		vehicleIDs = append(vehicleIDs, v.ID)
	}

	// One driver per vehicle, on duty today in alternating shifts.
	dayStart := time.Now().Truncate(24 * time.Hour)
	for i, vehicleID := range vehicleIDs {
		driver := &models.Driver{
			ID:      uuid.New().String(),
			HotelID: hotelID,
			Name:    fmt.Sprintf("Driver %d", i+1),
			Email:   fmt.Sprintf("driver%d@example.com", i+1),
			Active:  true,
		}
		if err := users.CreateDriver(ctx, driver); err != nil {
			log.Fatalf("Failed to seed driver %d: %v", i+1, err)
		}
		if err := vehicles.AssignDriver(ctx, vehicleID, driver.ID); err != nil {
			log.Fatalf("Failed to assign driver %d: %v", i+1, err)
		}

		window := &models.DutyWindow{
			ID:        uuid.New().String(),
			DriverID:  driver.ID,
			VehicleID: vehicleID,
			HotelID:   hotelID,
			StartTime: dayStart.Add(time.Duration(5+8*i) * time.Hour),
			EndTime:   dayStart.Add(time.Duration(13+8*i) * time.Hour),
		}
		if err := windows.Create(ctx, window); err != nil {
			log.Fatalf("Failed to seed duty window %d: %v", i+1, err)
		}
		fmt.Printf("Driver %s drives %s from %s to %s\n",
			driver.ID, vehicleID,
			window.StartTime.Format(time.Kitchen), window.EndTime.Format(time.Kitchen))
	}

	// A handful of guests.
	for i := 1; i <= 5; i++ {
		guest := &models.Guest{
			ID:      uuid.New().String(),
			HotelID: hotelID,
			Name:    fmt.Sprintf("Guest %d", i),
			Email:   fmt.Sprintf("guest%d@example.com", i),
		}
		if err := users.CreateGuest(ctx, guest); err != nil {
			log.Fatalf("Failed to seed guest %d: %v", i, err)
		}
		fmt.Printf("Guest %s (%s)\n", guest.ID, guest.Name)
	}

	fmt.Printf("Seeded hotel %s with %d vehicles\n", hotelID, len(vehicleIDs))
}
