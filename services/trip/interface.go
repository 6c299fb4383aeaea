// File: services/trip/interface.go
package trip

import (
	"context"
	"errors"
	"time"

	bookingRepo "shuttle/database/repository/booking"
	scheduleRepo "shuttle/database/repository/schedule"
	tripRepo "shuttle/database/repository/trip"
	vehicleRepo "shuttle/database/repository/vehicle"
	"shuttle/models"
	"shuttle/services/notification"
)

// Expected-outcome errors: the driver client renders these as "nothing
// to start yet", not as failures.
var (
	// ErrNoDutyWindow signals a trip action outside any duty window.
	ErrNoDutyWindow = errors.New("no duty window covers the current time")
	// ErrNoBookingsAvailable signals a start with an empty claim pool.
	ErrNoBookingsAvailable = errors.New("no confirmed bookings to carry")
	// ErrTripAlreadyActive signals a start while a trip is running.
	ErrTripAlreadyActive = errors.New("driver already has an active trip")
	// ErrTripNotActive signals a phase change or end on a finished trip.
	ErrTripNotActive = errors.New("trip is not active")
)

// TripService drives a driver's round trip through its phases, claims
// confirmed bookings into it, and resets the seat ledger at trip
// boundaries.
type TripService interface {
	StartTrip(ctx context.Context, driverID string) (*models.Trip, error)
	BeginReturn(ctx context.Context, tripID string) (*models.Trip, error)
	EndTrip(ctx context.Context, tripID string) (*models.Trip, error)
	CleanupOverlaps(ctx context.Context, driverID string) (int, error)
	CurrentTrip(ctx context.Context, driverID string) (*models.Trip, error)
	TripBookings(ctx context.Context, tripID string) ([]models.Booking, error)
}

// DefaultTripService implements TripService.
type DefaultTripService struct {
	Trips    tripRepo.TripRepository
	Bookings bookingRepo.BookingRepository
	Vehicles vehicleRepo.VehicleRepository
	Windows  scheduleRepo.ScheduleRepository
	Notifier notification.Dispatcher

	// Now is the clock; nil means time.Now. Tests inject a fixed one.
	Now func() time.Time
}

func (s *DefaultTripService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
