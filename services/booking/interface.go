// File: services/booking/interface.go
package booking

import (
	"context"
	"time"

	bookingRepo "shuttle/database/repository/booking"
	scheduleRepo "shuttle/database/repository/schedule"
	vehicleRepo "shuttle/database/repository/vehicle"
	"shuttle/models"
	"shuttle/services/notification"
)

// CreateBookingCommand carries a guest's seat request.
type CreateBookingCommand struct {
	GuestID         string
	HotelID         string
	Persons         int
	Direction       models.Direction
	TripDate        string
	PickupLocation  string
	DropoffLocation string
	Notes           string
}

// ReservationService is the reservation state machine: it owns every
// transition of a booking's hold/confirm sub-state and is the only
// caller of the vehicle repository's seat-ledger operations.
type ReservationService interface {
	CreateBooking(ctx context.Context, cmd CreateBookingCommand) (*models.Booking, error)
	Hold(ctx context.Context, bookingID string) (*models.Booking, error)
	Confirm(ctx context.Context, bookingID string) (*models.Booking, error)
	Release(ctx context.Context, bookingID string) error
	Cancel(ctx context.Context, bookingID, reason string) error
	AssignVehicle(ctx context.Context, bookingID, vehicleID string) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListGuestBookings(ctx context.Context, guestID string) ([]models.Booking, error)
	ListUnassigned(ctx context.Context, hotelID string) ([]models.Booking, error)
}

// DefaultReservationService implements ReservationService.
type DefaultReservationService struct {
	Bookings bookingRepo.BookingRepository
	Vehicles vehicleRepo.VehicleRepository
	Windows  scheduleRepo.ScheduleRepository
	Notifier notification.Dispatcher

	// StrictReserve folds the availability check into the reserve
	// increment, closing the finder/reserve race at the cost of
	// occasionally refusing a hold the plain mode would (transiently
	// oversell and) accept.
	StrictReserve bool
	// HoldTTL bounds how long an unconfirmed hold keeps seats.
	HoldTTL time.Duration

	// Now is the clock; nil means time.Now. Tests inject a fixed one.
	Now func() time.Time
}

func (s *DefaultReservationService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultReservationService) holdTTL() time.Duration {
	if s.HoldTTL > 0 {
		return s.HoldTTL
	}
	return 5 * time.Minute
}
