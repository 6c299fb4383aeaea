// File: services/booking/hold.go
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	vehicleRepo "shuttle/database/repository/vehicle"
	"shuttle/models"
	"shuttle/utils"
)

// CreateBooking records a guest's request and immediately attempts a
// hold. A request the finder cannot place is still created; it surfaces
// on the staff worklist instead of failing.
func (s *DefaultReservationService) CreateBooking(ctx context.Context, cmd CreateBookingCommand) (*models.Booking, error) {
	if cmd.GuestID == "" || cmd.HotelID == "" {
		return nil, fmt.Errorf("guest and hotel are required")
	}
	if cmd.Persons <= 0 {
		return nil, fmt.Errorf("persons must be a positive integer")
	}
	if !cmd.Direction.Valid() {
		return nil, fmt.Errorf("unknown direction %q", cmd.Direction)
	}

	b := &models.Booking{
		ID:                     uuid.New().String(),
		GuestID:                cmd.GuestID,
		HotelID:                cmd.HotelID,
		Persons:                cmd.Persons,
		Direction:              cmd.Direction,
		TripDate:               cmd.TripDate,
		PickupLocation:         cmd.PickupLocation,
		DropoffLocation:        cmd.DropoffLocation,
		Notes:                  cmd.Notes,
		NeedsStaffVerification: true,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.Hold(ctx, b.ID)
}

// Hold runs the vehicle finder and, on a match, reserves seats and
// stamps the hold onto the booking. When no vehicle qualifies the
// booking is returned unreserved.
func (s *DefaultReservationService) Hold(ctx context.Context, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Cancelled {
		return nil, ErrBookingCancelled
	}
	if b.Reservation.Held || b.Reservation.Confirmed {
		return nil, ErrAlreadyReserved
	}

	vehicle, err := s.FindVehicle(ctx, b.HotelID, b.Direction, b.Persons, b.TripDate)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		logger.Info("no vehicle available for booking; left unassigned",
			zap.String("bookingId", b.ID), zap.String("hotelId", b.HotelID),
			zap.Int("persons", b.Persons), zap.String("direction", string(b.Direction)))
		return b, nil
	}

	if err := s.reserve(ctx, vehicle.ID, b.Direction, b.Persons); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleFull) {
			// Strict mode lost the race; same surface as no vehicle.
			logger.Info("vehicle filled before reserve; booking left unassigned",
				zap.String("bookingId", b.ID), zap.String("vehicleId", vehicle.ID))
			return b, nil
		}
		return nil, err
	}

	return s.stampHold(ctx, b, vehicle.ID)
}

// AssignVehicle is the staff path for bookings the finder left
// unassigned: it holds seats on an explicitly chosen vehicle.
func (s *DefaultReservationService) AssignVehicle(ctx context.Context, bookingID, vehicleID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Cancelled {
		return nil, ErrBookingCancelled
	}
	if b.Reservation.Held || b.Reservation.Confirmed {
		return nil, ErrAlreadyReserved
	}

	vehicle, err := s.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Availability(b.Direction) < b.Persons {
		return nil, ErrNoSeatsAvailable
	}

	if err := s.reserve(ctx, vehicle.ID, b.Direction, b.Persons); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleFull) {
			return nil, ErrNoSeatsAvailable
		}
		return nil, err
	}
	return s.stampHold(ctx, b, vehicle.ID)
}

func (s *DefaultReservationService) reserve(ctx context.Context, vehicleID string, dir models.Direction, n int) error {
	if s.StrictReserve {
		return s.Vehicles.ReserveSeatsStrict(ctx, vehicleID, dir, n)
	}
	return s.Vehicles.ReserveSeats(ctx, vehicleID, dir, n)
}

func (s *DefaultReservationService) stampHold(ctx context.Context, b *models.Booking, vehicleID string) (*models.Booking, error) {
	now := s.clock()
	until := now.Add(s.holdTTL())
	if err := s.Bookings.MarkHeld(ctx, b.ID, vehicleID, now, until); err != nil {
		// The booking moved on while we reserved; give the seats back.
		if relErr := s.Vehicles.ReleaseSeats(ctx, vehicleID, b.Direction, b.Persons); relErr != nil {
			utils.GetLogger().Error("failed to roll back reserve after hold conflict",
				zap.String("bookingId", b.ID), zap.String("vehicleId", vehicleID), zap.Error(relErr))
		}
		return nil, err
	}

	b.VehicleID = vehicleID
	b.Reservation.Held = true
	b.Reservation.HeldAt = &now
	b.Reservation.HeldUntil = &until

	utils.GetLogger().Info("seats held",
		zap.String("bookingId", b.ID), zap.String("vehicleId", vehicleID),
		zap.Int("persons", b.Persons), zap.Time("heldUntil", until))
	return b, nil
}
