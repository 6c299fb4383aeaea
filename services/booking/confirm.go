// File: services/booking/confirm.go
package booking

import (
	"context"

	"go.uber.org/zap"

	"shuttle/models"
	"shuttle/utils"
)

// Confirm promotes a live hold to a durable reservation. Invoked when
// staff verification clears the booking. An expired hold is refused
// with the ledger untouched; the expiry sweep reclaims those seats.
func (s *DefaultReservationService) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Cancelled {
		return nil, ErrBookingCancelled
	}
	if !b.Reservation.Held {
		return nil, ErrNotHeld
	}

	now := s.clock()
	if b.HoldExpired(now) {
		return nil, ErrHoldExpired
	}

	if err := s.Vehicles.ConfirmSeats(ctx, b.VehicleID, b.Direction, b.Persons); err != nil {
		return nil, err
	}
	if err := s.Bookings.MarkConfirmed(ctx, b.ID, now); err != nil {
		return nil, err
	}

	b.Reservation.Held = false
	b.Reservation.HeldAt = nil
	b.Reservation.HeldUntil = nil
	b.Reservation.Confirmed = true
	b.Reservation.ConfirmedAt = &now
	b.NeedsStaffVerification = false

	utils.GetLogger().Info("booking confirmed",
		zap.String("bookingId", b.ID), zap.String("vehicleId", b.VehicleID), zap.Int("persons", b.Persons))

	s.Notifier.BookingConfirmed(ctx, b)
	return b, nil
}
