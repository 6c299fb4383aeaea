// File: services/booking/release.go
package booking

import (
	"context"

	"go.uber.org/zap"

	"shuttle/models"
	"shuttle/utils"
)

// Release returns a booking's held seats to the pool and fully detaches
// the vehicle; a retried booking re-runs the finder from scratch.
// Idempotent: a booking without an active hold is a no-op, and the
// ledger decrement only runs for the caller whose conditional hold-clear
// matched, so the expiry sweep and a concurrent cancel cannot
// double-release.
func (s *DefaultReservationService) Release(ctx context.Context, bookingID string) error {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	return s.release(ctx, b)
}

func (s *DefaultReservationService) release(ctx context.Context, b *models.Booking) error {
	if !b.Reservation.Held {
		return s.releaseConfirmed(ctx, b)
	}

	// The conditional hold-clear is the serialization point: only the
	// caller that actually flips held=false returns the seats. A sweep
	// racing a cancel from the same stale snapshot loses here and never
	// touches the ledger.
	cleared, err := s.Bookings.ClearHold(ctx, b.ID)
	if err != nil {
		return err
	}
	if cleared {
		if err := s.Vehicles.ReleaseSeats(ctx, b.VehicleID, b.Direction, b.Persons); err != nil {
			return err
		}
		utils.GetLogger().Info("hold released",
			zap.String("bookingId", b.ID), zap.String("vehicleId", b.VehicleID), zap.Int("persons", b.Persons))
	}

	b.Reservation.Held = false
	b.Reservation.HeldAt = nil
	b.Reservation.HeldUntil = nil
	b.VehicleID = ""
	return nil
}

// releaseConfirmed hands back the confirmed seats of a booking that was
// cancelled before any trip claimed it. Once a trip owns the booking the
// ledger is left alone: the trip-boundary reset reclaims those seats,
// and decrementing here would double-count against the next cycle.
func (s *DefaultReservationService) releaseConfirmed(ctx context.Context, b *models.Booking) error {
	if !b.Reservation.Confirmed || b.TripID != "" || b.Completed {
		return nil
	}
	if err := s.Vehicles.ReleaseConfirmedSeats(ctx, b.VehicleID, b.Direction, b.Persons); err != nil {
		return err
	}
	utils.GetLogger().Info("confirmed seats released",
		zap.String("bookingId", b.ID), zap.String("vehicleId", b.VehicleID), zap.Int("persons", b.Persons))
	return nil
}

// Cancel withdraws a booking at any point in its life. A live hold is
// released; a confirmed booking not yet claimed by a trip hands its
// seats back too; a booking on a trip touches no counters, since the
// trip-boundary reset reclaims them. The cancelled flag is always set,
// for audit.
func (s *DefaultReservationService) Cancel(ctx context.Context, bookingID, reason string) error {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Cancelled {
		return nil
	}

	if err := s.release(ctx, b); err != nil {
		return err
	}
	if err := s.Bookings.MarkCancelled(ctx, b.ID); err != nil {
		return err
	}
	b.Cancelled = true

	if reason == "" {
		reason = "Your shuttle booking was cancelled."
	}
	s.Notifier.BookingCancelled(ctx, b, reason)
	return nil
}

func (s *DefaultReservationService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Bookings.GetByID(ctx, bookingID)
}

func (s *DefaultReservationService) ListGuestBookings(ctx context.Context, guestID string) ([]models.Booking, error) {
	return s.Bookings.ListByGuest(ctx, guestID)
}

func (s *DefaultReservationService) ListUnassigned(ctx context.Context, hotelID string) ([]models.Booking, error) {
	return s.Bookings.ListUnassigned(ctx, hotelID)
}
