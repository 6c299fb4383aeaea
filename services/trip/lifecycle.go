// File: services/trip/lifecycle.go
package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	scheduleRepo "shuttle/database/repository/schedule"
	tripRepo "shuttle/database/repository/trip"
	"shuttle/models"
	"shuttle/utils"
)

// StartTrip begins a driver's round trip. Requires a duty window
// covering now and at least one confirmed, unclaimed outbound booking
// on the window's vehicle. Both directions of the vehicle's ledger are
// reset on success: the departing passenger list is fixed, so new
// reservation traffic gets the full capacity for the next cycle.
func (s *DefaultTripService) StartTrip(ctx context.Context, driverID string) (*models.Trip, error) {
	logger := utils.GetLogger()
	now := s.clock()

	// Heal any duplicated active trips before checking the invariant.
	if _, err := s.CleanupOverlaps(ctx, driverID); err != nil {
		return nil, err
	}
	if _, err := s.Trips.GetActiveByDriver(ctx, driverID); err == nil {
		return nil, ErrTripAlreadyActive
	} else if !errors.Is(err, tripRepo.ErrTripNotFound) {
		return nil, err
	}

	window, err := s.activeWindow(ctx, driverID, now)
	if err != nil {
		return nil, err
	}

	pool, err := s.Bookings.ListConfirmedUnclaimed(ctx, window.VehicleID, models.DirectionHotelToAirport)
	if err != nil {
		return nil, err
	}
	claimIDs := claimableIDs(pool)
	if len(claimIDs) == 0 {
		return nil, ErrNoBookingsAvailable
	}

	t := &models.Trip{
		ID:        uuid.New().String(),
		DriverID:  driverID,
		VehicleID: window.VehicleID,
		HotelID:   window.HotelID,
		Status:    models.TripActive,
		Phase:     models.PhaseOutbound,
		StartTime: now,
	}
	if err := s.Trips.Create(ctx, t); err != nil {
		return nil, err
	}

	claimed, err := s.Bookings.ClaimForTrip(ctx, claimIDs, t.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Trips.AddClaimedBookings(ctx, t.ID, claimIDs); err != nil {
		return nil, err
	}

	// An un-reset ledger would under-report capacity for the whole next
	// cycle, so a reset failure aborts the start: the trip is closed
	// out and its claims returned to the pool.
	if err := s.Vehicles.ResetDirections(ctx, t.VehicleID, models.Directions...); err != nil {
		logger.Error("ledger reset failed; aborting trip start",
			zap.String("tripId", t.ID), zap.String("vehicleId", t.VehicleID), zap.Error(err))
		if _, detachErr := s.Bookings.DetachAll(ctx, t.ID); detachErr != nil {
			logger.Error("failed to detach bookings from aborted trip",
				zap.String("tripId", t.ID), zap.Error(detachErr))
		}
		if compErr := s.Trips.Complete(ctx, t.ID, now); compErr != nil {
			logger.Error("failed to close aborted trip",
				zap.String("tripId", t.ID), zap.Error(compErr))
		}
		return nil, fmt.Errorf("trip start aborted: %w", err)
	}

	t.BookingIDs = claimIDs
	logger.Info("trip started",
		zap.String("tripId", t.ID), zap.String("driverId", driverID),
		zap.String("vehicleId", t.VehicleID), zap.Int64("claimed", claimed))

	s.Notifier.TripStarted(ctx, t, len(claimIDs))
	return t, nil
}

// BeginReturn moves the trip from its outbound to its return leg and
// claims any return-direction bookings confirmed while the outbound leg
// was running.
func (s *DefaultTripService) BeginReturn(ctx context.Context, tripID string) (*models.Trip, error) {
	t, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TripActive {
		return nil, ErrTripNotActive
	}
	if !models.CanTransitionPhase(t.Phase, models.PhaseReturn) {
		return nil, tripRepo.ErrIllegalPhaseTransition
	}

	now := s.clock()
	if err := s.Trips.BeginReturn(ctx, t.ID, now, now); err != nil {
		return nil, err
	}
	t.Phase = models.PhaseReturn
	t.OutboundEndTime = &now
	t.ReturnStartTime = &now

	pool, err := s.Bookings.ListConfirmedUnclaimed(ctx, t.VehicleID, models.DirectionAirportToHotel)
	if err != nil {
		return nil, err
	}
	claimIDs := claimableIDs(pool)
	if len(claimIDs) > 0 {
		if _, err := s.Bookings.ClaimForTrip(ctx, claimIDs, t.ID); err != nil {
			return nil, err
		}
		if err := s.Trips.AddClaimedBookings(ctx, t.ID, claimIDs); err != nil {
			return nil, err
		}
		t.BookingIDs = append(t.BookingIDs, claimIDs...)
	}

	utils.GetLogger().Info("trip entered return leg",
		zap.String("tripId", t.ID), zap.Int("returnClaims", len(claimIDs)))

	s.Notifier.TripReturnStarted(ctx, t)
	return t, nil
}

// EndTrip completes the trip from either active phase, resets the
// vehicle's ledger for the next cycle and marks verified claimed
// bookings completed. Claimed bookings never verified get no completion
// flag; their guests are told the shuttle left without them.
func (s *DefaultTripService) EndTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	t, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TripActive {
		return nil, ErrTripNotActive
	}

	now := s.clock()

	// Reset before completing: if the ledger cannot be cleaned the trip
	// must stay active and retryable.
	if err := s.Vehicles.ResetDirections(ctx, t.VehicleID, models.Directions...); err != nil {
		return nil, fmt.Errorf("trip end aborted: %w", err)
	}
	if err := s.Trips.Complete(ctx, t.ID, now); err != nil {
		return nil, err
	}
	t.Status = models.TripCompleted
	t.Phase = models.PhaseCompleted
	t.EndTime = &now

	if err := s.settleBookings(ctx, t); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("trip completed",
		zap.String("tripId", t.ID), zap.String("driverId", t.DriverID))

	s.Notifier.TripCompleted(ctx, t)
	return t, nil
}

func (s *DefaultTripService) CurrentTrip(ctx context.Context, driverID string) (*models.Trip, error) {
	return s.Trips.GetActiveByDriver(ctx, driverID)
}

func (s *DefaultTripService) TripBookings(ctx context.Context, tripID string) ([]models.Booking, error) {
	return s.Bookings.ListByTrip(ctx, tripID)
}

// settleBookings completes the verified claims of a finished trip and
// notifies guests whose claimed bookings were never verified.
func (s *DefaultTripService) settleBookings(ctx context.Context, t *models.Trip) error {
	completed, err := s.Bookings.MarkCompletedVerified(ctx, t.ID)
	if err != nil {
		return err
	}

	claimed, err := s.Bookings.ListByTrip(ctx, t.ID)
	if err != nil {
		return err
	}
	missed := 0
	for i := range claimed {
		b := &claimed[i]
		if !b.Verified && !b.Completed && !b.Cancelled {
			missed++
			s.Notifier.BookingMissed(ctx, b)
		}
	}

	utils.GetLogger().Info("trip bookings settled",
		zap.String("tripId", t.ID), zap.Int64("completed", completed), zap.Int("missed", missed))
	return nil
}

// activeWindow resolves the duty window covering now for the driver.
func (s *DefaultTripService) activeWindow(ctx context.Context, driverID string, now time.Time) (models.DutyWindow, error) {
	dayStart := now.Truncate(24 * time.Hour)
	windows, err := s.Windows.WindowsForDriver(ctx, driverID, dayStart.AddDate(0, 0, -1), dayStart.AddDate(0, 0, 2))
	if err != nil {
		return models.DutyWindow{}, err
	}
	window, ok := scheduleRepo.ActiveWindow(windows, now)
	if !ok {
		return models.DutyWindow{}, ErrNoDutyWindow
	}
	return window, nil
}

func claimableIDs(pool []models.Booking) []string {
	ids := make([]string, 0, len(pool))
	for i := range pool {
		if pool[i].Claimable() {
			ids = append(ids, pool[i].ID)
		}
	}
	return ids
}
