// File: services/booking/fakes_test.go
package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "shuttle/database/repository/booking"
	vehicleRepo "shuttle/database/repository/vehicle"
	"shuttle/models"
)

// fakeVehicleRepo is an in-memory VehicleRepository whose ledger
// methods follow the same conditional semantics as the Mongo ones.
type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]*models.Vehicle
}

func newFakeVehicleRepo(vehicles ...*models.Vehicle) *fakeVehicleRepo {
	repo := &fakeVehicleRepo{vehicles: make(map[string]*models.Vehicle)}
	for _, v := range vehicles {
		if v.SeatsHeld == nil {
			v.SeatsHeld = map[models.Direction]int{}
		}
		if v.SeatsConfirmed == nil {
			v.SeatsConfirmed = map[models.Direction]int{}
		}
		repo.vehicles[v.ID] = v
	}
	return repo
}

func (r *fakeVehicleRepo) Create(ctx context.Context, v *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[v.ID] = v
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVehicleRepo) ListActiveByHotel(ctx context.Context, hotelID string) ([]models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Vehicle
	for _, v := range r.vehicles {
		if v.HotelID == hotelID && v.Active {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) SetActive(ctx context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	v.Active = active
	return nil
}

func (r *fakeVehicleRepo) AssignDriver(ctx context.Context, id, driverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	v.AssignedDriverID = driverID
	return nil
}

func (r *fakeVehicleRepo) ReserveSeats(ctx context.Context, id string, dir models.Direction, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	v.SeatsHeld[dir] += n
	return nil
}

func (r *fakeVehicleRepo) ReserveSeatsStrict(ctx context.Context, id string, dir models.Direction, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	if v.SeatsHeld[dir]+v.SeatsConfirmed[dir]+n > v.CapacityFor(dir) {
		return vehicleRepo.ErrVehicleFull
	}
	v.SeatsHeld[dir] += n
	return nil
}

func (r *fakeVehicleRepo) ConfirmSeats(ctx context.Context, id string, dir models.Direction, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	if v.SeatsHeld[dir] < n {
		return vehicleRepo.ErrInsufficientHeldSeats
	}
	v.SeatsHeld[dir] -= n
	v.SeatsConfirmed[dir] += n
	return nil
}

func (r *fakeVehicleRepo) ReleaseSeats(ctx context.Context, id string, dir models.Direction, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	v.SeatsHeld[dir] -= n
	if v.SeatsHeld[dir] < 0 {
		v.SeatsHeld[dir] = 0
	}
	return nil
}

func (r *fakeVehicleRepo) ReleaseConfirmedSeats(ctx context.Context, id string, dir models.Direction, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	v.SeatsConfirmed[dir] -= n
	if v.SeatsConfirmed[dir] < 0 {
		v.SeatsConfirmed[dir] = 0
	}
	return nil
}

func (r *fakeVehicleRepo) ResetDirections(ctx context.Context, id string, dirs ...models.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	for _, dir := range dirs {
		v.SeatsHeld[dir] = 0
		v.SeatsConfirmed[dir] = 0
	}
	return nil
}

func (r *fakeVehicleRepo) held(id string, dir models.Direction) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vehicles[id].SeatsHeld[dir]
}

func (r *fakeVehicleRepo) confirmed(id string, dir models.Direction) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vehicles[id].SeatsConfirmed[dir]
}

// fakeBookingRepo mirrors the conditional transition filters of the
// Mongo repository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.CreatedAt = time.Now()
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) ListByGuest(ctx context.Context, guestID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.GuestID == guestID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByTrip(ctx context.Context, tripID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TripID == tripID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) MarkHeld(ctx context.Context, id, vehicleID string, heldAt, heldUntil time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Reservation.Held || b.Reservation.Confirmed || b.Cancelled {
		return bookingRepo.ErrInvalidReservationState
	}
	b.VehicleID = vehicleID
	b.Reservation.Held = true
	b.Reservation.HeldAt = &heldAt
	b.Reservation.HeldUntil = &heldUntil
	return nil
}

func (r *fakeBookingRepo) MarkConfirmed(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if !b.Reservation.Held {
		return bookingRepo.ErrInvalidReservationState
	}
	b.Reservation.Held = false
	b.Reservation.HeldAt = nil
	b.Reservation.HeldUntil = nil
	b.Reservation.Confirmed = true
	b.Reservation.ConfirmedAt = &at
	b.NeedsStaffVerification = false
	return nil
}

func (r *fakeBookingRepo) ClearHold(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, bookingRepo.ErrBookingNotFound
	}
	if !b.Reservation.Held {
		return false, nil
	}
	b.Reservation.Held = false
	b.Reservation.HeldAt = nil
	b.Reservation.HeldUntil = nil
	b.VehicleID = ""
	return true, nil
}

func (r *fakeBookingRepo) MarkCancelled(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Cancelled = true
	return nil
}

func (r *fakeBookingRepo) MarkVerified(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Verified = true
	return nil
}

func (r *fakeBookingRepo) MarkCompletedVerified(ctx context.Context, tripID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.TripID == tripID && b.Verified && !b.Cancelled && !b.Completed {
			b.Completed = true
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) ListConfirmedUnclaimed(ctx context.Context, vehicleID string, dir models.Direction) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.VehicleID == vehicleID && b.Direction == dir && b.Reservation.Confirmed && b.TripID == "" && !b.Cancelled && !b.Completed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ClaimForTrip(ctx context.Context, bookingIDs []string, tripID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range bookingIDs {
		b, ok := r.bookings[id]
		if !ok || b.TripID != "" {
			continue
		}
		b.TripID = tripID
		n++
	}
	return n, nil
}

func (r *fakeBookingRepo) DetachUnverified(ctx context.Context, tripID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.TripID == tripID && !b.Verified && !b.Completed {
			b.TripID = ""
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) DetachAll(ctx context.Context, tripID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.TripID == tripID {
			b.TripID = ""
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) ListUnassigned(ctx context.Context, hotelID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.HotelID == hotelID && b.VehicleID == "" && !b.Cancelled && !b.Completed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListExpiredHolds(ctx context.Context, now time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Reservation.Held && b.Reservation.HeldUntil != nil && now.After(*b.Reservation.HeldUntil) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListStaleUnverified(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.NeedsStaffVerification && !b.Cancelled && b.CreatedAt.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// fakeScheduleRepo serves a fixed set of windows.
type fakeScheduleRepo struct {
	windows []models.DutyWindow
}

func (r *fakeScheduleRepo) Create(ctx context.Context, w *models.DutyWindow) error {
	r.windows = append(r.windows, *w)
	return nil
}

func (r *fakeScheduleRepo) WindowsForDriver(ctx context.Context, driverID string, from, to time.Time) ([]models.DutyWindow, error) {
	var out []models.DutyWindow
	for _, w := range r.windows {
		if w.DriverID == driverID && w.Overlaps(from, to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) WindowsForVehicle(ctx context.Context, vehicleID string, from, to time.Time) ([]models.DutyWindow, error) {
	var out []models.DutyWindow
	for _, w := range r.windows {
		if w.VehicleID == vehicleID && w.Overlaps(from, to) {
			out = append(out, w)
		}
	}
	return out, nil
}

// fakeDispatcher records notification calls.
type fakeDispatcher struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
	missed    []string
}

func (d *fakeDispatcher) BookingConfirmed(ctx context.Context, b *models.Booking) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirmed = append(d.confirmed, b.ID)
}

func (d *fakeDispatcher) BookingCancelled(ctx context.Context, b *models.Booking, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelled = append(d.cancelled, b.ID)
}

func (d *fakeDispatcher) TripStarted(ctx context.Context, t *models.Trip, claimed int) {}
func (d *fakeDispatcher) TripReturnStarted(ctx context.Context, t *models.Trip)        {}
func (d *fakeDispatcher) TripCompleted(ctx context.Context, t *models.Trip)            {}

func (d *fakeDispatcher) BookingMissed(ctx context.Context, b *models.Booking) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.missed = append(d.missed, b.ID)
}
