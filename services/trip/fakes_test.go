// File: services/trip/fakes_test.go
package trip

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	bookingRepo "shuttle/database/repository/booking"
	tripRepo "shuttle/database/repository/trip"
	vehicleRepo "shuttle/database/repository/vehicle"
	"shuttle/models"
)

// fakeTripRepo is an in-memory TripRepository.
type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[string]*models.Trip
	seq   int
}

func newFakeTripRepo(trips ...*models.Trip) *fakeTripRepo {
	repo := &fakeTripRepo{trips: make(map[string]*models.Trip)}
	for _, t := range trips {
		repo.seq++
		t.CreatedAt = time.Unix(int64(repo.seq), 0)
		if t.StartTime.IsZero() {
			t.StartTime = t.CreatedAt
		}
		repo.trips[t.ID] = t
	}
	return repo
}

func (r *fakeTripRepo) Create(ctx context.Context, t *models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.CreatedAt = time.Unix(int64(r.seq), 0)
	if t.StartTime.IsZero() {
		t.StartTime = t.CreatedAt
	}
	copied := *t
	r.trips[t.ID] = &copied
	return nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return nil, tripRepo.ErrTripNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTripRepo) ListActiveByDriver(ctx context.Context, driverID string) ([]models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Trip
	for _, t := range r.trips {
		if t.DriverID == driverID && t.Status == models.TripActive {
			out = append(out, *t)
		}
	}
	// Newest-first by start time, matching the Mongo query's sort key.
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (r *fakeTripRepo) GetActiveByDriver(ctx context.Context, driverID string) (*models.Trip, error) {
	active, err := r.ListActiveByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, tripRepo.ErrTripNotFound
	}
	return &active[0], nil
}

func (r *fakeTripRepo) BeginReturn(ctx context.Context, id string, outboundEnd, returnStart time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return tripRepo.ErrTripNotFound
	}
	if t.Status != models.TripActive || t.Phase != models.PhaseOutbound {
		return tripRepo.ErrIllegalPhaseTransition
	}
	t.Phase = models.PhaseReturn
	t.OutboundEndTime = &outboundEnd
	t.ReturnStartTime = &returnStart
	return nil
}

func (r *fakeTripRepo) Complete(ctx context.Context, id string, endTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return tripRepo.ErrTripNotFound
	}
	if t.Status != models.TripActive {
		return tripRepo.ErrIllegalPhaseTransition
	}
	t.Status = models.TripCompleted
	t.Phase = models.PhaseCompleted
	t.EndTime = &endTime
	return nil
}

func (r *fakeTripRepo) AddClaimedBookings(ctx context.Context, id string, bookingIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return tripRepo.ErrTripNotFound
	}
	t.BookingIDs = append(t.BookingIDs, bookingIDs...)
	return nil
}

// fakeLedger is a VehicleRepository that only tracks ledger resets; the
// trip service never reads vehicle documents.
type fakeLedger struct {
	mu         sync.Mutex
	resets     map[string]int
	failResets bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{resets: make(map[string]int)}
}

var errLedgerDown = errors.New("ledger unavailable")

func (r *fakeLedger) ResetDirections(ctx context.Context, vehicleID string, dirs ...models.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failResets {
		return errLedgerDown
	}
	r.resets[vehicleID]++
	return nil
}

func (r *fakeLedger) Create(ctx context.Context, v *models.Vehicle) error { return nil }
func (r *fakeLedger) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	return nil, vehicleRepo.ErrVehicleNotFound
}
func (r *fakeLedger) ListActiveByHotel(ctx context.Context, hotelID string) ([]models.Vehicle, error) {
	return nil, nil
}
func (r *fakeLedger) SetActive(ctx context.Context, id string, active bool) error { return nil }
func (r *fakeLedger) AssignDriver(ctx context.Context, id, driverID string) error { return nil }
func (r *fakeLedger) ReserveSeats(ctx context.Context, id string, dir models.Direction, n int) error {
	return nil
}
func (r *fakeLedger) ReserveSeatsStrict(ctx context.Context, id string, dir models.Direction, n int) error {
	return nil
}
func (r *fakeLedger) ConfirmSeats(ctx context.Context, id string, dir models.Direction, n int) error {
	return nil
}
func (r *fakeLedger) ReleaseSeats(ctx context.Context, id string, dir models.Direction, n int) error {
	return nil
}
func (r *fakeLedger) ReleaseConfirmedSeats(ctx context.Context, id string, dir models.Direction, n int) error {
	return nil
}

func (r *fakeLedger) resetCount(vehicleID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resets[vehicleID]
}

// fakeBookingStore implements the slice of BookingRepository the trip
// service touches.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingStore(bookings ...*models.Booking) *fakeBookingStore {
	repo := &fakeBookingStore{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingStore) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingStore) ListByGuest(ctx context.Context, guestID string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingStore) ListByTrip(ctx context.Context, tripID string) ([]models.Booking, error) {
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

func (r *fakeBookingStore) MarkHeld(ctx context.Context, id, vehicleID string, heldAt, heldUntil time.Time) error {
	return nil
}
func (r *fakeBookingStore) MarkConfirmed(ctx context.Context, id string, at time.Time) error {
	return nil
}
func (r *fakeBookingStore) ClearHold(ctx context.Context, id string) (bool, error) {
	return false, nil
}
func (r *fakeBookingStore) MarkCancelled(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Cancelled = true
	return nil
}

func (r *fakeBookingStore) MarkVerified(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Verified = true
	return nil
}

func (r *fakeBookingStore) MarkCompletedVerified(ctx context.Context, tripID string) (int64, error) {
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

func (r *fakeBookingStore) ListConfirmedUnclaimed(ctx context.Context, vehicleID string, dir models.Direction) ([]models.Booking, error) {
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

func (r *fakeBookingStore) ClaimForTrip(ctx context.Context, bookingIDs []string, tripID string) (int64, error) {
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

func (r *fakeBookingStore) DetachUnverified(ctx context.Context, tripID string) (int64, error) {
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

func (r *fakeBookingStore) DetachAll(ctx context.Context, tripID string) (int64, error) {
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

func (r *fakeBookingStore) ListUnassigned(ctx context.Context, hotelID string) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingStore) ListExpiredHolds(ctx context.Context, now time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingStore) ListStaleUnverified(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	return nil, nil
}

// fakeWindows serves a fixed set of duty windows.
type fakeWindows struct {
	windows []models.DutyWindow
}

func (r *fakeWindows) Create(ctx context.Context, w *models.DutyWindow) error {
	r.windows = append(r.windows, *w)
	return nil
}

func (r *fakeWindows) WindowsForDriver(ctx context.Context, driverID string, from, to time.Time) ([]models.DutyWindow, error) {
	var out []models.DutyWindow
	for _, w := range r.windows {
		if w.DriverID == driverID && w.Overlaps(from, to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWindows) WindowsForVehicle(ctx context.Context, vehicleID string, from, to time.Time) ([]models.DutyWindow, error) {
	var out []models.DutyWindow
	for _, w := range r.windows {
		if w.VehicleID == vehicleID && w.Overlaps(from, to) {
			out = append(out, w)
		}
	}
	return out, nil
}

// fakeNotifier records trip-related pushes.
type fakeNotifier struct {
	mu        sync.Mutex
	started   int
	returned  int
	completed int
	missed    []string
}

func (d *fakeNotifier) BookingConfirmed(ctx context.Context, b *models.Booking)                {}
func (d *fakeNotifier) BookingCancelled(ctx context.Context, b *models.Booking, reason string) {}

func (d *fakeNotifier) TripStarted(ctx context.Context, t *models.Trip, claimed int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started++
}

func (d *fakeNotifier) TripReturnStarted(ctx context.Context, t *models.Trip) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.returned++
}

func (d *fakeNotifier) TripCompleted(ctx context.Context, t *models.Trip) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.completed++
}

func (d *fakeNotifier) BookingMissed(ctx context.Context, b *models.Booking) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.missed = append(d.missed, b.ID)
}
