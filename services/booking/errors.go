package booking

import "errors"

// Expected-outcome errors: the caller maps these to user-facing results
// ("no seats available", "hold expired"), never to 5xx responses.
var (
	// ErrHoldExpired signals a confirm attempted after the hold's
	// deadline. The ledger is left untouched; the expiry sweep will
	// reclaim the seats.
	ErrHoldExpired = errors.New("hold expired")
	// ErrAlreadyReserved signals a hold attempted on a booking that
	// already holds or has confirmed seats.
	ErrAlreadyReserved = errors.New("booking already has a reservation")
	// ErrNotHeld signals a confirm on a booking without an active hold.
	ErrNotHeld = errors.New("booking holds no seats")
	// ErrBookingCancelled signals an operation on a cancelled booking.
	ErrBookingCancelled = errors.New("booking is cancelled")
	// ErrNoSeatsAvailable signals a manual assignment to a vehicle
	// without enough free seats.
	ErrNoSeatsAvailable = errors.New("vehicle has insufficient free seats")
)
