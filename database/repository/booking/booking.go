package bookingRepo

import (
	"context"
	"errors"
	"time"

	"smartpark/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrSpotNotAvailable is returned by CreateWithReservation when the
// spot's compare-and-set from "available" to "reserved" matched
// nothing, meaning another writer claimed the spot first. The whole
// transaction is rolled back.
var ErrSpotNotAvailable = errors.New("spot is no longer available")

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)

	// FindActiveOverlap returns an active booking on the spot whose
	// window intersects [start, end), or nil when there is none.
	FindActiveOverlap(ctx context.Context, spotID string, start, end time.Time) (*models.Booking, error)

	// CountActiveBySpot counts non-terminal bookings referencing the spot.
	CountActiveBySpot(ctx context.Context, spotID string) (int64, error)

	// CreateWithReservation inserts the booking and flips its spot from
	// "available" to "reserved" in a single transaction.
	CreateWithReservation(ctx context.Context, booking *models.Booking) error

	// SetQRCode stores the proof-of-booking token on the booking.
	SetQRCode(ctx context.Context, id, qr string) error

	// TransitionIfActive moves the booking to a terminal state only if
	// it is still active, reporting whether the transition happened.
	TransitionIfActive(ctx context.Context, id, to string) (bool, error)

	// FindExpired returns active bookings whose window has fully elapsed.
	FindExpired(ctx context.Context, now time.Time) ([]models.Booking, error)

	// FindNoShowCandidates returns active bookings whose grace period
	// has lapsed but whose window has not yet ended.
	FindNoShowCandidates(ctx context.Context, now time.Time, grace time.Duration) ([]models.Booking, error)
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
