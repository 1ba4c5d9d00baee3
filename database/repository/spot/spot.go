package spotRepo

import (
	"context"
	"errors"
	"time"

	"smartpark/models"
)

// ErrNotFound is returned when no spot matches the given id.
var ErrNotFound = errors.New("parking spot not found")

// ErrDuplicateSpotNumber is returned when a spot number is already taken.
var ErrDuplicateSpotNumber = errors.New("spot number already exists")

// SpotRepository defines persistence operations for parking spots.
type SpotRepository interface {
	Create(ctx context.Context, spot *models.ParkingSpot) error
	GetByID(ctx context.Context, id string) (*models.ParkingSpot, error)
	GetBySpotNumber(ctx context.Context, spotNumber string) (*models.ParkingSpot, error)
	List(ctx context.Context, filter models.SpotFilter) ([]models.ParkingSpot, error)
	Update(ctx context.Context, id string, in models.UpdateSpotInput) (*models.ParkingSpot, error)
	Delete(ctx context.Context, id string) error

	// UpdateStatusIf transitions the spot status to "to" only if the
	// current status is one of "from". It reports whether a document
	// was actually updated, so callers can distinguish a lost
	// compare-and-set race from success.
	UpdateStatusIf(ctx context.Context, id string, from []string, to string) (bool, error)
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
