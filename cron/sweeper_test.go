package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "smartpark/database/repository/booking"
	spotRepo "smartpark/database/repository/spot"
	"smartpark/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memSpots struct {
	mu    sync.Mutex
	spots map[string]*models.ParkingSpot
}

func (r *memSpots) Create(_ context.Context, s *models.ParkingSpot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.spots[s.ID] = &cp
	return nil
}

func (r *memSpots) GetByID(_ context.Context, id string) (*models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spots[id]
	if !ok {
		return nil, spotRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSpots) GetBySpotNumber(context.Context, string) (*models.ParkingSpot, error) {
	return nil, spotRepo.ErrNotFound
}

func (r *memSpots) List(context.Context, models.SpotFilter) ([]models.ParkingSpot, error) {
	return nil, nil
}

func (r *memSpots) Update(_ context.Context, id string, _ models.UpdateSpotInput) (*models.ParkingSpot, error) {
	return r.GetByID(context.Background(), id)
}

func (r *memSpots) Delete(context.Context, string) error { return nil }

func (r *memSpots) UpdateStatusIf(_ context.Context, id string, from []string, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spots[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if s.Status == f {
			s.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *memSpots) status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.spots[id].Status
}

type memBookings struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	// failTransition simulates a write failure for one booking so the
	// sweep's per-item independence can be observed.
	failTransition string
}

func (r *memBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBookings) ListAll(context.Context) ([]models.Booking, error) { return nil, nil }

func (r *memBookings) ListByUser(context.Context, string) ([]models.Booking, error) {
	return nil, nil
}

func (r *memBookings) FindActiveOverlap(context.Context, string, time.Time, time.Time) (*models.Booking, error) {
	return nil, nil
}
func (r *memBookings) CountActiveBySpot(context.Context, string) (int64, error) { return 0, nil }
func (r *memBookings) CreateWithReservation(context.Context, *models.Booking) error {
	return errors.New("not implemented")
}
func (r *memBookings) SetQRCode(context.Context, string, string) error { return nil }

func (r *memBookings) TransitionIfActive(_ context.Context, id, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == r.failTransition {
		return false, errors.New("simulated write conflict")
	}
	b, ok := r.bookings[id]
	if !ok || b.BookingStatus != models.BookingActive {
		return false, nil
	}
	b.BookingStatus = to
	return true, nil
}

func (r *memBookings) FindExpired(_ context.Context, now time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookingStatus == models.BookingActive && b.EndTime.Before(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookings) FindNoShowCandidates(_ context.Context, now time.Time, grace time.Duration) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookingStatus == models.BookingActive &&
			b.StartTime.Before(now.Add(-grace)) && b.EndTime.After(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookings) statusOf(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id].BookingStatus
}

func newSweeperFixture() (*Sweeper, *memSpots, *memBookings) {
	spots := &memSpots{spots: make(map[string]*models.ParkingSpot)}
	bookings := &memBookings{bookings: make(map[string]*models.Booking)}
	s := &Sweeper{
		Bookings: bookings,
		Spots:    spots,
		Interval: time.Minute,
		Grace:    15 * time.Minute,
		Logger:   zap.NewNop(),
	}
	return s, spots, bookings
}

func addSpot(spots *memSpots, id, status string) {
	spots.spots[id] = &models.ParkingSpot{ID: id, SpotNumber: id, Status: status, PricePerHour: 50}
}

func addBooking(bookings *memBookings, id, spotID string, start, end time.Time) {
	bookings.bookings[id] = &models.Booking{
		ID: id, UserID: "user-1", SpotID: spotID,
		StartTime: start, EndTime: end,
		BookingStatus: models.BookingActive,
	}
}

func TestExpirySweep(t *testing.T) {
	sweeper, spots, bookings := newSweeperFixture()
	now := time.Now().UTC()

	addSpot(spots, "spot-1", models.SpotReserved)
	addBooking(bookings, "b-1", "spot-1", now.Add(-3*time.Hour), now.Add(-time.Hour))

	sweeper.RunOnce(context.Background(), now)

	assert.Equal(t, models.BookingCompleted, bookings.statusOf("b-1"))
	assert.Equal(t, models.SpotAvailable, spots.status("spot-1"))
}

func TestExpirySweepReleasesOccupiedSpot(t *testing.T) {
	sweeper, spots, bookings := newSweeperFixture()
	now := time.Now().UTC()

	// The user arrived, the window then elapsed.
	addSpot(spots, "spot-1", models.SpotOccupied)
	addBooking(bookings, "b-1", "spot-1", now.Add(-3*time.Hour), now.Add(-time.Hour))

	sweeper.RunOnce(context.Background(), now)

	assert.Equal(t, models.BookingCompleted, bookings.statusOf("b-1"))
	assert.Equal(t, models.SpotAvailable, spots.status("spot-1"))
}

func TestExpirySweepDoesNotTouchMaintenanceSpot(t *testing.T) {
	sweeper, spots, bookings := newSweeperFixture()
	now := time.Now().UTC()

	addSpot(spots, "spot-1", models.SpotMaintenance)
	addBooking(bookings, "b-1", "spot-1", now.Add(-3*time.Hour), now.Add(-time.Hour))

	sweeper.RunOnce(context.Background(), now)

	assert.Equal(t, models.BookingCompleted, bookings.statusOf("b-1"))
	assert.Equal(t, models.SpotMaintenance, spots.status("spot-1"))
}

func TestNoShowSweep(t *testing.T) {
	sweeper, spots, bookings := newSweeperFixture()
	now := time.Now().UTC()

	// Started 20 minutes ago, spot never left "reserved": no-show.
	addSpot(spots, "spot-1", models.SpotReserved)
	addBooking(bookings, "b-1", "spot-1", now.Add(-20*time.Minute), now.Add(time.Hour))

	// Started 20 minutes ago but the user arrived: untouched.
	addSpot(spots, "spot-2", models.SpotOccupied)
	addBooking(bookings, "b-2", "spot-2", now.Add(-20*time.Minute), now.Add(time.Hour))

	// Still inside the grace period: untouched.
	addSpot(spots, "spot-3", models.SpotReserved)
	addBooking(bookings, "b-3", "spot-3", now.Add(-10*time.Minute), now.Add(time.Hour))

	sweeper.RunOnce(context.Background(), now)

	assert.Equal(t, models.BookingNoShow, bookings.statusOf("b-1"))
	assert.Equal(t, models.SpotAvailable, spots.status("spot-1"))

	assert.Equal(t, models.BookingActive, bookings.statusOf("b-2"))
	assert.Equal(t, models.SpotOccupied, spots.status("spot-2"))

	assert.Equal(t, models.BookingActive, bookings.statusOf("b-3"))
	assert.Equal(t, models.SpotReserved, spots.status("spot-3"))
}

func TestSweepScansAreMutuallyExclusive(t *testing.T) {
	sweeper, spots, bookings := newSweeperFixture()
	now := time.Now().UTC()

	// Expired and started long ago: only the expiry scan may claim it.
	addSpot(spots, "spot-1", models.SpotReserved)
	addBooking(bookings, "b-1", "spot-1", now.Add(-2*time.Hour), now.Add(-time.Minute))

	expired, err := bookings.FindExpired(context.Background(), now)
	require.NoError(t, err)
	noShows, err := bookings.FindNoShowCandidates(context.Background(), now, sweeper.Grace)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Empty(t, noShows)

	sweeper.RunOnce(context.Background(), now)
	assert.Equal(t, models.BookingCompleted, bookings.statusOf("b-1"))
}

func TestSweepContinuesPastFailingItem(t *testing.T) {
	sweeper, spots, bookings := newSweeperFixture()
	now := time.Now().UTC()

	addSpot(spots, "spot-1", models.SpotReserved)
	addBooking(bookings, "b-1", "spot-1", now.Add(-3*time.Hour), now.Add(-time.Hour))
	addSpot(spots, "spot-2", models.SpotReserved)
	addBooking(bookings, "b-2", "spot-2", now.Add(-3*time.Hour), now.Add(-time.Hour))

	bookings.failTransition = "b-1"
	sweeper.RunOnce(context.Background(), now)

	// b-1 failed but b-2 was still processed.
	assert.Equal(t, models.BookingActive, bookings.statusOf("b-1"))
	assert.Equal(t, models.BookingCompleted, bookings.statusOf("b-2"))
	assert.Equal(t, models.SpotAvailable, spots.status("spot-2"))
}
