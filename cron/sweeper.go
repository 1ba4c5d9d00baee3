package cron

import (
	"context"
	"time"

	bookingRepo "smartpark/database/repository/booking"
	spotRepo "smartpark/database/repository/spot"
	"smartpark/models"

	"go.uber.org/zap"
)

// Sweeper is the reconciliation loop: it advances stale bookings to
// terminal states and releases their spots, independent of any client
// request. Each per-booking transition is a compare-and-set so a
// booking is claimed by at most one scan and a failure on one item
// never aborts the rest of the sweep.
type Sweeper struct {
	Bookings bookingRepo.BookingRepository
	Spots    spotRepo.SpotRepository
	Interval time.Duration
	Grace    time.Duration
	Logger   *zap.Logger
}

// Run executes sweeps on a fixed period until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Logger.Info("reconciliation sweeper started",
		zap.Duration("interval", s.Interval), zap.Duration("gracePeriod", s.Grace))

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("reconciliation sweeper shutting down")
			return
		case <-ticker.C:
			s.RunOnce(ctx, time.Now().UTC())
		}
	}
}

// RunOnce performs one full sweep cycle at the given instant. The
// expiry scan takes endTime < now and the no-show scan takes
// endTime > now, so the two can never claim the same booking.
func (s *Sweeper) RunOnce(ctx context.Context, now time.Time) {
	s.sweepExpired(ctx, now)
	s.sweepNoShows(ctx, now)
}

// sweepExpired completes active bookings whose window has elapsed.
// This is the normal end-of-session transition, not an overstay.
func (s *Sweeper) sweepExpired(ctx context.Context, now time.Time) {
	expired, err := s.Bookings.FindExpired(ctx, now)
	if err != nil {
		s.Logger.Error("expiry scan query failed", zap.Error(err))
		return
	}
	if len(expired) > 0 {
		s.Logger.Info("expiry scan found stale bookings", zap.Int("count", len(expired)))
	}

	for _, b := range expired {
		moved, err := s.Bookings.TransitionIfActive(ctx, b.ID, models.BookingCompleted)
		if err != nil {
			s.Logger.Error("failed to complete expired booking",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		if !moved {
			// Another writer got there first.
			continue
		}

		if _, err := s.Spots.UpdateStatusIf(ctx, b.SpotID,
			[]string{models.SpotReserved, models.SpotOccupied}, models.SpotAvailable); err != nil {
			s.Logger.Error("failed to release spot after expiry",
				zap.String("bookingId", b.ID), zap.String("spotId", b.SpotID), zap.Error(err))
			continue
		}

		s.Logger.Info("auto-completed expired booking",
			zap.String("bookingId", b.ID), zap.String("spotId", b.SpotID))
	}
}

// sweepNoShows marks bookings whose grace period lapsed without the
// spot ever leaving "reserved", meaning the user never arrived. A spot
// that is "occupied" is left alone.
func (s *Sweeper) sweepNoShows(ctx context.Context, now time.Time) {
	candidates, err := s.Bookings.FindNoShowCandidates(ctx, now, s.Grace)
	if err != nil {
		s.Logger.Error("no-show scan query failed", zap.Error(err))
		return
	}

	for _, b := range candidates {
		spot, err := s.Spots.GetByID(ctx, b.SpotID)
		if err != nil {
			s.Logger.Error("failed to load spot during no-show scan",
				zap.String("bookingId", b.ID), zap.String("spotId", b.SpotID), zap.Error(err))
			continue
		}
		if spot.Status != models.SpotReserved {
			continue
		}

		moved, err := s.Bookings.TransitionIfActive(ctx, b.ID, models.BookingNoShow)
		if err != nil {
			s.Logger.Error("failed to mark booking as no-show",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		if !moved {
			continue
		}

		if _, err := s.Spots.UpdateStatusIf(ctx, b.SpotID,
			[]string{models.SpotReserved}, models.SpotAvailable); err != nil {
			s.Logger.Error("failed to release spot after no-show",
				zap.String("bookingId", b.ID), zap.String("spotId", b.SpotID), zap.Error(err))
			continue
		}

		s.Logger.Warn("no-show detected, spot released",
			zap.String("bookingId", b.ID), zap.String("spotId", b.SpotID))
	}
}
