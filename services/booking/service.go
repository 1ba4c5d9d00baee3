package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "smartpark/database/repository/booking"
	"smartpark/models"
	"smartpark/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create runs the availability check and, on approval, records the
// booking and reserves the spot as one unit. QR encoding and the
// confirmation email are best-effort and never fail the request.
func (s *DefaultService) Create(ctx context.Context, principal models.Principal, in models.CreateBookingInput) (*models.BookingView, error) {
	if err := validateWindow(in); err != nil {
		return nil, err
	}

	spot, err := s.canBook(ctx, in.SpotID, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        principal.ID,
		SpotID:        spot.ID,
		VehicleNumber: NormalizeVehicleNumber(in.VehicleNumber),
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		TotalAmount:   TotalAmount(in.StartTime, in.EndTime, spot.PricePerHour),
		PaymentStatus: models.PaymentPending,
		BookingStatus: models.BookingActive,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.Bookings.CreateWithReservation(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSpotNotAvailable) {
			// Lost the compare-and-set race to a concurrent request or
			// an administrative change; the transaction left no trace.
			return nil, NewConflictError(ReasonSpotUnavailable, "parking spot is not available")
		}
		// The reserve step failed mid-flight. The transaction should
		// have rolled back, but the ledger and registry can no longer
		// be assumed consistent.
		return nil, NewFatalError("booking write failed: " + err.Error())
	}

	if qr, err := utils.EncodeBookingQR(models.QRPayload{
		BookingID:     b.ID,
		SpotNumber:    spot.SpotNumber,
		VehicleNumber: b.VehicleNumber,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
	}); err != nil {
		s.Logger.Warn("failed to encode booking qr", zap.String("bookingId", b.ID), zap.Error(err))
	} else if err := s.Bookings.SetQRCode(ctx, b.ID, qr); err != nil {
		s.Logger.Warn("failed to store booking qr", zap.String("bookingId", b.ID), zap.Error(err))
	} else {
		b.QRCode = qr
	}

	s.notify(ctx, notifyConfirmation, b, spot)

	return &models.BookingView{Booking: *b, Spot: spotSummary(spot)}, nil
}

// Get returns a single booking, restricted to its owner or an admin.
func (s *DefaultService) Get(ctx context.Context, principal models.Principal, id string) (*models.BookingView, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != principal.ID && !principal.IsAdmin() {
		return nil, NewForbiddenError("access denied")
	}
	return s.withSpot(ctx, b), nil
}

// List returns all bookings for admins and the caller's own bookings
// otherwise, newest first, with spot summaries joined at read time.
func (s *DefaultService) List(ctx context.Context, principal models.Principal) ([]models.BookingView, error) {
	var (
		bookings []models.Booking
		err      error
	)
	if principal.IsAdmin() {
		bookings, err = s.Bookings.ListAll(ctx)
	} else {
		bookings, err = s.Bookings.ListByUser(ctx, principal.ID)
	}
	if err != nil {
		return nil, err
	}

	views := make([]models.BookingView, 0, len(bookings))
	spots := make(map[string]*models.SpotSummary)
	for _, b := range bookings {
		summary, seen := spots[b.SpotID]
		if !seen {
			if spot, err := s.Spots.GetByID(ctx, b.SpotID); err == nil {
				summary = spotSummary(spot)
			}
			spots[b.SpotID] = summary
		}
		views = append(views, models.BookingView{Booking: b, Spot: summary})
	}
	return views, nil
}

// Cancel moves an active booking to cancelled. Only the owner or an
// admin may cancel. The spot is reverted to available only if it is
// still reserved; a spot that has since moved to occupied or
// maintenance is left alone. A second cancel reports AlreadyTerminal
// without touching the spot again.
func (s *DefaultService) Cancel(ctx context.Context, principal models.Principal, id string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != principal.ID && !principal.IsAdmin() {
		return nil, NewForbiddenError("access denied")
	}

	moved, err := s.Bookings.TransitionIfActive(ctx, id, models.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, NewConflictError(ReasonAlreadyTerminal, "booking is already in a terminal state")
	}
	b.BookingStatus = models.BookingCancelled

	released, err := s.Spots.UpdateStatusIf(ctx, b.SpotID, []string{models.SpotReserved}, models.SpotAvailable)
	if err != nil {
		return nil, NewFatalError("booking cancelled but spot release failed: " + err.Error())
	}
	if !released {
		s.Logger.Info("spot not reverted on cancel, status changed elsewhere",
			zap.String("spotId", b.SpotID), zap.String("bookingId", b.ID))
	}

	if spot, err := s.Spots.GetByID(ctx, b.SpotID); err == nil {
		s.notify(ctx, notifyCancellation, b, spot)
	}

	return b, nil
}

// Complete is the admin-forced end of a session. It releases the spot
// back to available unless an admin has moved it to maintenance.
func (s *DefaultService) Complete(ctx context.Context, principal models.Principal, id string) (*models.Booking, error) {
	if !principal.IsAdmin() {
		return nil, NewForbiddenError("admin access required")
	}

	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	moved, err := s.Bookings.TransitionIfActive(ctx, id, models.BookingCompleted)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, NewConflictError(ReasonAlreadyTerminal, "booking is already in a terminal state")
	}
	b.BookingStatus = models.BookingCompleted

	if _, err := s.Spots.UpdateStatusIf(ctx, b.SpotID,
		[]string{models.SpotReserved, models.SpotOccupied}, models.SpotAvailable); err != nil {
		return nil, NewFatalError("booking completed but spot release failed: " + err.Error())
	}

	return b, nil
}

func (s *DefaultService) getBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewNotFoundError("booking not found")
		}
		return nil, err
	}
	return b, nil
}

func (s *DefaultService) withSpot(ctx context.Context, b *models.Booking) *models.BookingView {
	view := &models.BookingView{Booking: *b}
	if spot, err := s.Spots.GetByID(ctx, b.SpotID); err == nil {
		view.Spot = spotSummary(spot)
	}
	return view
}

func spotSummary(spot *models.ParkingSpot) *models.SpotSummary {
	if spot == nil {
		return nil
	}
	return &models.SpotSummary{
		ID:         spot.ID,
		SpotNumber: spot.SpotNumber,
		Floor:      spot.Floor,
		Section:    spot.Section,
		Type:       spot.Type,
	}
}

const (
	notifyConfirmation = "confirmation"
	notifyCancellation = "cancellation"
)

// notify dispatches the booking email best-effort. Lookup or enqueue
// failures are logged and never escalate to the caller.
func (s *DefaultService) notify(ctx context.Context, kind string, b *models.Booking, spot *models.ParkingSpot) {
	if s.Notifier == nil {
		return
	}
	user, err := s.Users.GetByID(ctx, b.UserID)
	if err != nil {
		s.Logger.Warn("skipping booking notification, user lookup failed",
			zap.String("bookingId", b.ID), zap.Error(err))
		return
	}

	switch kind {
	case notifyConfirmation:
		err = s.Notifier.SendBookingConfirmation(ctx, *b, *user, *spot)
	case notifyCancellation:
		err = s.Notifier.SendBookingCancellation(ctx, *b, *user, *spot)
	}
	if err != nil {
		s.Logger.Warn("failed to dispatch booking notification",
			zap.String("bookingId", b.ID), zap.String("kind", kind), zap.Error(err))
	}
}
