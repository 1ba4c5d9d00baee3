package booking

import (
	"context"

	bookingRepo "smartpark/database/repository/booking"
	spotRepo "smartpark/database/repository/spot"
	userRepo "smartpark/database/repository/user"
	"smartpark/models"
	"smartpark/services/notification"

	"go.uber.org/zap"
)

// Service is the booking lifecycle engine: availability checking,
// creation, listing and the two terminal transitions driven by users
// and admins. The reconciliation sweeps in cron/ drive the remaining
// transitions.
type Service interface {
	Create(ctx context.Context, principal models.Principal, in models.CreateBookingInput) (*models.BookingView, error)
	Get(ctx context.Context, principal models.Principal, id string) (*models.BookingView, error)
	List(ctx context.Context, principal models.Principal) ([]models.BookingView, error)
	Cancel(ctx context.Context, principal models.Principal, id string) (*models.Booking, error)
	Complete(ctx context.Context, principal models.Principal, id string) (*models.Booking, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Bookings bookingRepo.BookingRepository
	Spots    spotRepo.SpotRepository
	Users    userRepo.UserRepository
	Notifier notification.Service
	Logger   *zap.Logger
}

var _ Service = (*DefaultService)(nil)
