package notification

import (
	"context"

	"smartpark/models"
)

// Service defines booking email notifications. Implementations are
// best-effort: the booking flow logs failures and carries on.
type Service interface {
	SendBookingConfirmation(ctx context.Context, booking models.Booking, user models.User, spot models.ParkingSpot) error
	SendBookingCancellation(ctx context.Context, booking models.Booking, user models.User, spot models.ParkingSpot) error
}
