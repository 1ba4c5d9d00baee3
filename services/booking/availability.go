package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	spotRepo "smartpark/database/repository/spot"
	"smartpark/models"
)

// NormalizeVehicleNumber uppercases and trims a vehicle identifier.
func NormalizeVehicleNumber(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// validateWindow rejects malformed requests before any read or write.
func validateWindow(in models.CreateBookingInput) error {
	if NormalizeVehicleNumber(in.VehicleNumber) == "" {
		return NewValidationError("vehicle number is required")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return NewValidationError("start and end time are required")
	}
	if !in.EndTime.After(in.StartTime) {
		return NewValidationError("end time must be after start time")
	}
	if BillableHours(in.StartTime, in.EndTime) < 1 {
		return NewValidationError("booking duration must be positive")
	}
	return nil
}

// canBook decides admissibility for a spot and window: the spot must
// exist and be available, and no active booking on it may overlap
// [start, end). It performs no writes.
func (s *DefaultService) canBook(ctx context.Context, spotID string, start, end time.Time) (*models.ParkingSpot, error) {
	spot, err := s.Spots.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, spotRepo.ErrNotFound) {
			return nil, NewNotFoundError("parking spot not found")
		}
		return nil, fmt.Errorf("availability check failed: %w", err)
	}

	if spot.Status != models.SpotAvailable {
		return nil, NewConflictError(ReasonSpotUnavailable, "parking spot is not available")
	}

	conflict, err := s.Bookings.FindActiveOverlap(ctx, spotID, start, end)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if conflict != nil {
		return nil, NewConflictError(ReasonTimeConflict, "spot is already booked for this time slot")
	}

	return spot, nil
}
