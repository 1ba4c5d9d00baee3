package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartpark/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FindActiveOverlap returns an active booking on the spot whose window
// intersects [start, end). The canonical interval-intersection test is
// existing.start < end AND existing.end > start, so adjacent windows
// (existing.end == start) do not conflict.
func (r *MongoBookingRepo) FindActiveOverlap(ctx context.Context, spotID string, start, end time.Time) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"spotId":        spotID,
		"bookingStatus": models.BookingActive,
		"startTime":     bson.M{"$lt": end},
		"endTime":       bson.M{"$gt": start},
	}

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) CountActiveBySpot(ctx context.Context, spotID string) (int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"spotId": spotID, "bookingStatus": models.BookingActive}
	count, err := r.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings for spot %s: %w", spotID, err)
	}
	return count, nil
}

// FindExpired returns active bookings whose end time has passed.
func (r *MongoBookingRepo) FindExpired(ctx context.Context, now time.Time) ([]models.Booking, error) {
	return r.list(ctx, bson.M{
		"bookingStatus": models.BookingActive,
		"endTime":       bson.M{"$lt": now},
	})
}

// FindNoShowCandidates returns active bookings that started more than
// the grace period ago but have not yet ended. The windows here and in
// FindExpired are mutually exclusive on endTime.
func (r *MongoBookingRepo) FindNoShowCandidates(ctx context.Context, now time.Time, grace time.Duration) ([]models.Booking, error) {
	return r.list(ctx, bson.M{
		"bookingStatus": models.BookingActive,
		"startTime":     bson.M{"$lt": now.Add(-grace)},
		"endTime":       bson.M{"$gt": now},
	})
}
