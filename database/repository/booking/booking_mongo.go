package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartpark/database"
	"smartpark/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB. It holds
// a handle on the spots collection as well because reserving a spot and
// recording the booking happen in one transaction.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	spotColl    *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{
		bookingColl: database.Collection("bookings"),
		spotColl:    database.Collection("spots"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) SetQRCode(ctx context.Context, id, qr string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.bookingColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"qrCode": qr}})
	if err != nil {
		return fmt.Errorf("failed to store qr code for booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) TransitionIfActive(ctx context.Context, id, to string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "bookingStatus": models.BookingActive}
	res, err := r.bookingColl.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"bookingStatus": to}})
	if err != nil {
		return false, fmt.Errorf("failed to transition booking %s to %s: %w", id, to, err)
	}
	return res.ModifiedCount > 0, nil
}
