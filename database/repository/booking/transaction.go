package bookingRepo

import (
	"context"
	"fmt"

	"smartpark/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithReservation records the booking and flips its spot from
// "available" to "reserved" as one unit. Two concurrent requests for
// the same spot cannot both commit: the status filter on the spot
// update is a compare-and-set, and the loser's transaction aborts with
// ErrSpotNotAvailable leaving no partial state behind.
func (r *MongoBookingRepo) CreateWithReservation(ctx context.Context, booking *models.Booking) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{
			"id":     booking.SpotID,
			"status": models.SpotAvailable,
		}
		update := bson.M{"$set": bson.M{"status": models.SpotReserved}}

		res, err := r.spotColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("reserve spot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSpotNotAvailable
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
