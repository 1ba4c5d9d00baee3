package spotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartpark/database"
	"smartpark/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSpotRepo implements SpotRepository using MongoDB.
type MongoSpotRepo struct {
	coll *mongo.Collection
}

// NewMongoSpotRepo creates a new instance of SpotRepository using MongoDB.
func NewMongoSpotRepo() SpotRepository {
	repo := &MongoSpotRepo{coll: database.Collection("spots")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create spot indexes: %v\n", err)
	}
	return repo
}

func (r *MongoSpotRepo) Create(ctx context.Context, spot *models.ParkingSpot) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if spot.ID == "" {
		spot.ID = uuid.New().String()
	}
	if spot.CreatedAt.IsZero() {
		spot.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, spot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSpotNumber
		}
		return fmt.Errorf("failed to insert spot: %w", err)
	}
	return nil
}

func (r *MongoSpotRepo) GetByID(ctx context.Context, id string) (*models.ParkingSpot, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var spot models.ParkingSpot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&spot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch spot %s: %w", id, err)
	}
	return &spot, nil
}

func (r *MongoSpotRepo) GetBySpotNumber(ctx context.Context, spotNumber string) (*models.ParkingSpot, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var spot models.ParkingSpot
	if err := r.coll.FindOne(ctx, bson.M{"spotNumber": spotNumber}).Decode(&spot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch spot %s: %w", spotNumber, err)
	}
	return &spot, nil
}

func (r *MongoSpotRepo) List(ctx context.Context, filter models.SpotFilter) ([]models.ParkingSpot, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Floor != "" {
		query["floor"] = filter.Floor
	}

	opts := options.Find().SetSort(bson.D{{Key: "spotNumber", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list spots: %w", err)
	}
	defer cursor.Close(ctx)

	var spots []models.ParkingSpot
	if err := cursor.All(ctx, &spots); err != nil {
		return nil, fmt.Errorf("failed to decode spots: %w", err)
	}
	return spots, nil
}

func (r *MongoSpotRepo) Update(ctx context.Context, id string, in models.UpdateSpotInput) (*models.ParkingSpot, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if in.Floor != nil {
		set["floor"] = *in.Floor
	}
	if in.Section != nil {
		set["section"] = *in.Section
	}
	if in.Type != nil {
		set["type"] = *in.Type
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.PricePerHour != nil {
		set["pricePerHour"] = *in.PricePerHour
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var spot models.ParkingSpot
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&spot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update spot %s: %w", id, err)
	}
	return &spot, nil
}

func (r *MongoSpotRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete spot %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoSpotRepo) UpdateStatusIf(ctx context.Context, id string, from []string, to string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return false, fmt.Errorf("failed to transition spot %s to %s: %w", id, to, err)
	}
	return res.ModifiedCount > 0, nil
}
