package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartfit/smartfit-api/internal/models"
)

type MongoBookingStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewBookingStore(coll *mongo.Collection, timeout time.Duration) *MongoBookingStore {
	return &MongoBookingStore{coll: coll, timeout: timeout}
}

func (s *MongoBookingStore) Insert(ctx context.Context, booking *models.Booking) (models.InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.InsertOne(ctx, booking)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert booking: %w", err)
	}
	return insertResult(res), nil
}

func (s *MongoBookingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return findOne[models.Booking](ctx, s.coll, bson.M{"_id": id})
}

func (s *MongoBookingStore) ListByUser(ctx context.Context, email string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return findAll[models.Booking](ctx, s.coll, bson.M{"userEmail": email})
}

func (s *MongoBookingStore) ListByTrainer(ctx context.Context, email string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return findAll[models.Booking](ctx, s.coll, bson.M{"trainerEmail": email})
}

func (s *MongoBookingStore) ListAll(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return findAll[models.Booking](ctx, s.coll, bson.M{})
}

// Confirm moves a booking to confirmed and records when it happened.
func (s *MongoBookingStore) Confirm(ctx context.Context, id primitive.ObjectID, at time.Time) (models.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": models.BookingConfirmed, "confirmedAt": at}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("confirm booking: %w", err)
	}
	return updateResult(res), nil
}
