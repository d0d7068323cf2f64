package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartfit/smartfit-api/internal/models"
)

// MongoLogStore stores one activity log kind in its own collection, keyed by
// the owner's email in the userEmail field.
type MongoLogStore[T any] struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewLogStore[T any](coll *mongo.Collection, timeout time.Duration) *MongoLogStore[T] {
	return &MongoLogStore[T]{coll: coll, timeout: timeout}
}

func (s *MongoLogStore[T]) Insert(ctx context.Context, doc *T) (models.InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert into %s: %w", s.coll.Name(), err)
	}
	return insertResult(res), nil
}

func (s *MongoLogStore[T]) ListByOwner(ctx context.Context, email string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return findAll[T](ctx, s.coll, bson.M{"userEmail": email})
}
