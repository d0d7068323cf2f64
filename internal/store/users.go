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

type MongoUserStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewUserStore(coll *mongo.Collection, timeout time.Duration) *MongoUserStore {
	return &MongoUserStore{coll: coll, timeout: timeout}
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return findOne[models.User](ctx, s.coll, bson.M{"email": email})
}

// Create inserts user. A unique-index violation on email is reported as
// ErrDuplicate.
func (s *MongoUserStore) Create(ctx context.Context, user *models.User) (models.InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.InsertResult{}, ErrDuplicate
		}
		return models.InsertResult{}, fmt.Errorf("insert user: %w", err)
	}
	return insertResult(res), nil
}

func (s *MongoUserStore) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return findAll[models.User](ctx, s.coll, bson.M{})
}

func (s *MongoUserStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error) {
	return s.updateRole(ctx, bson.M{"_id": id}, role)
}

func (s *MongoUserStore) UpdateRoleByEmail(ctx context.Context, email string, role models.Role) (models.UpdateResult, error) {
	return s.updateRole(ctx, bson.M{"email": email}, role)
}

func (s *MongoUserStore) updateRole(ctx context.Context, filter bson.M, role models.Role) (models.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update user role: %w", err)
	}
	return updateResult(res), nil
}
