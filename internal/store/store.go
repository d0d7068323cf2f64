// Package store holds the persistence interfaces the handlers depend on and
// their MongoDB implementations.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/smartfit/smartfit-api/internal/models"
)

// Collection names.
const (
	UsersCollection      = "user"
	WorkoutsCollection   = "workouts"
	SleepsCollection     = "sleeps"
	NutritionsCollection = "nutritions"
	BookingsCollection   = "bookings"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (models.InsertResult, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error)
	UpdateRoleByEmail(ctx context.Context, email string, role models.Role) (models.UpdateResult, error)
}

// LogStore persists one kind of owner-scoped activity log.
type LogStore[T any] interface {
	Insert(ctx context.Context, doc *T) (models.InsertResult, error)
	ListByOwner(ctx context.Context, email string) ([]T, error)
}

type BookingStore interface {
	Insert(ctx context.Context, booking *models.Booking) (models.InsertResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListByUser(ctx context.Context, email string) ([]models.Booking, error)
	ListByTrainer(ctx context.Context, email string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	Confirm(ctx context.Context, id primitive.ObjectID, at time.Time) (models.UpdateResult, error)
}

// Stores groups every store the API needs.
type Stores struct {
	Users      UserStore
	Workouts   LogStore[models.Workout]
	Sleeps     LogStore[models.Sleep]
	Nutritions LogStore[models.Nutrition]
	Bookings   BookingStore
}
