package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/smartfit/smartfit-api/internal/models"
)

// Connect builds a client for uri. It fails only on invalid options; the
// server is not contacted until Ping or the first operation.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	return client, nil
}

// Ping checks that the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return nil
}

// NewMongoStores wires every store onto db. timeout bounds each individual
// store call.
func NewMongoStores(db *mongo.Database, timeout time.Duration) Stores {
	return Stores{
		Users:      NewUserStore(db.Collection(UsersCollection), timeout),
		Workouts:   NewLogStore[models.Workout](db.Collection(WorkoutsCollection), timeout),
		Sleeps:     NewLogStore[models.Sleep](db.Collection(SleepsCollection), timeout),
		Nutritions: NewLogStore[models.Nutrition](db.Collection(NutritionsCollection), timeout),
		Bookings:   NewBookingStore(db.Collection(BookingsCollection), timeout),
	}
}

// EnsureIndexes creates the unique email index and the owner lookup indexes.
// Failures are logged per collection and returned joined.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		WorkoutsCollection:   {{Keys: bson.D{{Key: "userEmail", Value: 1}}}},
		SleepsCollection:     {{Keys: bson.D{{Key: "userEmail", Value: 1}}}},
		NutritionsCollection: {{Keys: bson.D{{Key: "userEmail", Value: 1}}}},
		BookingsCollection: {
			{Keys: bson.D{{Key: "userEmail", Value: 1}}},
			{Keys: bson.D{{Key: "trainerEmail", Value: 1}}},
		},
	}

	var errs []error
	for name, idx := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("failed to create indexes")
			errs = append(errs, fmt.Errorf("indexes on %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func insertResult(res *mongo.InsertOneResult) models.InsertResult {
	return models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func updateResult(res *mongo.UpdateResult) models.UpdateResult {
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

// findAll runs filter against coll and decodes every document, keeping the
// store's natural order. It never returns a nil slice on success.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

// findOne decodes the first document matching filter into a T, translating
// mongo.ErrNoDocuments to ErrNotFound.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

// RetryIndexes runs ping then ensure until both succeed, waiting interval
// between attempts. It gives up only when ctx is done. Until it succeeds the
// unique email index may be missing, so duplicate registrations are possible.
func RetryIndexes(ctx context.Context, interval time.Duration, ping, ensure func(context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		err := ping(ctx)
		if err == nil {
			err = ensure(ctx)
		}
		if err == nil {
			log.Info().Int("attempt", attempt).Msg("indexes ensured")
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", interval).
			Msg("indexes not created, email uniqueness is not enforced yet")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
