package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/smartfit/smartfit-api/internal/models"
	"github.com/smartfit/smartfit-api/internal/store"
	"github.com/smartfit/smartfit-api/internal/utils"
)

var fixedNow = time.Date(2025, time.May, 12, 8, 0, 0, 0, time.UTC)

type fakeUsers struct {
	mu    sync.Mutex
	users []models.User
	err   error
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) (models.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.InsertResult{}, f.err
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return models.InsertResult{}, store.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, *user)
	return models.InsertResult{Acknowledged: true, InsertedID: user.ID}, nil
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUsers) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error) {
	return f.update(func(u models.User) bool { return u.ID == id }, role)
}

func (f *fakeUsers) UpdateRoleByEmail(ctx context.Context, email string, role models.Role) (models.UpdateResult, error) {
	return f.update(func(u models.User) bool { return u.Email == email }, role)
}

func (f *fakeUsers) update(match func(models.User) bool, role models.Role) (models.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.UpdateResult{}, f.err
	}
	res := models.UpdateResult{Acknowledged: true}
	for i, u := range f.users {
		if match(u) {
			res.MatchedCount++
			if u.Role != role {
				f.users[i].Role = role
				res.ModifiedCount++
			}
		}
	}
	return res, nil
}

// add registers a user directly and returns its id.
func (f *fakeUsers) add(email string, role models.Role) primitive.ObjectID {
	u := models.User{Email: email, Role: role}
	_, _ = f.Create(context.Background(), &u)
	return u.ID
}

type fakeLogs[T any] struct {
	mu    sync.Mutex
	docs  []T
	owner func(*T) string
	err   error
}

func (f *fakeLogs[T]) Insert(ctx context.Context, doc *T) (models.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.InsertResult{}, f.err
	}
	f.docs = append(f.docs, *doc)
	return models.InsertResult{Acknowledged: true, InsertedID: primitive.NewObjectID()}, nil
}

func (f *fakeLogs[T]) ListByOwner(ctx context.Context, email string) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []T
	for i := range f.docs {
		if f.owner(&f.docs[i]) == email {
			out = append(out, f.docs[i])
		}
	}
	return out, nil
}

type fakeBookings struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (f *fakeBookings) Insert(ctx context.Context, b *models.Booking) (models.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = primitive.NewObjectID()
	f.bookings = append(f.bookings, *b)
	return models.InsertResult{Acknowledged: true, InsertedID: b.ID}, nil
}

func (f *fakeBookings) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBookings) ListByUser(ctx context.Context, email string) ([]models.Booking, error) {
	return f.filter(func(b models.Booking) bool { return b.UserEmail == email }), nil
}

func (f *fakeBookings) ListByTrainer(ctx context.Context, email string) ([]models.Booking, error) {
	return f.filter(func(b models.Booking) bool { return b.TrainerEmail == email }), nil
}

func (f *fakeBookings) ListAll(ctx context.Context) ([]models.Booking, error) {
	return f.filter(func(models.Booking) bool { return true }), nil
}

func (f *fakeBookings) Confirm(ctx context.Context, id primitive.ObjectID, at time.Time) (models.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := models.UpdateResult{Acknowledged: true}
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			res.MatchedCount++
			res.ModifiedCount++
			f.bookings[i].Status = models.BookingConfirmed
			f.bookings[i].ConfirmedAt = &at
		}
	}
	return res, nil
}

func (f *fakeBookings) filter(keep func(models.Booking) bool) []models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

type fakeAI struct {
	reply      string
	err        error
	gotPrompt  string
	gotContext string
	calls      int
}

func (f *fakeAI) GenerateReply(ctx context.Context, prompt, userContext string) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	f.gotContext = userContext
	return f.reply, f.err
}

type testEnv struct {
	router     *gin.Engine
	handler    *Handler
	tokens     *utils.TokenService
	users      *fakeUsers
	workouts   *fakeLogs[models.Workout]
	sleeps     *fakeLogs[models.Sleep]
	nutritions *fakeLogs[models.Nutrition]
	bookings   *fakeBookings
	ai         *fakeAI
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := utils.NewTokenService("handlers-test-secret-32-chars-ok", time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		tokens:     tokens,
		users:      &fakeUsers{},
		workouts:   &fakeLogs[models.Workout]{owner: func(w *models.Workout) string { return w.UserEmail }},
		sleeps:     &fakeLogs[models.Sleep]{owner: func(s *models.Sleep) string { return s.UserEmail }},
		nutritions: &fakeLogs[models.Nutrition]{owner: func(n *models.Nutrition) string { return n.UserEmail }},
		bookings:   &fakeBookings{},
		ai:         &fakeAI{reply: "Drink water."},
	}
	env.handler = NewHandler(store.Stores{
		Users:      env.users,
		Workouts:   env.workouts,
		Sleeps:     env.sleeps,
		Nutritions: env.nutritions,
		Bookings:   env.bookings,
	}, tokens, env.ai)
	env.handler.now = func() time.Time { return fixedNow }

	env.router = gin.New()
	RegisterRoutes(env.router, env.handler)
	return env
}

// token signs a token for email carrying role, independent of the store.
func (e *testEnv) token(t *testing.T, email string, role models.Role) string {
	t.Helper()
	tok, err := e.tokens.Issue(models.Identity{Email: email, Role: role})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decode[map[string]any](t, w)["message"].(string)
	return msg
}
