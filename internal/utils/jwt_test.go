package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartfit/smartfit-api/internal/models"
)

const testSecret = "test-secret-at-least-16-chars!!"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	return ts
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(testSecret, 0)
	assert.Error(t, err)
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue(models.Identity{Email: "alice@x.com", Role: models.RoleTrainer})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	id, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{Email: "alice@x.com", Role: models.RoleTrainer}, id)
}

func TestIssue_DefaultsEmptyRole(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue(models.Identity{Email: "alice@x.com"})
	require.NoError(t, err)

	id, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, id.Role)
}

func TestIssue_RequiresEmail(t *testing.T) {
	ts := newTestTokenService(t)
	_, err := ts.Issue(models.Identity{Role: models.RoleAdmin})
	assert.Error(t, err)
}

func TestIssue_ExpiresAfterOneHour(t *testing.T) {
	ts := newTestTokenService(t)
	issued := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	ts.now = func() time.Time { return issued }

	token, err := ts.Issue(models.Identity{Email: "alice@x.com"})
	require.NoError(t, err)

	ts.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = ts.Validate(token)
	require.NoError(t, err)

	ts.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = ts.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.IssueWithDuration(models.Identity{Email: "alice@x.com"}, -time.Second)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)
	token, err := ts.Issue(models.Identity{Email: "alice@x.com"})
	require.NoError(t, err)

	tampered := token[:len(token)-3] + "xxx"
	if tampered == token {
		tampered = token[:len(token)-3] + "yyy"
	}

	_, err = ts.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	other, err := NewTokenService("another-secret-32-chars-long!!!!", time.Hour)
	require.NoError(t, err)
	token, err := other.Issue(models.Identity{Email: "alice@x.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = newTestTokenService(t).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		Email: "alice@x.com",
		Role:  models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestTokenService(t).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsForeignIssuer(t *testing.T) {
	claims := Claims{
		Email: "alice@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestTokenService(t).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_EmptyAndGarbage(t *testing.T) {
	ts := newTestTokenService(t)

	_, err := ts.Validate("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = ts.Validate("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"bearer abc", "abc", nil},
		{"", "", ErrMissingToken},
		{"Bearer ", "", ErrInvalidToken},
		{"Bearer    ", "", ErrInvalidToken},
		{"Basic dXNlcjpwYXNz", "", ErrInvalidToken},
		{"abc.def.ghi", "", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
