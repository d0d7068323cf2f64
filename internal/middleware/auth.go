package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smartfit/smartfit-api/internal/apperror"
	"github.com/smartfit/smartfit-api/internal/models"
	"github.com/smartfit/smartfit-api/internal/observability"
	"github.com/smartfit/smartfit-api/internal/store"
	"github.com/smartfit/smartfit-api/internal/utils"
)

const (
	identityEmailKey = "identityEmail"
	identityRoleKey  = "identityRole"
)

// TokenValidator is satisfied by *utils.TokenService.
type TokenValidator interface {
	Validate(token string) (models.Identity, error)
}

// RoleLookup reads a user's current stored record.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's identity on the context for the rest of the chain.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := utils.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			observability.RecordDenial("token", denialReason(err))
			abortWithError(c, apperror.Unauthorized("Unauthorized access"))
			return
		}

		id, err := tokens.Validate(raw)
		if err != nil {
			observability.RecordDenial("token", denialReason(err))
			log.Debug().Err(err).Str("path", c.FullPath()).Msg("token rejected")
			abortWithError(c, apperror.Unauthorized("Unauthorized access"))
			return
		}

		c.Set(identityEmailKey, id.Email)
		c.Set(identityRoleKey, id.Role)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by AuthMiddleware.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	email := c.GetString(identityEmailKey)
	if email == "" {
		return models.Identity{}, false
	}
	role, _ := c.Get(identityRoleKey)
	r, _ := role.(models.Role)
	return models.Identity{Email: email, Role: r}, true
}

// WithIdentity attaches id to c as AuthMiddleware would.
func WithIdentity(c *gin.Context, id models.Identity) {
	c.Set(identityEmailKey, id.Email)
	c.Set(identityRoleKey, id.Role)
}

// RequireRole passes only callers whose currently stored role equals want.
// The token's embedded role is ignored so role changes apply immediately.
func RequireRole(users RoleLookup, want models.Role) gin.HandlerFunc {
	stage := string(want)
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			observability.RecordDenial(stage, "no_identity")
			abortWithError(c, apperror.Unauthorized("Unauthorized access"))
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), id.Email)
		switch {
		case errors.Is(err, store.ErrNotFound):
			observability.RecordDenial(stage, "unknown_user")
			abortWithError(c, apperror.Forbidden("Forbidden access"))
			return
		case err != nil:
			log.Error().Err(err).Str("email", id.Email).Str("required", stage).Msg("role lookup failed")
			abortWithError(c, err)
			return
		}

		if user.Role.OrDefault() != want {
			observability.RecordDenial(stage, "role_mismatch")
			abortWithError(c, apperror.Forbidden("Forbidden access"))
			return
		}
		c.Next()
	}
}

func AdminOnly(users RoleLookup) gin.HandlerFunc {
	return RequireRole(users, models.RoleAdmin)
}

func TrainerOnly(users RoleLookup) gin.HandlerFunc {
	return RequireRole(users, models.RoleTrainer)
}

func abortWithError(c *gin.Context, err error) {
	status, msg := apperror.Status(err)
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

func denialReason(err error) string {
	switch {
	case errors.Is(err, utils.ErrMissingToken):
		return "missing"
	case errors.Is(err, utils.ErrTokenExpired):
		return "expired"
	default:
		return "invalid"
	}
}
