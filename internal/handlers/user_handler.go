package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/smartfit/smartfit-api/internal/apperror"
	"github.com/smartfit/smartfit-api/internal/models"
	"github.com/smartfit/smartfit-api/internal/store"
)

type RegisterUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// RegisterUser is idempotent: an email that is already registered gets a
// notice with the same success status instead of an error. New users always
// start with the user role.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.BadRequest("Invalid request body"))
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeError(c, apperror.BadRequest("Email is required"))
		return
	}

	ctx := c.Request.Context()
	_, err := h.Stores.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "User already exists"})
		return
	case !errors.Is(err, store.ErrNotFound):
		writeError(c, err)
		return
	}

	user := &models.User{
		Email:       email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Role:        models.RoleUser,
	}
	res, err := h.Stores.Users.Create(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent registration of the same email.
		c.JSON(http.StatusOK, gin.H{"message": "User already exists"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	log.Info().Str("email", email).Msg("user registered")
	c.JSON(http.StatusOK, res)
}

// ListUsers returns every registered user. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Stores.Users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUserRole sets the stored role of the user with the given id. Admin only.
func (h *Handler) UpdateUserRole(c *gin.Context) {
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Role.Valid() {
		writeError(c, apperror.BadRequest("Invalid role"))
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		writeError(c, apperror.BadRequest("Invalid user id"))
		return
	}

	res, err := h.Stores.Users.UpdateRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	if res.MatchedCount == 0 {
		writeError(c, apperror.NotFound("User not found"))
		return
	}

	if id, ok := h.identity(c); ok {
		log.Info().Str("admin", id.Email).Str("user_id", userID.Hex()).Str("role", string(req.Role)).Msg("user role updated")
	}
	c.JSON(http.StatusOK, res)
}

// CheckAdmin reports whether the caller's stored role is admin. Callers may
// only ask about themselves.
func (h *Handler) CheckAdmin(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	email := c.Param("email")
	if id.Email != email {
		c.JSON(http.StatusForbidden, gin.H{"admin": false, "message": "Email mismatch"})
		return
	}

	user, err := h.Stores.Users.FindByEmail(c.Request.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"admin": false, "message": "User not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("admin check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"admin": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": user.Role == models.RoleAdmin})
}

// GetUserProfile returns the public profile for an email.
func (h *Handler) GetUserProfile(c *gin.Context) {
	user, err := h.Stores.Users.FindByEmail(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(c, apperror.NotFound("User not found"))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}
