package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartfit/smartfit-api/internal/apperror"
	"github.com/smartfit/smartfit-api/internal/models"
	"github.com/smartfit/smartfit-api/internal/store"
)

// IssueToken signs a session token for a registered email. The role always
// comes from the stored user record; anything else in the body is ignored.
func (h *Handler) IssueToken(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.BadRequest("Email is required"))
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeError(c, apperror.BadRequest("Email is required"))
		return
	}

	user, err := h.Stores.Users.FindByEmail(c.Request.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(c, apperror.NotFound("User not found"))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.Tokens.Issue(models.Identity{Email: user.Email, Role: user.Role.OrDefault()})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
