package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smartfit/smartfit-api/internal/apperror"
	"github.com/smartfit/smartfit-api/internal/middleware"
	"github.com/smartfit/smartfit-api/internal/models"
	"github.com/smartfit/smartfit-api/internal/services"
	"github.com/smartfit/smartfit-api/internal/store"
	"github.com/smartfit/smartfit-api/internal/utils"
)

// Handler carries the process-wide dependencies every route needs.
type Handler struct {
	Stores store.Stores
	Tokens *utils.TokenService
	AI     services.ReplyGenerator

	now func() time.Time
}

func NewHandler(stores store.Stores, tokens *utils.TokenService, ai services.ReplyGenerator) *Handler {
	return &Handler{
		Stores: stores,
		Tokens: tokens,
		AI:     ai,
		now:    time.Now,
	}
}

// identity returns the verified caller, answering 401 itself when the route
// was mounted without the token verifier.
func (h *Handler) identity(c *gin.Context) (models.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		writeError(c, apperror.Unauthorized("Unauthorized access"))
		return models.Identity{}, false
	}
	return id, true
}

// writeError answers with {"message": ...}. Failures that are not AppErrors
// are logged and reported with a generic message.
func writeError(c *gin.Context, err error) {
	status, msg := apperror.Status(err)
	if status >= 500 {
		_ = c.Error(err)
		log.Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"message": msg})
}
