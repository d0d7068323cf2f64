package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartfit/smartfit-api/internal/apperror"
	"github.com/smartfit/smartfit-api/internal/store"
)

// stampable is a pointer to a log document that can take its server-owned
// fields.
type stampable[T any] interface {
	*T
	Stamp(email string, now time.Time)
}

// createLog stores the body as a log owned by the caller, whatever owner the
// body claims.
func createLog[T any, P stampable[T]](h *Handler, logs store.LogStore[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.identity(c)
		if !ok {
			return
		}

		var doc T
		if err := c.ShouldBindJSON(&doc); err != nil {
			writeError(c, apperror.BadRequest("Invalid request body"))
			return
		}
		P(&doc).Stamp(id.Email, h.now())

		res, err := logs.Insert(c.Request.Context(), &doc)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func listOwnLogs[T any](h *Handler, logs store.LogStore[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.identity(c)
		if !ok {
			return
		}
		respondLogs(c, logs, id.Email)
	}
}

// listLogsByEmail only serves the caller's own email; there is no admin
// bypass on this route.
func listLogsByEmail[T any](h *Handler, logs store.LogStore[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.identity(c)
		if !ok {
			return
		}
		if c.Param("email") != id.Email {
			writeError(c, apperror.Forbidden("Forbidden access"))
			return
		}
		respondLogs(c, logs, id.Email)
	}
}

func respondLogs[T any](c *gin.Context, logs store.LogStore[T], email string) {
	docs, err := logs.ListByOwner(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	if docs == nil {
		docs = make([]T, 0)
	}
	c.JSON(http.StatusOK, docs)
}
