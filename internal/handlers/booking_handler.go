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

// CreateBooking books a trainer for the caller. The booking always starts
// pending and belongs to the caller.
func (h *Handler) CreateBooking(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	var booking models.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		writeError(c, apperror.BadRequest("Invalid request body"))
		return
	}
	booking.TrainerEmail = strings.TrimSpace(booking.TrainerEmail)
	if booking.TrainerEmail == "" {
		writeError(c, apperror.BadRequest("Trainer email is required"))
		return
	}

	booking.ID = primitive.NilObjectID
	booking.UserEmail = id.Email
	booking.Status = models.BookingPending
	booking.CreatedAt = h.now().UTC()
	booking.ConfirmedAt = nil

	res, err := h.Stores.Bookings.Insert(c.Request.Context(), &booking)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListOwnBookings(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	bookings, err := h.Stores.Bookings.ListByUser(c.Request.Context(), id.Email)
	respondBookings(c, bookings, err)
}

// ListTrainerBookings returns the bookings assigned to the calling trainer.
func (h *Handler) ListTrainerBookings(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	bookings, err := h.Stores.Bookings.ListByTrainer(c.Request.Context(), id.Email)
	respondBookings(c, bookings, err)
}

func (h *Handler) ListAllBookings(c *gin.Context) {
	bookings, err := h.Stores.Bookings.ListAll(c.Request.Context())
	respondBookings(c, bookings, err)
}

// ConfirmBooking moves a booking to confirmed. Only the trainer named on the
// booking may do this.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		writeError(c, apperror.BadRequest("Invalid booking id"))
		return
	}

	ctx := c.Request.Context()
	booking, err := h.Stores.Bookings.FindByID(ctx, bookingID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(c, apperror.NotFound("Booking not found"))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	if booking.TrainerEmail != id.Email {
		writeError(c, apperror.Forbidden("Forbidden"))
		return
	}

	res, err := h.Stores.Bookings.Confirm(ctx, bookingID, h.now().UTC())
	if err != nil {
		writeError(c, err)
		return
	}

	log.Info().Str("booking_id", bookingID.Hex()).Str("trainer", id.Email).Msg("booking confirmed")
	c.JSON(http.StatusOK, res)
}

func respondBookings(c *gin.Context, bookings []models.Booking, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	if bookings == nil {
		bookings = make([]models.Booking, 0)
	}
	c.JSON(http.StatusOK, bookings)
}
