package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartfit/smartfit-api/internal/middleware"
)

// RegisterRoutes mounts every public and protected route on r.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	// Public routes
	r.GET("/", h.Root)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/jwt", h.IssueToken)
	r.POST("/user", h.RegisterUser)
	r.POST("/api/ai", h.HandleAI)

	admin := middleware.AdminOnly(h.Stores.Users)
	trainer := middleware.TrainerOnly(h.Stores.Users)

	// Token-protected routes
	api := r.Group("/", middleware.AuthMiddleware(h.Tokens))

	api.GET("/user", admin, h.ListUsers)
	api.PATCH("/user/:id/role", admin, h.UpdateUserRole)
	api.GET("/user/admin/:email", h.CheckAdmin)
	// Shares the :id wildcard with the role route; the value is an email here.
	api.GET("/user/:id", h.GetUserProfile)

	api.POST("/workouts", createLog(h, h.Stores.Workouts))
	api.GET("/workouts", listOwnLogs(h, h.Stores.Workouts))
	api.GET("/workouts/:email", listLogsByEmail(h, h.Stores.Workouts))

	api.POST("/sleeps", createLog(h, h.Stores.Sleeps))
	api.GET("/sleeps", listOwnLogs(h, h.Stores.Sleeps))
	api.GET("/sleeps/:email", listLogsByEmail(h, h.Stores.Sleeps))

	api.POST("/nutritions", createLog(h, h.Stores.Nutritions))
	api.GET("/nutritions", listOwnLogs(h, h.Stores.Nutritions))
	api.GET("/nutritions/:email", listLogsByEmail(h, h.Stores.Nutritions))

	api.POST("/bookings", h.CreateBooking)
	api.GET("/bookings", h.ListOwnBookings)
	api.PATCH("/bookings/:id/confirm", h.ConfirmBooking)
	api.GET("/trainer/bookings", trainer, h.ListTrainerBookings)
	api.GET("/admin/bookings", admin, h.ListAllBookings)
}

// Root is the liveness probe.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "SmartFit Server Running")
}
