package routes

import (
	"crms/internal/handlers"
	"crms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes sets up routes for the reservation lifecycle
func SetupReservationRoutes(r *gin.RouterGroup, jwtSecret string, reservationHandler *handlers.ReservationHandler) {
	reservations := r.Group("/reservations")
	reservations.Use(middleware.AuthRequired(jwtSecret))
	{
		reservations.POST("", reservationHandler.CreateReservation)
		reservations.POST("/quote", reservationHandler.QuoteReservation)
		reservations.GET("/me", reservationHandler.GetMyReservations)
		reservations.GET("/:id", reservationHandler.GetReservation)
		reservations.PATCH("/:id", reservationHandler.UpdateReservation)
		reservations.PATCH("/:id/drop-off-location", reservationHandler.UpdateDropOffLocation)
		reservations.POST("/:id/cancel", reservationHandler.CancelReservation)
	}

	// Staff-only lifecycle and oversight operations
	admin := r.Group("/admin/reservations")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("", reservationHandler.ListReservations)
		admin.POST("/:id/complete", reservationHandler.CompleteReservation)
	}
}
