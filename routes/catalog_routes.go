package routes

import (
	"crms/internal/handlers"
	"crms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes sets up routes for the fleet and booking catalog
func SetupCatalogRoutes(
	r *gin.RouterGroup,
	jwtSecret string,
	carHandler *handlers.CarHandler,
	locationHandler *handlers.LocationHandler,
	addOnHandler *handlers.AddOnHandler,
	reservationHandler *handlers.ReservationHandler,
) {
	// Public browsing routes
	cars := r.Group("/cars")
	{
		cars.GET("", carHandler.SearchCars)
		cars.GET("/:id", carHandler.GetCar)
	}

	locations := r.Group("/locations")
	{
		locations.GET("", locationHandler.ListLocations)
		locations.GET("/:id", locationHandler.GetLocation)
	}

	r.GET("/services", addOnHandler.ListServices)
	r.GET("/equipment", addOnHandler.ListEquipment)

	// Fleet management (staff only)
	adminCars := r.Group("/admin/cars")
	adminCars.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		adminCars.POST("", carHandler.CreateCar)
		adminCars.PATCH("/:id", carHandler.UpdateCar)
		adminCars.DELETE("/:id", carHandler.DeleteCar)
		adminCars.PUT("/:id/status", carHandler.SetCarStatus)
		adminCars.GET("/:id/reservations", reservationHandler.GetCarReservations)
	}

	adminLocations := r.Group("/admin/locations")
	adminLocations.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		adminLocations.POST("", locationHandler.CreateLocation)
		adminLocations.PATCH("/:id", locationHandler.UpdateLocation)
		adminLocations.DELETE("/:id", locationHandler.DeleteLocation)
	}

	adminAddOns := r.Group("/admin")
	adminAddOns.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		adminAddOns.POST("/services", addOnHandler.CreateService)
		adminAddOns.PUT("/services/:id", addOnHandler.UpdateService)
		adminAddOns.DELETE("/services/:id", addOnHandler.DeleteService)
		adminAddOns.POST("/equipment", addOnHandler.CreateEquipment)
		adminAddOns.PUT("/equipment/:id", addOnHandler.UpdateEquipment)
		adminAddOns.DELETE("/equipment/:id", addOnHandler.DeleteEquipment)
	}
}
