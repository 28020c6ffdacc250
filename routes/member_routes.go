package routes

import (
	"crms/internal/handlers"
	"crms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupMemberRoutes sets up member account and admin reporting routes
func SetupMemberRoutes(
	r *gin.RouterGroup,
	jwtSecret string,
	memberHandler *handlers.MemberHandler,
	reportHandler *handlers.ReportHandler,
) {
	r.POST("/members/register", memberHandler.Register)

	members := r.Group("/members")
	members.Use(middleware.AuthRequired(jwtSecret))
	{
		members.GET("/me", memberHandler.GetProfile)
		members.PATCH("/me", memberHandler.UpdateProfile)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/members", memberHandler.ListMembers)
		admin.GET("/members/:id", memberHandler.GetMember)
		admin.GET("/reports/reservations", reportHandler.GetReservationReport)
	}
}
