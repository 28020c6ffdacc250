package handlers

import (
	"time"

	"crms/internal/services"
	"crms/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportingService services.ReportingService
}

func NewReportHandler(reportingService services.ReportingService) *ReportHandler {
	return &ReportHandler{
		reportingService: reportingService,
	}
}

// GetReservationReport summarizes reservation counts and completed revenue
// over a date range. Defaults to the current month.
func (h *ReportHandler) GetReservationReport(c *gin.Context) {
	now := time.Now().UTC()
	startDate := utils.StartOfMonth(now)
	endDate := utils.EndOfMonth(now)

	if startStr := c.Query("start_date"); startStr != "" {
		parsed, err := utils.ParseDate(startStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid start date")
			return
		}
		startDate = parsed
	}
	if endStr := c.Query("end_date"); endStr != "" {
		parsed, err := utils.ParseDate(endStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid end date")
			return
		}
		endDate = utils.EndOfDay(parsed)
	}

	if endDate.Before(startDate) {
		utils.BadRequestResponse(c, "End date must not precede start date")
		return
	}

	report, err := h.reportingService.ReservationReport(c.Request.Context(), startDate, endDate)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Reservation report generated successfully", report)
}
