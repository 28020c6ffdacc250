package services

import (
	"context"
	"time"

	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/utils"
)

// ReservationReport summarizes reservation volume and revenue for staff
// dashboards. Revenue only counts completed reservations.
type ReservationReport struct {
	StartDate      time.Time                          `json:"start_date"`
	EndDate        time.Time                          `json:"end_date"`
	CountsByStatus map[models.ReservationStatus]int64 `json:"counts_by_status"`
	TotalRevenue   float64                            `json:"total_revenue"`
	CompletedCount int64                              `json:"completed_count"`
	CompletionRate float64                            `json:"completion_rate"`
}

type ReportingService interface {
	ReservationReport(ctx context.Context, startDate, endDate time.Time) (*ReservationReport, error)
}

type reportingService struct {
	reservationRepo interfaces.ReservationRepository
}

func NewReportingService(reservationRepo interfaces.ReservationRepository) ReportingService {
	return &reportingService{reservationRepo: reservationRepo}
}

func (s *reportingService) ReservationReport(ctx context.Context, startDate, endDate time.Time) (*ReservationReport, error) {
	startDate = utils.NormalizeDate(startDate)
	endDate = utils.NormalizeDate(endDate)

	counts, err := s.reservationRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	revenue, completedCount, err := s.reservationRepo.CompletedRevenue(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	completionRate := 0.0
	if total > 0 {
		completionRate = float64(counts[models.ReservationStatusCompleted]) / float64(total) * 100
	}

	return &ReservationReport{
		StartDate:      startDate,
		EndDate:        endDate,
		CountsByStatus: counts,
		TotalRevenue:   revenue,
		CompletedCount: completedCount,
		CompletionRate: completionRate,
	}, nil
}
