package services

import (
	"context"
	"fmt"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/utils"
	"crms/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const reservationEventChannel = "reservations.events"

type CreateReservationInput struct {
	MemberID          primitive.ObjectID
	CarID             primitive.ObjectID
	PickUpLocationID  primitive.ObjectID
	DropOffLocationID primitive.ObjectID
	PickUpDate        time.Time
	DropOffDate       time.Time
	ServiceIDs        []primitive.ObjectID
	EquipmentIDs      []primitive.ObjectID
	Notes             string
}

// UpdateReservationInput patches an active reservation. Nil fields are
// left unchanged.
type UpdateReservationInput struct {
	PickUpLocationID  *primitive.ObjectID
	DropOffLocationID *primitive.ObjectID
	PickUpDate        *time.Time
	DropOffDate       *time.Time
	ServiceIDs        *[]primitive.ObjectID
	EquipmentIDs      *[]primitive.ObjectID
	Notes             *string
}

// ReservationQuote prices a prospective reservation without persisting it.
type ReservationQuote struct {
	CarID       primitive.ObjectID `json:"car_id"`
	PickUpDate  time.Time          `json:"pick_up_date"`
	DropOffDate time.Time          `json:"drop_off_date"`
	RentalDays  int                `json:"rental_days"`
	DailyRate   float64            `json:"daily_rate"`
	AddOnDaily  float64            `json:"add_on_daily"`
	TotalCost   float64            `json:"total_cost"`
}

// ReservationService owns the reservation lifecycle: it is the only writer
// of reservations, enforces the state machine and delegates to the
// availability and pricing functions. It never retries a failure; retry
// policy belongs to the caller.
type ReservationService interface {
	Create(ctx context.Context, input *CreateReservationInput) (*models.Reservation, error)
	Quote(ctx context.Context, input *CreateReservationInput) (*ReservationQuote, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error)
	Update(ctx context.Context, id primitive.ObjectID, input *UpdateReservationInput) (*models.Reservation, error)
	UpdateDropOffLocation(ctx context.Context, id, locationID primitive.ObjectID) (*models.Reservation, error)
	Cancel(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error)
	Complete(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error)
	ListForMember(ctx context.Context, memberID primitive.ObjectID) ([]*models.Reservation, error)
	ListForCar(ctx context.Context, carID primitive.ObjectID, status *models.ReservationStatus) ([]*models.Reservation, error)
	List(ctx context.Context, status *models.ReservationStatus, params *utils.PaginationParams) ([]*models.Reservation, int64, *utils.PaginationMeta, error)
}

type reservationService struct {
	reservationRepo interfaces.ReservationRepository
	carRepo         interfaces.CarRepository
	locationRepo    interfaces.LocationRepository
	addOnRepo       interfaces.AddOnRepository
	memberRepo      interfaces.MemberRepository
	locks           LockManager
	cache           CacheService
	logger          *logger.Logger
}

func NewReservationService(
	reservationRepo interfaces.ReservationRepository,
	carRepo interfaces.CarRepository,
	locationRepo interfaces.LocationRepository,
	addOnRepo interfaces.AddOnRepository,
	memberRepo interfaces.MemberRepository,
	locks LockManager,
	cache CacheService,
	log *logger.Logger,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		carRepo:         carRepo,
		locationRepo:    locationRepo,
		addOnRepo:       addOnRepo,
		memberRepo:      memberRepo,
		locks:           locks,
		cache:           cache,
		logger:          log,
	}
}

func (s *reservationService) Create(ctx context.Context, input *CreateReservationInput) (*models.Reservation, error) {
	pickUp := utils.NormalizeDate(input.PickUpDate)
	dropOff := utils.NormalizeDate(input.DropOffDate)
	if err := validateDateOrder(pickUp, dropOff); err != nil {
		return nil, err
	}

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if !member.HasDrivingLicense() {
		return nil, apperrors.NewInvalidInput("member must provide a valid driving license number")
	}

	car, err := s.carRepo.GetByID(ctx, input.CarID)
	if err != nil {
		return nil, err
	}
	if _, err := s.locationRepo.GetByID(ctx, input.PickUpLocationID); err != nil {
		return nil, err
	}
	if _, err := s.locationRepo.GetByID(ctx, input.DropOffLocationID); err != nil {
		return nil, err
	}

	addOnPrices, err := s.resolveAddOnPrices(ctx, input.ServiceIDs, input.EquipmentIDs)
	if err != nil {
		return nil, err
	}

	totalCost, err := ComputeCost(car.DailyRate, pickUp, dropOff, addOnPrices)
	if err != nil {
		return nil, err
	}

	// Booking decisions for one car are serialized: the active-reservation
	// snapshot, the availability check and the insert happen under the
	// same per-car lock.
	release, err := s.locks.AcquireCarLock(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	active, err := s.reservationRepo.FindActiveByCar(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	if !CarAvailable(pickUp, dropOff, active, primitive.NilObjectID) {
		return nil, apperrors.NewConflict(utils.ErrCarUnavailable)
	}

	number, err := s.reservationRepo.NextReservationNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reservation := &models.Reservation{
		ReservationNumber: number,
		MemberID:          member.ID,
		CarID:             car.ID,
		PickUpLocationID:  input.PickUpLocationID,
		DropOffLocationID: input.DropOffLocationID,
		PickUpDate:        pickUp,
		DropOffDate:       dropOff,
		Status:            models.ReservationStatusActive,
		TotalCost:         totalCost,
		ServiceIDs:        input.ServiceIDs,
		EquipmentIDs:      input.EquipmentIDs,
		Notes:             input.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "reservation.created", reservation)
	s.refreshCarStatus(ctx, car)
	s.logger.LogReservationEvent(reservation.ID, "created", map[string]interface{}{
		"car_id":     car.ID.Hex(),
		"member_id":  member.ID.Hex(),
		"total_cost": totalCost,
	})

	return reservation, nil
}

func (s *reservationService) Quote(ctx context.Context, input *CreateReservationInput) (*ReservationQuote, error) {
	pickUp := utils.NormalizeDate(input.PickUpDate)
	dropOff := utils.NormalizeDate(input.DropOffDate)
	if err := validateDateOrder(pickUp, dropOff); err != nil {
		return nil, err
	}

	car, err := s.carRepo.GetByID(ctx, input.CarID)
	if err != nil {
		return nil, err
	}

	addOnPrices, err := s.resolveAddOnPrices(ctx, input.ServiceIDs, input.EquipmentIDs)
	if err != nil {
		return nil, err
	}

	totalCost, err := ComputeCost(car.DailyRate, pickUp, dropOff, addOnPrices)
	if err != nil {
		return nil, err
	}

	addOnDaily := 0.0
	for _, price := range addOnPrices {
		addOnDaily += price
	}

	return &ReservationQuote{
		CarID:       car.ID,
		PickUpDate:  pickUp,
		DropOffDate: dropOff,
		RentalDays:  RentalDays(pickUp, dropOff),
		DailyRate:   car.DailyRate,
		AddOnDaily:  addOnDaily,
		TotalCost:   totalCost,
	}, nil
}

func (s *reservationService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *reservationService) Update(ctx context.Context, id primitive.ObjectID, input *UpdateReservationInput) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.IsActive() {
		return nil, apperrors.NewIllegalTransition("reservation %s is %s and can no longer be edited", reservation.ReservationNumber, reservation.Status)
	}

	pickUp := reservation.PickUpDate
	dropOff := reservation.DropOffDate
	if input.PickUpDate != nil {
		pickUp = utils.NormalizeDate(*input.PickUpDate)
	}
	if input.DropOffDate != nil {
		dropOff = utils.NormalizeDate(*input.DropOffDate)
	}
	datesChanged := !pickUp.Equal(reservation.PickUpDate) || !dropOff.Equal(reservation.DropOffDate)
	if datesChanged {
		if err := validateDateOrder(pickUp, dropOff); err != nil {
			return nil, err
		}
	}

	serviceIDs := reservation.ServiceIDs
	equipmentIDs := reservation.EquipmentIDs
	addOnsChanged := false
	if input.ServiceIDs != nil {
		serviceIDs = *input.ServiceIDs
		addOnsChanged = true
	}
	if input.EquipmentIDs != nil {
		equipmentIDs = *input.EquipmentIDs
		addOnsChanged = true
	}

	if input.PickUpLocationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *input.PickUpLocationID); err != nil {
			return nil, err
		}
		reservation.PickUpLocationID = *input.PickUpLocationID
	}
	if input.DropOffLocationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *input.DropOffLocationID); err != nil {
			return nil, err
		}
		reservation.DropOffLocationID = *input.DropOffLocationID
	}
	if input.Notes != nil {
		reservation.Notes = *input.Notes
	}

	if datesChanged {
		// Re-check availability excluding this reservation from its own
		// conflict set, under the same per-car lock as creation.
		release, err := s.locks.AcquireCarLock(ctx, reservation.CarID)
		if err != nil {
			return nil, err
		}
		defer release()

		active, err := s.reservationRepo.FindActiveByCar(ctx, reservation.CarID)
		if err != nil {
			return nil, err
		}
		if !CarAvailable(pickUp, dropOff, active, reservation.ID) {
			return nil, apperrors.NewConflict(utils.ErrCarUnavailable)
		}
	}

	if datesChanged || addOnsChanged {
		car, err := s.carRepo.GetByID(ctx, reservation.CarID)
		if err != nil {
			return nil, err
		}
		addOnPrices, err := s.resolveAddOnPrices(ctx, serviceIDs, equipmentIDs)
		if err != nil {
			return nil, err
		}
		totalCost, err := ComputeCost(car.DailyRate, pickUp, dropOff, addOnPrices)
		if err != nil {
			return nil, err
		}
		reservation.TotalCost = totalCost
	}

	reservation.PickUpDate = pickUp
	reservation.DropOffDate = dropOff
	reservation.ServiceIDs = serviceIDs
	reservation.EquipmentIDs = equipmentIDs
	reservation.UpdatedAt = time.Now().UTC()

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "reservation.updated", reservation)
	return reservation, nil
}

func (s *reservationService) UpdateDropOffLocation(ctx context.Context, id, locationID primitive.ObjectID) (*models.Reservation, error) {
	return s.Update(ctx, id, &UpdateReservationInput{DropOffLocationID: &locationID})
}

func (s *reservationService) Cancel(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationStatusCancelled, "reservation.cancelled")
}

func (s *reservationService) Complete(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationStatusCompleted, "reservation.completed")
}

func (s *reservationService) transition(ctx context.Context, id primitive.ObjectID, to models.ReservationStatus, event string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !reservation.Transition(to, time.Now().UTC()) {
		return nil, apperrors.NewIllegalTransition("reservation %s cannot go from %s to %s", reservation.ReservationNumber, reservation.Status, to)
	}

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, event, reservation)
	if car, carErr := s.carRepo.GetByID(ctx, reservation.CarID); carErr == nil {
		s.refreshCarStatus(ctx, car)
	}
	s.logger.LogReservationEvent(reservation.ID, string(to), nil)

	return reservation, nil
}

func (s *reservationService) ListForMember(ctx context.Context, memberID primitive.ObjectID) ([]*models.Reservation, error) {
	return s.reservationRepo.FindByMember(ctx, memberID)
}

func (s *reservationService) ListForCar(ctx context.Context, carID primitive.ObjectID, status *models.ReservationStatus) ([]*models.Reservation, error) {
	return s.reservationRepo.FindByCar(ctx, carID, status)
}

func (s *reservationService) List(ctx context.Context, status *models.ReservationStatus, params *utils.PaginationParams) ([]*models.Reservation, int64, *utils.PaginationMeta, error) {
	reservations, total, err := s.reservationRepo.List(ctx, status, params)
	if err != nil {
		return nil, 0, nil, err
	}
	return reservations, total, utils.CreatePaginationMeta(params, total), nil
}

func (s *reservationService) resolveAddOnPrices(ctx context.Context, serviceIDs, equipmentIDs []primitive.ObjectID) ([]float64, error) {
	if len(serviceIDs)+len(equipmentIDs) > utils.MaxAddOnsPerReservation {
		return nil, apperrors.NewInvalidInput("at most %d add-ons may be selected", utils.MaxAddOnsPerReservation)
	}

	prices := make([]float64, 0, len(serviceIDs)+len(equipmentIDs))

	if len(serviceIDs) > 0 {
		services, err := s.addOnRepo.GetServicesByIDs(ctx, serviceIDs)
		if err != nil {
			return nil, err
		}
		for _, service := range services {
			prices = append(prices, service.DailyPrice)
		}
	}

	if len(equipmentIDs) > 0 {
		equipment, err := s.addOnRepo.GetEquipmentByIDs(ctx, equipmentIDs)
		if err != nil {
			return nil, err
		}
		for _, item := range equipment {
			prices = append(prices, item.DailyPrice)
		}
	}

	return prices, nil
}

// refreshCarStatus recomputes the car's advisory display status from the
// authoritative reservation set. Best effort: a failure here never fails
// the lifecycle operation, and manually set maintenance/unavailable states
// are preserved.
func (s *reservationService) refreshCarStatus(ctx context.Context, car *models.Car) {
	if car.Status == models.CarStatusMaintenance || car.Status == models.CarStatusUnavailable {
		return
	}

	active, err := s.reservationRepo.FindActiveByCar(ctx, car.ID)
	if err != nil {
		s.logger.WithError(err).WithCarID(car.ID).Warn("Failed to refresh car status")
		return
	}

	today := utils.NormalizeDate(time.Now().UTC())
	status := models.CarStatusAvailable
	for _, reservation := range active {
		if Overlaps(today, today.AddDate(0, 0, 1), reservation.PickUpDate, reservation.DropOffDate) {
			status = models.CarStatusRented
			break
		}
		status = models.CarStatusReserved
	}

	if status != car.Status {
		if err := s.carRepo.UpdateStatus(ctx, car.ID, status); err != nil {
			s.logger.WithError(err).WithCarID(car.ID).Warn("Failed to update car status projection")
		}
	}
}

func (s *reservationService) publishEvent(ctx context.Context, event string, reservation *models.Reservation) {
	if s.cache == nil {
		return
	}

	payload := map[string]interface{}{
		"event":              event,
		"reservation_id":     reservation.ID.Hex(),
		"reservation_number": reservation.ReservationNumber,
		"car_id":             reservation.CarID.Hex(),
		"member_id":          reservation.MemberID.Hex(),
		"status":             reservation.Status,
	}

	if err := s.cache.Publish(ctx, reservationEventChannel, payload); err != nil {
		s.logger.WithError(err).Warn(fmt.Sprintf("Failed to publish %s event", event))
	}
}

func validateDateOrder(pickUpDate, dropOffDate time.Time) error {
	if pickUpDate.IsZero() || dropOffDate.IsZero() {
		return apperrors.NewInvalidInput("pick-up and drop-off dates are required")
	}
	if !pickUpDate.Before(dropOffDate) {
		return apperrors.NewInvalidInput("pick-up date must be before drop-off date")
	}
	if RentalDays(pickUpDate, dropOffDate) > utils.MaxRentalDays {
		return apperrors.NewInvalidInput("rental period cannot exceed %d days", utils.MaxRentalDays)
	}
	return nil
}
