package handlers

import (
	"crms/internal/models"
	"crms/internal/services"
	"crms/internal/utils"
	"crms/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReservationHandler struct {
	reservationService services.ReservationService
}

func NewReservationHandler(reservationService services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

func validationDetails(errs validators.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field] = err.Message
	}
	return details
}

func currentUser(c *gin.Context) (primitive.ObjectID, string, bool) {
	userID, exists := c.Get(utils.ContextUserID)
	if !exists {
		return primitive.NilObjectID, "", false
	}
	id, ok := userID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, "", false
	}
	role, _ := c.Get(utils.ContextUserRole)
	roleStr, _ := role.(string)
	return id, roleStr, true
}

func (h *ReservationHandler) buildCreateInput(c *gin.Context, request *validators.ReservationCreateRequest) (*services.CreateReservationInput, bool) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return nil, false
	}

	// Staff may book on behalf of a member; members book for themselves.
	memberID := userID
	if request.MemberID != "" {
		if role != utils.RoleAdmin {
			utils.ForbiddenResponse(c)
			return nil, false
		}
		id, err := primitive.ObjectIDFromHex(request.MemberID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid member ID")
			return nil, false
		}
		memberID = id
	}

	carID, err := primitive.ObjectIDFromHex(request.CarID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return nil, false
	}
	pickUpLocationID, err := primitive.ObjectIDFromHex(request.PickUpLocationID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pick-up location ID")
		return nil, false
	}
	dropOffLocationID, err := primitive.ObjectIDFromHex(request.DropOffLocationID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid drop-off location ID")
		return nil, false
	}
	pickUpDate, err := utils.ParseDate(request.PickUpDate)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pick-up date")
		return nil, false
	}
	dropOffDate, err := utils.ParseDate(request.DropOffDate)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid drop-off date")
		return nil, false
	}
	serviceIDs, err := validators.ParseObjectIDs(request.ServiceIDs)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid service ID")
		return nil, false
	}
	equipmentIDs, err := validators.ParseObjectIDs(request.EquipmentIDs)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid equipment ID")
		return nil, false
	}

	return &services.CreateReservationInput{
		MemberID:          memberID,
		CarID:             carID,
		PickUpLocationID:  pickUpLocationID,
		DropOffLocationID: dropOffLocationID,
		PickUpDate:        pickUpDate,
		DropOffDate:       dropOffDate,
		ServiceIDs:        serviceIDs,
		EquipmentIDs:      equipmentIDs,
		Notes:             request.Notes,
	}, true
}

// CreateReservation books a car for the requested date range.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var request validators.ReservationCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	input, ok := h.buildCreateInput(c, &request)
	if !ok {
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Reservation created successfully", reservation)
}

// QuoteReservation prices a prospective reservation without persisting it.
func (h *ReservationHandler) QuoteReservation(c *gin.Context) {
	var request validators.ReservationCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	input, ok := h.buildCreateInput(c, &request)
	if !ok {
		return
	}

	quote, err := h.reservationService.Quote(c.Request.Context(), input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Reservation quote calculated", quote)
}

func (h *ReservationHandler) loadOwnedReservation(c *gin.Context) (*models.Reservation, bool) {
	reservationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reservation ID")
		return nil, false
	}

	userID, role, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return nil, false
	}

	reservation, err := h.reservationService.GetByID(c.Request.Context(), reservationID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return nil, false
	}

	if role != utils.RoleAdmin && reservation.MemberID != userID {
		utils.ForbiddenResponse(c)
		return nil, false
	}

	return reservation, true
}

// GetReservation returns a single reservation by ID.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	reservation, ok := h.loadOwnedReservation(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, "Reservation retrieved successfully", reservation)
}

// UpdateReservation patches the mutable fields of an active reservation.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	reservation, ok := h.loadOwnedReservation(c)
	if !ok {
		return
	}

	var request validators.ReservationUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	input := &services.UpdateReservationInput{Notes: request.Notes}

	if request.PickUpLocationID != nil {
		id, err := primitive.ObjectIDFromHex(*request.PickUpLocationID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid pick-up location ID")
			return
		}
		input.PickUpLocationID = &id
	}
	if request.DropOffLocationID != nil {
		id, err := primitive.ObjectIDFromHex(*request.DropOffLocationID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid drop-off location ID")
			return
		}
		input.DropOffLocationID = &id
	}
	if request.PickUpDate != nil {
		date, err := utils.ParseDate(*request.PickUpDate)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid pick-up date")
			return
		}
		input.PickUpDate = &date
	}
	if request.DropOffDate != nil {
		date, err := utils.ParseDate(*request.DropOffDate)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid drop-off date")
			return
		}
		input.DropOffDate = &date
	}
	if request.ServiceIDs != nil {
		ids, err := validators.ParseObjectIDs(*request.ServiceIDs)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid service ID")
			return
		}
		input.ServiceIDs = &ids
	}
	if request.EquipmentIDs != nil {
		ids, err := validators.ParseObjectIDs(*request.EquipmentIDs)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid equipment ID")
			return
		}
		input.EquipmentIDs = &ids
	}

	updated, err := h.reservationService.Update(c.Request.Context(), reservation.ID, input)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Reservation updated successfully", updated)
}

// UpdateDropOffLocation changes only the drop-off branch of an active
// reservation.
func (h *ReservationHandler) UpdateDropOffLocation(c *gin.Context) {
	reservation, ok := h.loadOwnedReservation(c)
	if !ok {
		return
	}

	var request validators.DropOffLocationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	locationID, err := primitive.ObjectIDFromHex(request.DropOffLocationID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid drop-off location ID")
		return
	}

	updated, err := h.reservationService.UpdateDropOffLocation(c.Request.Context(), reservation.ID, locationID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Drop-off location updated successfully", updated)
}

// CancelReservation transitions an active reservation to cancelled.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	reservation, ok := h.loadOwnedReservation(c)
	if !ok {
		return
	}

	cancelled, err := h.reservationService.Cancel(c.Request.Context(), reservation.ID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Reservation cancelled successfully", cancelled)
}

// CompleteReservation transitions an active reservation to completed.
// Staff only; completion records the car as returned.
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	reservationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reservation ID")
		return
	}

	completed, err := h.reservationService.Complete(c.Request.Context(), reservationID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Reservation completed successfully", completed)
}

// GetMyReservations lists the authenticated member's reservations.
func (h *ReservationHandler) GetMyReservations(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	reservations, err := h.reservationService.ListForMember(c.Request.Context(), userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Reservations retrieved successfully", reservations, &utils.Meta{
		Count: len(reservations),
	})
}

// ListReservations lists all reservations with optional status filter.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.ReservationStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.ReservationStatus(statusStr)
		if s != models.ReservationStatusActive && s != models.ReservationStatusCompleted && s != models.ReservationStatusCancelled {
			utils.BadRequestResponse(c, "Invalid status filter")
			return
		}
		status = &s
	}

	reservations, total, meta, err := h.reservationService.List(c.Request.Context(), status, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Reservations retrieved successfully", reservations, &utils.Meta{
		Pagination: meta,
		Total:      total,
		Count:      len(reservations),
	})
}

// GetCarReservations lists the booking history of a single car.
func (h *ReservationHandler) GetCarReservations(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	var status *models.ReservationStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.ReservationStatus(statusStr)
		status = &s
	}

	reservations, err := h.reservationService.ListForCar(c.Request.Context(), carID, status)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Reservations retrieved successfully", reservations, &utils.Meta{
		Count: len(reservations),
	})
}
