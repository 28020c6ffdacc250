package handlers

import (
	"crms/internal/models"
	"crms/internal/services"
	"crms/internal/utils"
	"crms/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AddOnHandler struct {
	addOnService services.AddOnService
}

func NewAddOnHandler(addOnService services.AddOnService) *AddOnHandler {
	return &AddOnHandler{
		addOnService: addOnService,
	}
}

// ListServices returns the bookable additional services.
func (h *AddOnHandler) ListServices(c *gin.Context) {
	result, err := h.addOnService.ListServices(c.Request.Context())
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Additional services retrieved successfully", result, &utils.Meta{
		Count: len(result),
	})
}

// CreateService adds a bookable additional service.
func (h *AddOnHandler) CreateService(c *gin.Context) {
	var request validators.AddOnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	service := &models.AdditionalService{
		Name:        request.Name,
		Description: request.Description,
		Category:    request.Category,
		DailyPrice:  request.DailyPrice,
	}

	created, err := h.addOnService.CreateService(c.Request.Context(), service)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Additional service created successfully", created)
}

// UpdateService replaces an additional service's catalog entry.
func (h *AddOnHandler) UpdateService(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid service ID")
		return
	}

	var request validators.AddOnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	service := &models.AdditionalService{
		ID:          serviceID,
		Name:        request.Name,
		Description: request.Description,
		Category:    request.Category,
		DailyPrice:  request.DailyPrice,
	}

	updated, err := h.addOnService.UpdateService(c.Request.Context(), service)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Additional service updated successfully", updated)
}

// DeleteService removes an additional service from the catalog. Existing
// reservations keep their snapshotted price.
func (h *AddOnHandler) DeleteService(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid service ID")
		return
	}

	if err := h.addOnService.DeleteService(c.Request.Context(), serviceID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Additional service deleted successfully", nil)
}

// ListEquipment returns the bookable equipment items.
func (h *AddOnHandler) ListEquipment(c *gin.Context) {
	result, err := h.addOnService.ListEquipment(c.Request.Context())
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Equipment retrieved successfully", result, &utils.Meta{
		Count: len(result),
	})
}

// CreateEquipment adds a bookable equipment item.
func (h *AddOnHandler) CreateEquipment(c *gin.Context) {
	var request validators.AddOnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	equipment := &models.Equipment{
		Name:        request.Name,
		Description: request.Description,
		Category:    request.Category,
		DailyPrice:  request.DailyPrice,
	}

	created, err := h.addOnService.CreateEquipment(c.Request.Context(), equipment)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Equipment created successfully", created)
}

// UpdateEquipment replaces an equipment item's catalog entry.
func (h *AddOnHandler) UpdateEquipment(c *gin.Context) {
	equipmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid equipment ID")
		return
	}

	var request validators.AddOnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	equipment := &models.Equipment{
		ID:          equipmentID,
		Name:        request.Name,
		Description: request.Description,
		Category:    request.Category,
		DailyPrice:  request.DailyPrice,
	}

	updated, err := h.addOnService.UpdateEquipment(c.Request.Context(), equipment)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Equipment updated successfully", updated)
}

// DeleteEquipment removes an equipment item from the catalog.
func (h *AddOnHandler) DeleteEquipment(c *gin.Context) {
	equipmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid equipment ID")
		return
	}

	if err := h.addOnService.DeleteEquipment(c.Request.Context(), equipmentID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Equipment deleted successfully", nil)
}
