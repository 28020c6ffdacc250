package handlers

import (
	"crms/internal/models"
	"crms/internal/services"
	"crms/internal/utils"
	"crms/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationHandler struct {
	locationService services.LocationService
}

func NewLocationHandler(locationService services.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// ListLocations returns every rental branch.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationService.List(c.Request.Context())
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Locations retrieved successfully", locations, &utils.Meta{
		Count: len(locations),
	})
}

// GetLocation returns a single branch by ID.
func (h *LocationHandler) GetLocation(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid location ID")
		return
	}

	location, err := h.locationService.GetByID(c.Request.Context(), locationID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Location retrieved successfully", location)
}

// CreateLocation registers a new rental branch.
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var request validators.LocationCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	location := &models.BranchLocation{
		Code:    request.Code,
		Name:    request.Name,
		Address: request.Address,
		City:    request.City,
		Phone:   request.Phone,
	}

	created, err := h.locationService.Create(c.Request.Context(), location)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Location created successfully", created)
}

// UpdateLocation patches a branch's details.
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid location ID")
		return
	}

	var request validators.LocationUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	location, err := h.locationService.GetByID(c.Request.Context(), locationID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	if request.Code != nil {
		location.Code = *request.Code
	}
	if request.Name != nil {
		location.Name = *request.Name
	}
	if request.Address != nil {
		location.Address = *request.Address
	}
	if request.City != nil {
		location.City = *request.City
	}
	if request.Phone != nil {
		location.Phone = *request.Phone
	}

	updated, err := h.locationService.Update(c.Request.Context(), location)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Location updated successfully", updated)
}

// DeleteLocation removes a branch; blocked while cars are assigned to it.
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid location ID")
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), locationID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Location deleted successfully", nil)
}
