package handlers

import (
	"strconv"

	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/services"
	"crms/internal/utils"
	"crms/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarHandler struct {
	carService services.CarService
}

func NewCarHandler(carService services.CarService) *CarHandler {
	return &CarHandler{
		carService: carService,
	}
}

// SearchCars browses the fleet. When pick_up_date and drop_off_date are
// given, cars already booked inside that range are filtered out.
func (h *CarHandler) SearchCars(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := &services.CarSearchInput{
		Filter: interfaces.CarFilter{
			Brand:        c.Query("brand"),
			Model:        c.Query("model"),
			Category:     models.CarCategory(c.Query("category")),
			Transmission: models.Transmission(c.Query("transmission")),
			FuelType:     models.FuelType(c.Query("fuel_type")),
		},
	}

	if seatsStr := c.Query("seats"); seatsStr != "" {
		seats, err := strconv.Atoi(seatsStr)
		if err != nil || seats < 0 {
			utils.BadRequestResponse(c, "Invalid seats value")
			return
		}
		input.Filter.Seats = seats
	}
	if minStr := c.Query("min_daily_rate"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil || min < 0 {
			utils.BadRequestResponse(c, "Invalid min_daily_rate value")
			return
		}
		input.Filter.MinDailyRate = min
	}
	if maxStr := c.Query("max_daily_rate"); maxStr != "" {
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil || max < 0 {
			utils.BadRequestResponse(c, "Invalid max_daily_rate value")
			return
		}
		input.Filter.MaxDailyRate = max
	}
	if locationStr := c.Query("location_id"); locationStr != "" {
		locationID, err := primitive.ObjectIDFromHex(locationStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid location ID")
			return
		}
		input.Filter.LocationID = &locationID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.CarStatus(statusStr)
		input.Filter.Status = &status
	}

	pickUpStr := c.Query("pick_up_date")
	dropOffStr := c.Query("drop_off_date")
	if pickUpStr != "" || dropOffStr != "" {
		if pickUpStr == "" || dropOffStr == "" {
			utils.BadRequestResponse(c, "Both pick_up_date and drop_off_date are required for availability filtering")
			return
		}
		pickUp, err := utils.ParseDate(pickUpStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid pick-up date")
			return
		}
		dropOff, err := utils.ParseDate(dropOffStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid drop-off date")
			return
		}
		input.PickUpDate = &pickUp
		input.DropOffDate = &dropOff
	}

	cars, total, err := h.carService.Search(c.Request.Context(), input, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Cars retrieved successfully", cars, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(cars),
	})
}

// GetCar returns a single car by ID.
func (h *CarHandler) GetCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	car, err := h.carService.GetByID(c.Request.Context(), carID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car retrieved successfully", car)
}

// CreateCar adds a car to the fleet.
func (h *CarHandler) CreateCar(c *gin.Context) {
	var request validators.CarCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	locationID, err := primitive.ObjectIDFromHex(request.LocationID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid location ID")
		return
	}

	car := &models.Car{
		LicensePlate: request.LicensePlate,
		Brand:        request.Brand,
		Model:        request.Model,
		Year:         request.Year,
		Category:     models.CarCategory(request.Category),
		Seats:        request.Seats,
		Transmission: models.Transmission(request.Transmission),
		FuelType:     models.FuelType(request.FuelType),
		DailyRate:    request.DailyRate,
		LocationID:   locationID,
		Mileage:      request.Mileage,
		Features:     request.Features,
		ImageURL:     request.ImageURL,
	}

	created, err := h.carService.Create(c.Request.Context(), car)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Car created successfully", created)
}

// UpdateCar patches a car's catalog fields.
func (h *CarHandler) UpdateCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	var request validators.CarUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	car, err := h.carService.GetByID(c.Request.Context(), carID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	if request.LicensePlate != nil {
		car.LicensePlate = *request.LicensePlate
	}
	if request.Brand != nil {
		car.Brand = *request.Brand
	}
	if request.Model != nil {
		car.Model = *request.Model
	}
	if request.Year != nil {
		car.Year = *request.Year
	}
	if request.Category != nil {
		car.Category = models.CarCategory(*request.Category)
	}
	if request.Seats != nil {
		car.Seats = *request.Seats
	}
	if request.Transmission != nil {
		car.Transmission = models.Transmission(*request.Transmission)
	}
	if request.FuelType != nil {
		car.FuelType = models.FuelType(*request.FuelType)
	}
	if request.DailyRate != nil {
		car.DailyRate = *request.DailyRate
	}
	if request.LocationID != nil {
		locationID, err := primitive.ObjectIDFromHex(*request.LocationID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid location ID")
			return
		}
		car.LocationID = locationID
	}
	if request.Mileage != nil {
		car.Mileage = *request.Mileage
	}
	if request.Features != nil {
		car.Features = *request.Features
	}
	if request.ImageURL != nil {
		car.ImageURL = *request.ImageURL
	}

	updated, err := h.carService.Update(c.Request.Context(), car)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car updated successfully", updated)
}

// DeleteCar removes a car; blocked while the car has active reservations.
func (h *CarHandler) DeleteCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	if err := h.carService.Delete(c.Request.Context(), carID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car deleted successfully", nil)
}

// SetCarStatus lets staff park a car in maintenance or bring it back.
func (h *CarHandler) SetCarStatus(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	var request validators.CarStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	car, err := h.carService.SetStatus(c.Request.Context(), carID, models.CarStatus(request.Status))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car status updated successfully", car)
}
