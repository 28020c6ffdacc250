package validators

type CarCreateRequest struct {
	LicensePlate string   `json:"license_plate" validate:"required,license_plate"`
	Brand        string   `json:"brand" validate:"required,min=2,max=50"`
	Model        string   `json:"model" validate:"required,min=1,max=50"`
	Year         int      `json:"year" validate:"omitempty,min=1980,max=2100"`
	Category     string   `json:"category" validate:"required,oneof=sedan suv hatchback truck van"`
	Seats        int      `json:"seats" validate:"required,min=2,max=12"`
	Transmission string   `json:"transmission" validate:"required,oneof=automatic manual"`
	FuelType     string   `json:"fuel_type" validate:"required,oneof=gasoline diesel electric hybrid"`
	DailyRate    float64  `json:"daily_rate" validate:"required,gt=0"`
	LocationID   string   `json:"location_id" validate:"required,object_id"`
	Mileage      float64  `json:"mileage" validate:"omitempty,min=0"`
	Features     []string `json:"features" validate:"omitempty,max=20"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
}

type CarUpdateRequest struct {
	LicensePlate *string   `json:"license_plate" validate:"omitempty,license_plate"`
	Brand        *string   `json:"brand" validate:"omitempty,min=2,max=50"`
	Model        *string   `json:"model" validate:"omitempty,min=1,max=50"`
	Year         *int      `json:"year" validate:"omitempty,min=1980,max=2100"`
	Category     *string   `json:"category" validate:"omitempty,oneof=sedan suv hatchback truck van"`
	Seats        *int      `json:"seats" validate:"omitempty,min=2,max=12"`
	Transmission *string   `json:"transmission" validate:"omitempty,oneof=automatic manual"`
	FuelType     *string   `json:"fuel_type" validate:"omitempty,oneof=gasoline diesel electric hybrid"`
	DailyRate    *float64  `json:"daily_rate" validate:"omitempty,gt=0"`
	LocationID   *string   `json:"location_id" validate:"omitempty,object_id"`
	Mileage      *float64  `json:"mileage" validate:"omitempty,min=0"`
	Features     *[]string `json:"features" validate:"omitempty,max=20"`
	ImageURL     *string   `json:"image_url" validate:"omitempty,url"`
}

type CarStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available unavailable maintenance"`
}
