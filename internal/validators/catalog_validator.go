package validators

type LocationCreateRequest struct {
	Code    string `json:"code" validate:"required,location_code"`
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"omitempty,max=255"`
	City    string `json:"city" validate:"omitempty,max=100"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
}

type LocationUpdateRequest struct {
	Code    *string `json:"code" validate:"omitempty,location_code"`
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	City    *string `json:"city" validate:"omitempty,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
}

type AddOnRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Category    string  `json:"category" validate:"omitempty,max=50"`
	DailyPrice  float64 `json:"daily_price" validate:"required,gt=0"`
}

type MemberRegisterRequest struct {
	FirstName            string `json:"first_name" validate:"required,min=1,max=100"`
	LastName             string `json:"last_name" validate:"required,min=1,max=100"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone" validate:"omitempty,max=30"`
	DrivingLicenseNumber string `json:"driving_license_number" validate:"omitempty,max=50"`
}

type MemberUpdateRequest struct {
	FirstName            *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName             *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Phone                *string `json:"phone" validate:"omitempty,max=30"`
	DrivingLicenseNumber *string `json:"driving_license_number" validate:"omitempty,max=50"`
}
