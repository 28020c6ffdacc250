package validators

type ReservationCreateRequest struct {
	MemberID          string   `json:"member_id" validate:"omitempty,object_id"`
	CarID             string   `json:"car_id" validate:"required,object_id"`
	PickUpLocationID  string   `json:"pick_up_location_id" validate:"required,object_id"`
	DropOffLocationID string   `json:"drop_off_location_id" validate:"required,object_id"`
	PickUpDate        string   `json:"pick_up_date" validate:"required,calendar_date"`
	DropOffDate       string   `json:"drop_off_date" validate:"required,calendar_date"`
	ServiceIDs        []string `json:"service_ids" validate:"omitempty,max=10,dive,object_id"`
	EquipmentIDs      []string `json:"equipment_ids" validate:"omitempty,max=10,dive,object_id"`
	Notes             string   `json:"notes" validate:"omitempty,max=500"`
}

type ReservationUpdateRequest struct {
	PickUpLocationID  *string   `json:"pick_up_location_id" validate:"omitempty,object_id"`
	DropOffLocationID *string   `json:"drop_off_location_id" validate:"omitempty,object_id"`
	PickUpDate        *string   `json:"pick_up_date" validate:"omitempty,calendar_date"`
	DropOffDate       *string   `json:"drop_off_date" validate:"omitempty,calendar_date"`
	ServiceIDs        *[]string `json:"service_ids" validate:"omitempty,max=10,dive,object_id"`
	EquipmentIDs      *[]string `json:"equipment_ids" validate:"omitempty,max=10,dive,object_id"`
	Notes             *string   `json:"notes" validate:"omitempty,max=500"`
}

type DropOffLocationRequest struct {
	DropOffLocationID string `json:"drop_off_location_id" validate:"required,object_id"`
}
