package dto

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

type VerifyRequest struct {
	PlateNumber  string `json:"plate_number" validate:"required"`
	VehicleClass string `json:"vehicle_class" validate:"required"`
}
