package dto

import "time"

// CreateRegistrationRequest formulario público de solicitud de alta.
type CreateRegistrationRequest struct {
	BoatName    string `json:"boat_name" validate:"required"`
	CaptainName string `json:"captain_name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

// CreateRegistrationResponse confirmación devuelta al formulario público.
type CreateRegistrationResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// RegistrationRequestResponse solicitud vista por el admin.
type RegistrationRequestResponse struct {
	ID          string     `json:"id"`
	BoatName    string     `json:"boat_name"`
	CaptainName string     `json:"captain_name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	ProcessedBy string     `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ApproveRegistrationRequest datos del usuario a crear. Email, Name y Company se
// completan desde la solicitud cuando vienen vacíos; Role y Password son obligatorios.
type ApproveRegistrationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
	Role     string `json:"role" validate:"required,oneof=cliente proveedor admin"`
	Company  string `json:"company"`
}

// ApproveRegistrationResponse resultado de la aprobación.
type ApproveRegistrationResponse struct {
	Message string       `json:"message"`
	UserID  string       `json:"user_id"`
	User    UserResponse `json:"user"`
}
