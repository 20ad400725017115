package entity

import "time"

// Estados de una solicitud de registro.
const (
	RequestPending  = "pendiente"
	RequestApproved = "aprobado"
	RequestRejected = "rechazado"
)

// RegistrationRequest solicitud pública de alta de una embarcación.
// Pasa a aprobado (creando un User) o rechazado; ambos estados son terminales.
type RegistrationRequest struct {
	ID          string
	BoatName    string
	CaptainName string
	Phone       string
	Email       string
	Status      string
	ProcessedBy string // vacío mientras está pendiente
	ProcessedAt *time.Time
	CreatedAt   time.Time
}
