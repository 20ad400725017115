package entity

import "time"

// Notification aviso para un usuario (nueva orden, cambio de estado, cotización).
type Notification struct {
	ID        string
	UserID    string
	Message   string
	Read      bool
	CreatedAt time.Time
}
