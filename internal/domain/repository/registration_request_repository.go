package repository

import (
	"context"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// RegistrationRequestRepository define el puerto de persistencia para solicitudes de registro.
type RegistrationRequestRepository interface {
	Create(ctx context.Context, req *entity.RegistrationRequest) error
	GetByID(ctx context.Context, id string) (*entity.RegistrationRequest, error)
	// FindPendingByEmail devuelve la solicitud pendiente con ese email, o nil.
	FindPendingByEmail(ctx context.Context, email string) (*entity.RegistrationRequest, error)
	// List ordena por fecha de creación descendente; status vacío = todas.
	List(ctx context.Context, status string) ([]*entity.RegistrationRequest, error)
	// UpdateStatus cambia el estado solo si la solicitud sigue pendiente.
	// Retorna domain.ErrRequestProcessed si ya fue procesada.
	UpdateStatus(ctx context.Context, req *entity.RegistrationRequest) error
	Count(ctx context.Context, status string) (int, error)
}
