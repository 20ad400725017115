package usecase

import (
	"context"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta fn dentro de una transacción con los repos de usuarios y solicitudes.
// Si fn retorna error no queda nada persistido.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		users repository.UserRepository,
		requests repository.RegistrationRequestRepository,
	) error) error
}

// OrderDocumentGenerator genera la hoja imprimible (PDF) de una orden.
type OrderDocumentGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order) ([]byte, error)
}

// OrderExporter genera la hoja de cálculo con el listado de órdenes.
type OrderExporter interface {
	ExportOrders(ctx context.Context, orders []*entity.Order) ([]byte, error)
}
