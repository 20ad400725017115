package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// OrderFilter criterios de listado. Todos los campos vacíos = todas las órdenes.
type OrderFilter struct {
	ClientID   string
	SupplierID string
	// Unclaimed limita a órdenes sin proveedor y no cerradas (bolsa disponible).
	Unclaimed bool
}

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// List ordena por fecha de creación descendente.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// Update persiste estado, responsable, motivo, renglones y total.
	Update(ctx context.Context, order *entity.Order) error
	// Claim asigna la orden al proveedor de order.SupplierID solo si aún no tiene proveedor
	// (compare-and-swap). Retorna domain.ErrOrderAlreadyClaimed si otro la tomó antes y
	// domain.ErrOrderClosed si la orden está completada o cancelada.
	Claim(ctx context.Context, order *entity.Order) error
	// Delete elimina solo órdenes canceladas; si no, domain.ErrOrderNotCancelled.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// SumTotalByStatus suma Total de las órdenes en el estado indicado.
	SumTotalByStatus(ctx context.Context, status string) (decimal.Decimal, error)
}
