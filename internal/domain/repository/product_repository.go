package repository

import (
	"context"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// ProductFilter criterios de listado resueltos en la capa de persistencia.
// La búsqueda por texto se aplica después con catalog.Filter.
type ProductFilter struct {
	Category   string
	SupplierID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	// CountByCategory cuenta productos que referencian el slug (política de borrado de categorías).
	CountByCategory(ctx context.Context, slug string) (int, error)
	Count(ctx context.Context) (int, error)
}
