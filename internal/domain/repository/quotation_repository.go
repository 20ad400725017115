package repository

import (
	"context"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// QuotationRepository define el puerto de persistencia para cotizaciones.
type QuotationRepository interface {
	Create(ctx context.Context, q *entity.Quotation) error
	// GetByID incluye el contenido del archivo.
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	// ListByOrder devuelve metadatos (Data vacío), más recientes primero.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Quotation, error)
}
