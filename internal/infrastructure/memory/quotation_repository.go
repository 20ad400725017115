package memory

import (
	"context"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación en memoria de QuotationRepository.
type QuotationRepo struct {
	s *Store
}

// Create persiste una cotización con su archivo.
func (r *QuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *q
	cp.Data = append([]byte(nil), q.Data...)
	r.s.quotations.put(cp.ID, cp)
	return nil
}

// GetByID obtiene la cotización con su archivo; nil si no existe.
func (r *QuotationRepo) GetByID(_ context.Context, id string) (*entity.Quotation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.quotations.rows[id]
	if !ok {
		return nil, nil
	}
	q.Data = append([]byte(nil), q.Data...)
	q.SupplierName = r.supplierName(q.SupplierID)
	return &q, nil
}

// ListByOrder metadatos de las cotizaciones de la orden, más recientes primero.
func (r *QuotationRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Quotation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Quotation, 0)
	r.s.quotations.newestFirst(func(q entity.Quotation) {
		if q.OrderID != orderID {
			return
		}
		q.Data = nil
		q.SupplierName = r.supplierName(q.SupplierID)
		list = append(list, &q)
	})
	return list, nil
}

func (r *QuotationRepo) supplierName(id string) string {
	if u, ok := r.s.users.rows[id]; ok {
		return u.Name
	}
	return ""
}
