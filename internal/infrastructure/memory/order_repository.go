package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/order"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	s *Store
}

func cloneOrder(o entity.Order) entity.Order {
	o.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return o
}

// Create persiste una orden.
func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders.rows[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.orders.put(o.ID, cloneOrder(*o))
	return nil
}

// GetByID obtiene una orden con nombres de cliente y proveedor; nil si no existe.
func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders.rows[id]
	if !ok {
		return nil, nil
	}
	out := r.withNames(o)
	return &out, nil
}

// List órdenes más recientes primero.
func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Order, 0)
	r.s.orders.newestFirst(func(o entity.Order) {
		if f.ClientID != "" && o.ClientID != f.ClientID {
			return
		}
		if f.SupplierID != "" && o.SupplierID != f.SupplierID {
			return
		}
		if f.Unclaimed && (o.Claimed() || order.IsTerminal(o.Status)) {
			return
		}
		out := r.withNames(o)
		list = append(list, &out)
	})
	return list, nil
}

// Update persiste estado, responsable, motivo, renglones y total.
func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders.rows[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = o.Status
	cur.AssignedTo = o.AssignedTo
	cur.CancellationReason = o.CancellationReason
	cur.Lines = append([]entity.OrderLine(nil), o.Lines...)
	cur.Total = o.Total
	cur.UpdatedAt = o.UpdatedAt
	r.s.orders.put(cur.ID, cur)
	return nil
}

// Claim asigna el proveedor solo si la orden sigue sin proveedor y abierta.
func (r *OrderRepo) Claim(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders.rows[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Claimed() {
		return domain.ErrOrderAlreadyClaimed
	}
	if order.IsTerminal(cur.Status) {
		return domain.ErrOrderClosed
	}
	cur.SupplierID = o.SupplierID
	cur.Status = o.Status
	cur.AssignedTo = o.AssignedTo
	cur.Lines = append([]entity.OrderLine(nil), o.Lines...)
	cur.Total = o.Total
	cur.UpdatedAt = o.UpdatedAt
	r.s.orders.put(cur.ID, cur)
	return nil
}

// Delete elimina una orden por ID si está cancelada.
func (r *OrderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !order.CanDelete(cur.Status) {
		return domain.ErrOrderNotCancelled
	}
	r.s.orders.remove(id)
	return nil
}

// Count cuenta todas las órdenes.
func (r *OrderRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.orders.rows), nil
}

// SumTotalByStatus suma Total de las órdenes en el estado indicado.
func (r *OrderRepo) SumTotalByStatus(_ context.Context, status string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, o := range r.s.orders.rows {
		if o.Status == status {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}

func (r *OrderRepo) withNames(o entity.Order) entity.Order {
	o = cloneOrder(o)
	if u, ok := r.s.users.rows[o.ClientID]; ok {
		o.ClientName = u.Name
	}
	if u, ok := r.s.users.rows[o.SupplierID]; ok {
		o.SupplierName = u.Name
	}
	return o
}
