package memory

import (
	"context"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository. SKU único por proveedor.
type ProductRepo struct {
	s *Store
}

// Create persiste un producto.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(p) {
		return domain.ErrDuplicate
	}
	r.s.products.put(p.ID, *p)
	return nil
}

// GetByID obtiene un producto con el nombre de su proveedor; nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products.rows[id]
	if !ok {
		return nil, nil
	}
	p.SupplierName = r.supplierName(p.SupplierID)
	return &p, nil
}

// Update actualiza un producto.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products.rows[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.skuTaken(p) {
		return domain.ErrDuplicate
	}
	r.s.products.put(p.ID, *p)
	return nil
}

// List productos más recientes primero, filtrados por categoría y proveedor.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0)
	r.s.products.newestFirst(func(p entity.Product) {
		if f.Category != "" && p.Category != f.Category {
			return
		}
		if f.SupplierID != "" && p.SupplierID != f.SupplierID {
			return
		}
		p.SupplierName = r.supplierName(p.SupplierID)
		list = append(list, &p)
	})
	return list, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.products.remove(id) {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCategory cuenta productos que referencian el slug.
func (r *ProductRepo) CountByCategory(ctx context.Context, slug string) (int, error) {
	list, err := r.List(ctx, repository.ProductFilter{Category: slug})
	return len(list), err
}

// Count cuenta todos los productos.
func (r *ProductRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.products.rows), nil
}

func (r *ProductRepo) skuTaken(p *entity.Product) bool {
	for id, existing := range r.s.products.rows {
		if id != p.ID && existing.SupplierID == p.SupplierID && existing.SKU == p.SKU {
			return true
		}
	}
	return false
}

func (r *ProductRepo) supplierName(id string) string {
	if u, ok := r.s.users.rows[id]; ok {
		return u.Name
	}
	return ""
}
