package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s *Store
}

// Create persiste una categoría; el slug es único.
func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories.rows {
		if existing.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	r.s.categories.put(c.ID, *c)
	return nil
}

// GetByID obtiene una categoría; nil si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetBySlug obtiene una categoría por slug; nil si no existe.
func (r *CategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories.rows {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

// Update actualiza nombre y descripción.
func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories.rows[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories.put(c.ID, *c)
	return nil
}

// List devuelve las categorías ordenadas por nombre.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.s.categories.rows))
	for _, c := range r.s.categories.rows {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.categories.remove(id) {
		return domain.ErrNotFound
	}
	return nil
}
