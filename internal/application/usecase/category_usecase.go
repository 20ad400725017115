package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/catalog"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías. Borrar una categoría con productos se rechaza.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products}
}

// List todas las categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Create alta de categoría. El slug se normaliza; si viene vacío se deriva del nombre.
func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	slug := catalog.NormalizeSlug(firstNonEmpty(in.Slug, name))
	if slug == "" {
		return nil, fmt.Errorf("%w: slug inválido", domain.ErrInvalidInput)
	}
	existing, err := uc.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una categoría con slug %q", domain.ErrDuplicate, slug)
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   userID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// Update cambia nombre y/o descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// Delete elimina la categoría solo si ningún producto la referencia.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	n, err := uc.products.CountByCategory(ctx, c.Slug)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d producto(s) usan %q", domain.ErrCategoryInUse, n, c.Slug)
	}
	return uc.categories.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
