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
	"github.com/jhoicas/mardecortez-api/internal/domain/pricing"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. Un proveedor solo opera sobre los suyos; el admin
// sobre todos indicando supplier_id. El precio siempre se deriva con pricing.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	users repository.UserRepository,
) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, users: users}
}

// List productos filtrados por categoría, proveedor y texto libre.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductQuery) ([]dto.ProductResponse, error) {
	list, err := uc.products.List(ctx, repository.ProductFilter{
		Category:   strings.TrimSpace(q.Category),
		SupplierID: strings.TrimSpace(q.SupplierID),
	})
	if err != nil {
		return nil, err
	}
	list = catalog.Filter(list, "", q.Q)
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := toProductResponse(p)
	return &out, nil
}

// Create alta de producto. Para un proveedor el dueño es él mismo; el admin debe indicar supplier_id.
func (uc *ProductUseCase) Create(ctx context.Context, actor Actor, in dto.ProductRequest) (*dto.ProductResponse, error) {
	supplierID, err := uc.resolveSupplier(ctx, actor, in.SupplierID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &entity.Product{
		ID:         uuid.New().String(),
		SupplierID: supplierID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.fill(ctx, p, in); err != nil {
		return nil, err
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// Update reemplaza los datos del producto y recalcula el precio.
func (uc *ProductUseCase) Update(ctx context.Context, actor Actor, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() && in.SupplierID != "" && in.SupplierID != p.SupplierID {
		supplierID, err := uc.resolveSupplier(ctx, actor, in.SupplierID)
		if err != nil {
			return nil, err
		}
		p.SupplierID = supplierID
	}
	if err := uc.fill(ctx, p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// Delete elimina un producto propio (o cualquiera si es admin).
func (uc *ProductUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	return uc.products.Delete(ctx, id)
}

// PreviewPrice calcula el precio mientras se edita el formulario, sin persistir.
func (uc *ProductUseCase) PreviewPrice(in dto.PricePreviewRequest) (*dto.PricePreviewResponse, error) {
	pin := pricing.Input{
		BasePrice:     in.BasePrice,
		ProfitType:    in.ProfitType,
		ProfitValue:   in.ProfitValue,
		IVAPercentage: pricing.DefaultIVA,
	}
	if in.IVAPercentage != nil {
		pin.IVAPercentage = *in.IVAPercentage
	}
	price, err := pricing.ComputePrice(pin)
	if err != nil {
		return nil, err
	}
	markup, _ := pricing.Markup(pin)
	return &dto.PricePreviewResponse{BasePrice: in.BasePrice, Markup: markup.Round(2), Price: price}, nil
}

func (uc *ProductUseCase) fill(ctx context.Context, p *entity.Product, in dto.ProductRequest) error {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	slug := catalog.NormalizeSlug(in.Category)
	if name == "" || sku == "" || slug == "" {
		return fmt.Errorf("%w: name, sku y category son requeridos", domain.ErrInvalidInput)
	}
	category, err := uc.categories.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: la categoría %q no existe", domain.ErrInvalidInput, slug)
	}
	p.Name = name
	p.SKU = sku
	p.Category = category.Slug
	p.Description = strings.TrimSpace(in.Description)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.BasePrice = in.BasePrice
	p.ProfitType = in.ProfitType
	p.ProfitValue = in.ProfitValue
	p.IVAPercentage = pricing.DefaultIVA
	if in.IVAPercentage != nil {
		p.IVAPercentage = *in.IVAPercentage
	}
	return pricing.Apply(p)
}

// resolveSupplier devuelve el dueño del producto según quién lo crea.
func (uc *ProductUseCase) resolveSupplier(ctx context.Context, actor Actor, requested string) (string, error) {
	if !actor.IsAdmin() {
		return actor.UserID, nil
	}
	if requested == "" {
		return "", fmt.Errorf("%w: supplier_id es requerido", domain.ErrInvalidInput)
	}
	u, err := uc.users.GetByID(ctx, requested)
	if err != nil {
		return "", err
	}
	if u == nil || u.Role != entity.RoleProveedor {
		return "", fmt.Errorf("%w: supplier_id no corresponde a un proveedor", domain.ErrInvalidInput)
	}
	return u.ID, nil
}

// owned carga el producto y verifica que el actor pueda modificarlo.
func (uc *ProductUseCase) owned(ctx context.Context, actor Actor, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && p.SupplierID != actor.UserID {
		// Para un proveedor, los productos ajenos no existen.
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		SKU:           p.SKU,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		BasePrice:     p.BasePrice,
		ProfitType:    p.ProfitType,
		ProfitValue:   p.ProfitValue,
		IVAPercentage: p.IVAPercentage,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
