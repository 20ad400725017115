package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT p.id, p.name, p.description, p.category, p.sku, p.supplier_id, COALESCE(u.name, ''),
	       p.base_price, p.profit_type, p.profit_value, p.iva_percentage, p.price, p.image_url,
	       p.created_at, p.updated_at
	FROM products p
	LEFT JOIN users u ON u.id = p.supplier_id`

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	db Querier
}

// NewProductRepository construye el adaptador.
func NewProductRepository(db Querier) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un producto. SKU repetido para el mismo proveedor -> domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, category, sku, supplier_id, base_price, profit_type,
			profit_value, iva_percentage, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.SKU, p.SupplierID, p.BasePrice, p.ProfitType,
		p.ProfitValue, p.IVAPercentage, p.Price, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapProductWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto con el nombre de su proveedor; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos editables y el precio recalculado.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category = $4, sku = $5, base_price = $6,
			profit_type = $7, profit_value = $8, iva_percentage = $9, price = $10, image_url = $11,
			updated_at = $12
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.SKU, p.BasePrice,
		p.ProfitType, p.ProfitValue, p.IVAPercentage, p.Price, p.ImageURL, p.UpdatedAt,
	)
	if err != nil {
		return mapProductWriteError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List productos más recientes primero, filtrados por categoría y proveedor.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := productSelect + `
		WHERE ($1 = '' OR p.category = $1)
		  AND ($2 = '' OR p.supplier_id::text = $2)
		ORDER BY p.created_at DESC`
	rows, err := r.db.Query(ctx, query, f.Category, f.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCategory cuenta productos que referencian el slug.
func (r *ProductRepo) CountByCategory(ctx context.Context, slug string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM products WHERE category = $1`, slug).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// Count cuenta todos los productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func mapProductWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.SKU, &p.SupplierID, &p.SupplierName,
		&p.BasePrice, &p.ProfitType, &p.ProfitValue, &p.IVAPercentage, &p.Price, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
