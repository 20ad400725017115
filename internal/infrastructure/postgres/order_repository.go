package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.order_number, o.client_id, COALESCE(c.name, ''), o.supplier_id, COALESCE(s.name, ''),
	       o.products, o.total, o.status, o.assigned_to, o.cancellation_reason, o.notes,
	       o.created_at, o.updated_at
	FROM orders o
	LEFT JOIN users c ON c.id = o.client_id
	LEFT JOIN users s ON s.id = o.supplier_id`

// orderLineRecord forma JSONB de un renglón dentro de orders.products.
type orderLineRecord struct {
	ProductID   string           `json:"product_id,omitempty"`
	ProductName string           `json:"product_name"`
	Description string           `json:"description,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    int              `json:"quantity"`
	IsCustom    bool             `json:"is_custom"`
}

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	db Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(db Querier) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create persiste una orden con sus renglones.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	lines, err := encodeLines(o.Lines)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO orders (id, order_number, client_id, supplier_id, products, total, status, assigned_to,
			cancellation_reason, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.Exec(ctx, query,
		o.ID, o.OrderNumber, o.ClientID, nullable(o.SupplierID), lines, o.Total, o.Status, o.AssignedTo,
		o.CancellationReason, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden con nombres de cliente y proveedor; nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// List órdenes más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := orderSelect + `
		WHERE ($1 = '' OR o.client_id::text = $1)
		  AND ($2 = '' OR o.supplier_id::text = $2)
		  AND (NOT $3 OR (o.supplier_id IS NULL AND o.status NOT IN ($4, $5)))
		ORDER BY o.created_at DESC`
	rows, err := r.db.Query(ctx, query,
		f.ClientID, f.SupplierID, f.Unclaimed, entity.OrderCompleted, entity.OrderCancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update persiste estado, responsable, motivo, renglones y total.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	lines, err := encodeLines(o.Lines)
	if err != nil {
		return err
	}
	query := `
		UPDATE orders SET status = $2, assigned_to = $3, cancellation_reason = $4, products = $5,
			total = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		o.ID, o.Status, o.AssignedTo, o.CancellationReason, lines, o.Total, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Claim asigna el proveedor con un UPDATE condicionado a supplier_id IS NULL y a un
// estado no terminal; de dos proveedores concurrentes solo uno afecta la fila.
func (r *OrderRepo) Claim(ctx context.Context, o *entity.Order) error {
	lines, err := encodeLines(o.Lines)
	if err != nil {
		return err
	}
	query := `
		UPDATE orders SET supplier_id = $2, status = $3, assigned_to = $4, products = $5, total = $6,
			updated_at = $7
		WHERE id = $1 AND supplier_id IS NULL AND status NOT IN ($8, $9)`
	tag, err := r.db.Exec(ctx, query,
		o.ID, o.SupplierID, o.Status, o.AssignedTo, lines, o.Total, o.UpdatedAt,
		entity.OrderCompleted, entity.OrderCancelled,
	)
	if err != nil {
		return fmt.Errorf("claim order: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var (
		claimed bool
		status  string
	)
	err = r.db.QueryRow(ctx, `SELECT supplier_id IS NOT NULL, status FROM orders WHERE id = $1`, o.ID).
		Scan(&claimed, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("claim order: %w", err)
	}
	if claimed {
		return domain.ErrOrderAlreadyClaimed
	}
	return domain.ErrOrderClosed
}

// Delete elimina una orden cancelada (y sus cotizaciones por cascada).
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND status = $2`, id, entity.OrderCancelled)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrOrderNotCancelled
}

// Count cuenta todas las órdenes.
func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// SumTotalByStatus suma Total de las órdenes en el estado indicado.
func (r *OrderRepo) SumTotalByStatus(ctx context.Context, status string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(sum(total), 0) FROM orders WHERE status = $1`, status).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum orders total: %w", err)
	}
	return sum, nil
}

func encodeLines(lines []entity.OrderLine) ([]byte, error) {
	recs := make([]orderLineRecord, 0, len(lines))
	for _, l := range lines {
		recs = append(recs, orderLineRecord{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Description: l.Description,
			ImageURL:    l.ImageURL,
			Price:       l.Price,
			Quantity:    l.Quantity,
			IsCustom:    l.IsCustom,
		})
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encode order lines: %w", err)
	}
	return b, nil
}

func decodeLines(b []byte) ([]entity.OrderLine, error) {
	var recs []orderLineRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("decode order lines: %w", err)
	}
	lines := make([]entity.OrderLine, 0, len(recs))
	for _, rec := range recs {
		lines = append(lines, entity.OrderLine{
			ProductID:   rec.ProductID,
			ProductName: rec.ProductName,
			Description: rec.Description,
			ImageURL:    rec.ImageURL,
			Price:       rec.Price,
			Quantity:    rec.Quantity,
			IsCustom:    rec.IsCustom,
		})
	}
	return lines, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var supplierID *string
	var lines []byte
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.ClientID, &o.ClientName, &supplierID, &o.SupplierName,
		&lines, &o.Total, &o.Status, &o.AssignedTo, &o.CancellationReason, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.SupplierID = deref(supplierID)
	decoded, err := decodeLines(lines)
	if err != nil {
		return nil, err
	}
	o.Lines = decoded
	return &o, nil
}
