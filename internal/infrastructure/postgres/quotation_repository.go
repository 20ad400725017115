package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo cotizaciones sobre PostgreSQL; el PDF se guarda en una columna BYTEA.
type QuotationRepo struct {
	db Querier
}

// NewQuotationRepository construye el adaptador.
func NewQuotationRepository(db Querier) *QuotationRepo {
	return &QuotationRepo{db: db}
}

// Create persiste una cotización con su archivo.
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	var amount decimal.NullDecimal
	if q.Amount != nil {
		amount = decimal.NewNullDecimal(*q.Amount)
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO quotations (id, order_id, supplier_id, file_name, content_type, data, amount, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		q.ID, q.OrderID, q.SupplierID, q.FileName, q.ContentType, q.Data, amount, q.Notes, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// GetByID obtiene la cotización con su archivo; nil si no existe.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT q.id, q.order_id, q.supplier_id, COALESCE(u.name, ''), q.file_name, q.content_type,
		       q.amount, q.notes, q.created_at, q.data
		FROM quotations q LEFT JOIN users u ON u.id = q.supplier_id
		WHERE q.id = $1`, id)
	var q entity.Quotation
	var amount decimal.NullDecimal
	err := row.Scan(&q.ID, &q.OrderID, &q.SupplierID, &q.SupplierName, &q.FileName, &q.ContentType,
		&amount, &q.Notes, &q.CreatedAt, &q.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	q.Amount = amountPtr(amount)
	return &q, nil
}

// ListByOrder metadatos de las cotizaciones de la orden, más recientes primero.
func (r *QuotationRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Quotation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT q.id, q.order_id, q.supplier_id, COALESCE(u.name, ''), q.file_name, q.content_type,
		       q.amount, q.notes, q.created_at
		FROM quotations q LEFT JOIN users u ON u.id = q.supplier_id
		WHERE q.order_id = $1 ORDER BY q.created_at DESC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Quotation, 0)
	for rows.Next() {
		var q entity.Quotation
		var amount decimal.NullDecimal
		if err := rows.Scan(&q.ID, &q.OrderID, &q.SupplierID, &q.SupplierName, &q.FileName, &q.ContentType,
			&amount, &q.Notes, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		q.Amount = amountPtr(amount)
		list = append(list, &q)
	}
	return list, rows.Err()
}

func amountPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
