package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

var pdfMagic = []byte("%PDF")

// QuotationUseCase cotizaciones (PDF) que el proveedor adjunta a una orden tomada.
// Adjuntar una cotización no cambia el estado de la orden.
type QuotationUseCase struct {
	quotations repository.QuotationRepository
	orders     repository.OrderRepository
	notifier   *NotificationUseCase
	maxBytes   int64
	log        *logger.Logger
}

// NewQuotationUseCase construye el caso de uso. maxBytes limita el tamaño del archivo.
func NewQuotationUseCase(
	quotations repository.QuotationRepository,
	orders repository.OrderRepository,
	notifier *NotificationUseCase,
	maxBytes int64,
	log *logger.Logger,
) *QuotationUseCase {
	return &QuotationUseCase{quotations: quotations, orders: orders, notifier: notifier, maxBytes: maxBytes, log: log}
}

// Upload guarda la cotización del proveedor que tomó la orden y avisa al cliente.
func (uc *QuotationUseCase) Upload(ctx context.Context, actor Actor, orderID string, in dto.UploadQuotationInput) (*dto.QuotationResponse, error) {
	if !actor.IsSupplier() {
		return nil, fmt.Errorf("%w: solo los proveedores pueden subir cotizaciones", domain.ErrForbidden)
	}
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.SupplierID != actor.UserID {
		return nil, fmt.Errorf("%w: la orden no fue tomada por este proveedor", domain.ErrForbidden)
	}
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidInput)
	}
	if uc.maxBytes > 0 && int64(len(in.Data)) > uc.maxBytes {
		return nil, fmt.Errorf("%w: el archivo supera %d MB", domain.ErrInvalidInput, uc.maxBytes/(1024*1024))
	}
	if !bytes.HasPrefix(in.Data, pdfMagic) {
		return nil, fmt.Errorf("%w: solo se aceptan archivos PDF", domain.ErrInvalidInput)
	}
	if in.Amount != nil && in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount no puede ser negativo", domain.ErrInvalidInput)
	}
	name := filepath.Base(strings.TrimSpace(in.FileName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "cotizacion-" + o.OrderNumber + ".pdf"
	}
	q := &entity.Quotation{
		ID:          uuid.New().String(),
		OrderID:     o.ID,
		SupplierID:  actor.UserID,
		FileName:    name,
		ContentType: "application/pdf",
		Data:        in.Data,
		Amount:      in.Amount,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   time.Now().UTC(),
	}
	if q.Amount != nil {
		amount := q.Amount.Round(2)
		q.Amount = &amount
	}
	if err := uc.quotations.Create(ctx, q); err != nil {
		return nil, err
	}
	q.SupplierName = o.SupplierName
	uc.log.Info().Str("order_id", o.ID).Str("quotation_id", q.ID).Int("size", len(q.Data)).Msg("cotización recibida")
	uc.notifier.Notify(ctx, o.ClientID, fmt.Sprintf("Nueva cotización recibida para orden %s", o.OrderNumber))
	out := toQuotationResponse(q)
	return &out, nil
}

// List metadatos de las cotizaciones de una orden visible para el actor.
func (uc *QuotationUseCase) List(ctx context.Context, actor Actor, orderID string) ([]dto.QuotationResponse, error) {
	if _, err := uc.visibleOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	list, err := uc.quotations.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toQuotationResponse(q))
	}
	return out, nil
}

// Download devuelve el archivo de una cotización si el actor puede ver la orden.
func (uc *QuotationUseCase) Download(ctx context.Context, actor Actor, id string) (*entity.Quotation, error) {
	q, err := uc.quotations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.visibleOrder(ctx, actor, q.OrderID); err != nil {
		return nil, err
	}
	return q, nil
}

func (uc *QuotationUseCase) visibleOrder(ctx context.Context, actor Actor, orderID string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !CanViewOrder(actor, o) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func toQuotationResponse(q *entity.Quotation) dto.QuotationResponse {
	return dto.QuotationResponse{
		ID:           q.ID,
		OrderID:      q.OrderID,
		SupplierID:   q.SupplierID,
		SupplierName: q.SupplierName,
		FileName:     q.FileName,
		Size:         len(q.Data),
		Amount:       q.Amount,
		Notes:        q.Notes,
		CreatedAt:    q.CreatedAt,
	}
}
