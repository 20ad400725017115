package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/order"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

// OrderUseCase creación de órdenes y su ciclo de vida: toma por proveedor, precios por renglón,
// cambios de estado, borrado, hoja PDF y exportación.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	notifier *NotificationUseCase
	pdf      OrderDocumentGenerator
	exporter OrderExporter
	log      *logger.Logger
}

// NewOrderUseCase construye el caso de uso inyectando todas sus dependencias.
func NewOrderUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	notifier *NotificationUseCase,
	pdf OrderDocumentGenerator,
	exporter OrderExporter,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		products: products,
		users:    users,
		notifier: notifier,
		pdf:      pdf,
		exporter: exporter,
		log:      log,
	}
}

// Create registra la orden de un cliente.
//
// Los renglones de catálogo toman nombre e imagen del producto y su precio vigente; los
// personalizados quedan sin precio hasta que un proveedor los cotiza. Si todos los renglones
// son de catálogo y de un mismo proveedor, la orden nace asignada a ese proveedor; si no,
// queda disponible para que cualquier proveedor la tome.
func (uc *OrderUseCase) Create(ctx context.Context, actor Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !actor.IsClient() {
		return nil, fmt.Errorf("%w: solo los clientes pueden crear órdenes", domain.ErrForbidden)
	}
	if len(in.Products) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	lines := make([]entity.OrderLine, 0, len(in.Products))
	suppliers := make(map[string]struct{})
	hasCustom := false
	for i, item := range in.Products {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: cantidad inválida en renglón %d", domain.ErrInvalidInput, i)
		}
		if item.IsCustom || item.ProductID == "" {
			name := strings.TrimSpace(item.ProductName)
			if name == "" {
				return nil, fmt.Errorf("%w: el producto personalizado del renglón %d necesita nombre", domain.ErrInvalidInput, i)
			}
			hasCustom = true
			lines = append(lines, entity.OrderLine{
				ProductName: name,
				Description: strings.TrimSpace(item.Description),
				ImageURL:    strings.TrimSpace(item.ImageURL),
				Quantity:    item.Quantity,
				IsCustom:    true,
			})
			continue
		}
		p, err := uc.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
		}
		price := p.Price
		suppliers[p.SupplierID] = struct{}{}
		lines = append(lines, entity.OrderLine{
			ProductID:   p.ID,
			ProductName: p.Name,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			Price:       &price,
			Quantity:    item.Quantity,
		})
	}

	now := time.Now().UTC()
	id := uuid.New().String()
	o := &entity.Order{
		ID:          id,
		OrderNumber: order.NewOrderNumber(now, id),
		ClientID:    actor.UserID,
		Lines:       lines,
		Total:       order.Total(lines),
		Status:      entity.OrderPending,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(suppliers) == 1 && !hasCustom {
		for s := range suppliers {
			o.SupplierID = s
		}
	}
	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	created, err := uc.load(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", o.ID).
		Str("order_number", o.OrderNumber).
		Str("supplier_id", o.SupplierID).
		Int("lines", len(lines)).
		Msg("orden creada")
	if o.SupplierID != "" {
		uc.notifier.Notify(ctx, o.SupplierID, fmt.Sprintf("Nueva orden recibida: %s de %s", o.OrderNumber, created.ClientName))
	}
	out := toOrderResponse(created)
	return &out, nil
}

// List órdenes visibles para el actor: el cliente ve las suyas, el proveedor las que tomó
// y el admin todas.
func (uc *OrderUseCase) List(ctx context.Context, actor Actor) ([]dto.OrderResponse, error) {
	var f repository.OrderFilter
	switch actor.Role {
	case entity.RoleCliente:
		f.ClientID = actor.UserID
	case entity.RoleProveedor:
		f.SupplierID = actor.UserID
	case entity.RoleAdmin:
	default:
		return nil, domain.ErrForbidden
	}
	return uc.list(ctx, f)
}

// ListAvailable órdenes sin proveedor y no cerradas, que cualquier proveedor puede tomar.
func (uc *OrderUseCase) ListAvailable(ctx context.Context, actor Actor) ([]dto.OrderResponse, error) {
	if !actor.IsSupplier() && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return uc.list(ctx, repository.OrderFilter{Unclaimed: true})
}

// Get obtiene una orden verificando acceso.
func (uc *OrderUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.OrderResponse, error) {
	o, err := uc.view(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toOrderResponse(o)
	return &out, nil
}

// Take asigna una orden sin proveedor al proveedor actor. La asignación es un compare-and-swap
// en el repositorio: si dos proveedores la toman a la vez, el segundo recibe ErrOrderAlreadyClaimed.
func (uc *OrderUseCase) Take(ctx context.Context, actor Actor, id string, in dto.TakeOrderRequest) (*dto.OrderResponse, error) {
	if !actor.IsSupplier() {
		return nil, fmt.Errorf("%w: solo los proveedores pueden tomar órdenes", domain.ErrForbidden)
	}
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Claimed() {
		return nil, domain.ErrOrderAlreadyClaimed
	}
	if order.IsTerminal(o.Status) {
		return nil, domain.ErrOrderClosed
	}
	status := in.Status
	if status == "" {
		status = entity.OrderReceived
	}
	if err := order.ValidateSupplierStatus(status); err != nil {
		return nil, err
	}
	lines, err := order.ApplyPrices(o.Lines, toLinePrices(in.Prices))
	if err != nil {
		return nil, err
	}
	o.SupplierID = actor.UserID
	o.Status = status
	o.AssignedTo = strings.TrimSpace(in.AssignedTo)
	o.Lines = lines
	o.Total = order.Total(lines)
	o.UpdatedAt = time.Now().UTC()
	if err := uc.orders.Claim(ctx, o); err != nil {
		return nil, err
	}
	updated, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("supplier_id", actor.UserID).Str("status", status).Msg("orden tomada")
	uc.notifier.Notify(ctx, o.ClientID, fmt.Sprintf("Tu orden %s fue tomada por %s", o.OrderNumber, updated.SupplierName))
	out := toOrderResponse(updated)
	return &out, nil
}

// UpdateStatusBySupplier cambio de estado por el proveedor que tomó la orden. Admite además
// reasignar responsable y revisar precios.
func (uc *OrderUseCase) UpdateStatusBySupplier(ctx context.Context, actor Actor, id string, in dto.SupplierStatusRequest) (*dto.OrderResponse, error) {
	o, err := uc.claimedBy(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := order.ValidateSupplierStatus(in.Status); err != nil {
		return nil, err
	}
	lines, err := order.ApplyPrices(o.Lines, toLinePrices(in.Prices))
	if err != nil {
		return nil, err
	}
	o.Status = in.Status
	if assigned := strings.TrimSpace(in.AssignedTo); assigned != "" {
		o.AssignedTo = assigned
	}
	o.Lines = lines
	o.Total = order.Total(lines)
	o.UpdatedAt = time.Now().UTC()
	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("supplier_id", actor.UserID).Str("status", o.Status).Msg("estado de orden actualizado")
	uc.notifier.Notify(ctx, o.ClientID, fmt.Sprintf("Estado de orden %s actualizado a: %s", o.OrderNumber, o.Status))
	out := toOrderResponse(o)
	return &out, nil
}

// UpdatePrices revisión de precios por renglón por el proveedor que tomó la orden.
func (uc *OrderUseCase) UpdatePrices(ctx context.Context, actor Actor, id string, in dto.UpdatePricesRequest) (*dto.OrderResponse, error) {
	if len(in.Prices) == 0 {
		return nil, fmt.Errorf("%w: prices es requerido", domain.ErrInvalidInput)
	}
	o, err := uc.claimedBy(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	lines, err := order.ApplyPrices(o.Lines, toLinePrices(in.Prices))
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	o.Total = order.Total(lines)
	o.UpdatedAt = time.Now().UTC()
	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("total", o.Total.StringFixed(2)).Msg("precios de orden actualizados")
	uc.notifier.Notify(ctx, o.ClientID, fmt.Sprintf("Precios actualizados para orden %s", o.OrderNumber))
	out := toOrderResponse(o)
	return &out, nil
}

// UpdateStatusByAdmin el admin puede asignar cualquier estado; cancelado exige motivo.
// El motivo solo se conserva mientras la orden está cancelada.
func (uc *OrderUseCase) UpdateStatusByAdmin(ctx context.Context, actor Actor, id string, in dto.AdminStatusRequest) (*dto.OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := order.ValidateAdminStatus(in.Status, in.CancellationReason); err != nil {
		return nil, err
	}
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = in.Status
	o.CancellationReason = ""
	if in.Status == entity.OrderCancelled {
		o.CancellationReason = strings.TrimSpace(in.CancellationReason)
	}
	if assigned := strings.TrimSpace(in.AssignedTo); assigned != "" {
		o.AssignedTo = assigned
	}
	o.UpdatedAt = time.Now().UTC()
	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("status", o.Status).Str("admin_id", actor.UserID).Msg("estado de orden actualizado por admin")
	msg := fmt.Sprintf("Estado de orden %s actualizado a: %s", o.OrderNumber, o.Status)
	uc.notifier.Notify(ctx, o.ClientID, msg)
	uc.notifier.Notify(ctx, o.SupplierID, msg)
	out := toOrderResponse(o)
	return &out, nil
}

// Delete elimina una orden. Solo el admin y solo si está cancelada.
func (uc *OrderUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	o, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if !order.CanDelete(o.Status) {
		return domain.ErrOrderNotCancelled
	}
	if err := uc.orders.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("order_id", id).Str("admin_id", actor.UserID).Msg("orden eliminada")
	return nil
}

// OrderPDF genera la hoja imprimible de una orden visible para el actor.
func (uc *OrderUseCase) OrderPDF(ctx context.Context, actor Actor, id string) (pdfBytes []byte, filename string, err error) {
	o, err := uc.view(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.GenerateOrderPDF(ctx, o)
	if err != nil {
		return nil, "", fmt.Errorf("pdf orden %s: %w", o.OrderNumber, err)
	}
	return pdfBytes, o.OrderNumber + ".pdf", nil
}

// ExportOrders hoja de cálculo con todas las órdenes (solo admin).
func (uc *OrderUseCase) ExportOrders(ctx context.Context, actor Actor) (data []byte, filename string, err error) {
	if !actor.IsAdmin() {
		return nil, "", domain.ErrForbidden
	}
	list, err := uc.orders.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, "", err
	}
	data, err = uc.exporter.ExportOrders(ctx, list)
	if err != nil {
		return nil, "", fmt.Errorf("exportar órdenes: %w", err)
	}
	return data, fmt.Sprintf("ordenes-%s.xlsx", time.Now().UTC().Format("20060102")), nil
}

func (uc *OrderUseCase) list(ctx context.Context, f repository.OrderFilter) ([]dto.OrderResponse, error) {
	list, err := uc.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

func (uc *OrderUseCase) load(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// view carga la orden si el actor puede verla.
func (uc *OrderUseCase) view(ctx context.Context, actor Actor, id string) (*entity.Order, error) {
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanViewOrder(actor, o) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// claimedBy carga una orden abierta tomada por el proveedor actor.
func (uc *OrderUseCase) claimedBy(ctx context.Context, actor Actor, id string) (*entity.Order, error) {
	if !actor.IsSupplier() {
		return nil, domain.ErrForbidden
	}
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.SupplierID != actor.UserID {
		return nil, fmt.Errorf("%w: la orden no fue tomada por este proveedor", domain.ErrForbidden)
	}
	if order.IsTerminal(o.Status) {
		return nil, domain.ErrOrderClosed
	}
	return o, nil
}

// CanViewOrder: el cliente dueño, el proveedor que la tomó, cualquier proveedor mientras
// está sin tomar y el admin.
func CanViewOrder(actor Actor, o *entity.Order) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleCliente:
		return o.ClientID == actor.UserID
	case entity.RoleProveedor:
		return o.SupplierID == actor.UserID || !o.Claimed()
	}
	return false
}

func toLinePrices(in []dto.LinePriceRequest) []order.LinePrice {
	out := make([]order.LinePrice, 0, len(in))
	for _, p := range in {
		out = append(out, order.LinePrice{Index: p.Index, Price: p.Price})
	}
	return out
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		line := dto.OrderLineResponse{
			ProductName: l.ProductName,
			Description: l.Description,
			ImageURL:    l.ImageURL,
			Quantity:    l.Quantity,
			IsCustom:    l.IsCustom,
		}
		if l.ProductID != "" {
			id := l.ProductID
			line.ProductID = &id
		}
		if l.Price != nil {
			price := *l.Price
			line.Price = &price
		}
		lines = append(lines, line)
	}
	out := dto.OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		ClientID:           o.ClientID,
		ClientName:         o.ClientName,
		Products:           lines,
		Total:              o.Total.Round(2),
		Status:             o.Status,
		Stage:              order.Stage(o),
		AssignedTo:         o.AssignedTo,
		CancellationReason: o.CancellationReason,
		Notes:              o.Notes,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.Claimed() {
		id, name := o.SupplierID, o.SupplierName
		out.SupplierID = &id
		out.SupplierName = &name
	}
	return out
}
