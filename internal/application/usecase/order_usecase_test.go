package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/order"
)

type orderScene struct {
	*fixture
	client   usecase.Actor
	supA     usecase.Actor
	supB     usecase.Actor
	admin    usecase.Actor
	motor    *dto.ProductResponse // 139.20, proveedor A
	cable    *dto.ProductResponse // 58.00, proveedor B
	category string
}

func newOrderScene(t *testing.T) *orderScene {
	f := newFixture(t)
	s := &orderScene{fixture: f}
	s.client = f.user(t, "capitan@barco.mx", "Capitán Ruiz", entity.RoleCliente)
	s.supA = f.user(t, "a@prov.mx", "Proveedor A", entity.RoleProveedor)
	s.supB = f.user(t, "b@prov.mx", "Proveedor B", entity.RoleProveedor)
	s.admin = f.user(t, "admin@mdc.mx", "Admin", entity.RoleAdmin)
	s.category = f.category(t, "Ferretería")
	s.motor = f.product(t, s.supA, s.category, "Motor", "MOT-1", 100, 20)
	s.cable = f.product(t, s.supB, s.category, "Cable", "CAB-1", 50, 0)
	return s
}

// mixedOrder: un renglón de catálogo de A, uno de B y uno personalizado.
func (s *orderScene) mixedOrder(t *testing.T) *dto.OrderResponse {
	t.Helper()
	o, err := s.orders.Create(context.Background(), s.client, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{
			{ProductID: s.motor.ID, Quantity: 2},
			{ProductID: s.cable.ID, Quantity: 1},
			{IsCustom: true, ProductName: "Hélice 3 aspas", Description: "Acero inoxidable", Quantity: 1},
		},
		Notes: "Entregar en muelle 3",
	})
	require.NoError(t, err)
	return o
}

func TestOrderCreate_TotalIgnoraPersonalizados(t *testing.T) {
	s := newOrderScene(t)
	o := s.mixedOrder(t)

	assert.True(t, o.Total.Equal(dec("336.40")), "2*139.20 + 58.00, got %s", o.Total)
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Nil(t, o.SupplierID, "varios proveedores: queda sin asignar")
	assert.Equal(t, order.StageUnclaimed, o.Stage)
	assert.Equal(t, "Capitán Ruiz", o.ClientName)
	require.Len(t, o.Products, 3)
	assert.Nil(t, o.Products[2].Price)
	assert.Nil(t, o.Products[2].ProductID)
	assert.True(t, o.Products[2].IsCustom)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, o.OrderNumber)
}

func TestOrderCreate_UnSoloProveedorQuedaAsignado(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o, err := s.orders.Create(ctx, s.client, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{{ProductID: s.motor.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, o.SupplierID)
	assert.Equal(t, s.supA.UserID, *o.SupplierID)
	assert.Equal(t, "Proveedor A", *o.SupplierName)

	notes, err := s.notes.List(ctx, s.supA.UserID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, o.OrderNumber)
}

func TestOrderCreate_Validaciones(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()

	_, err := s.orders.Create(ctx, s.client, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = s.orders.Create(ctx, s.supA, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{{ProductID: s.motor.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = s.orders.Create(ctx, s.client, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{{ProductID: s.motor.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.orders.Create(ctx, s.client, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{{ProductID: "no-existe", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.orders.Create(ctx, s.client, dto.CreateOrderRequest{
		Products: []dto.OrderLineRequest{{IsCustom: true, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderTake_AsignaProveedorYPrecios(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)

	taken, err := s.orders.Take(ctx, s.supB, o.ID, dto.TakeOrderRequest{
		AssignedTo: "Luis",
		Prices:     []dto.LinePriceRequest{{Index: 2, Price: dec("450.5")}},
	})
	require.NoError(t, err)
	require.NotNil(t, taken.SupplierID)
	assert.Equal(t, s.supB.UserID, *taken.SupplierID)
	assert.Equal(t, entity.OrderReceived, taken.Status)
	assert.Equal(t, "Luis", taken.AssignedTo)
	assert.Equal(t, order.StagePriced, taken.Stage)
	assert.True(t, taken.Total.Equal(dec("786.90")), "got %s", taken.Total)

	notes, err := s.notes.List(ctx, s.client.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, notes)
	assert.Contains(t, notes[0].Message, "Proveedor B")
}

func TestOrderTake_SinPreciosQuedaPendienteDePrecio(t *testing.T) {
	s := newOrderScene(t)
	o := s.mixedOrder(t)
	taken, err := s.orders.Take(context.Background(), s.supA, o.ID, dto.TakeOrderRequest{Status: entity.OrderInProcess})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderInProcess, taken.Status)

	taken, err = s.orders.UpdateStatusBySupplier(context.Background(), s.supA, o.ID, dto.SupplierStatusRequest{Status: entity.OrderReceived})
	require.NoError(t, err)
	assert.Equal(t, order.StagePendingPrice, taken.Stage)
}

func TestOrderTake_RechazaEstadoCancelado(t *testing.T) {
	s := newOrderScene(t)
	o := s.mixedOrder(t)
	_, err := s.orders.Take(context.Background(), s.supA, o.ID, dto.TakeOrderRequest{Status: entity.OrderCancelled})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestOrderTake_SegundoProveedorRecibeConflicto(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)

	_, err := s.orders.Take(ctx, s.supA, o.ID, dto.TakeOrderRequest{})
	require.NoError(t, err)
	_, err = s.orders.Take(ctx, s.supB, o.ID, dto.TakeOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyClaimed)
}

func TestOrderTake_CarreraSoloUnoGana(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)

	suppliers := []usecase.Actor{s.supA, s.supB}
	for i := 0; i < 6; i++ {
		suppliers = append(suppliers, s.user(t, "extra"+string(rune('a'+i))+"@prov.mx", "Extra", entity.RoleProveedor))
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		wins    int
		claimed int
	)
	for _, sup := range suppliers {
		wg.Add(1)
		go func(sup usecase.Actor) {
			defer wg.Done()
			_, err := s.orders.Take(ctx, sup, o.ID, dto.TakeOrderRequest{})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, domain.ErrOrderAlreadyClaimed):
				claimed++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}(sup)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
	assert.Equal(t, len(suppliers)-1, claimed)
}

func TestOrderUpdateStatusBySupplier_SoloQuienLaTomo(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)
	_, err := s.orders.Take(ctx, s.supA, o.ID, dto.TakeOrderRequest{})
	require.NoError(t, err)

	_, err = s.orders.UpdateStatusBySupplier(ctx, s.supB, o.ID, dto.SupplierStatusRequest{Status: entity.OrderInProcess})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = s.orders.UpdateStatusBySupplier(ctx, s.supA, o.ID, dto.SupplierStatusRequest{Status: entity.OrderCancelled})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	updated, err := s.orders.UpdateStatusBySupplier(ctx, s.supA, o.ID, dto.SupplierStatusRequest{Status: entity.OrderCompleted, AssignedTo: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, updated.Status)
	assert.Equal(t, "Ana", updated.AssignedTo)

	_, err = s.orders.UpdateStatusBySupplier(ctx, s.supA, o.ID, dto.SupplierStatusRequest{Status: entity.OrderInProcess})
	assert.ErrorIs(t, err, domain.ErrOrderClosed)
}

func TestOrderUpdatePrices_RecalculaTotal(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)
	_, err := s.orders.Take(ctx, s.supA, o.ID, dto.TakeOrderRequest{})
	require.NoError(t, err)

	updated, err := s.orders.UpdatePrices(ctx, s.supA, o.ID, dto.UpdatePricesRequest{Prices: []dto.LinePriceRequest{
		{Index: 0, Price: dec("100")},
		{Index: 2, Price: dec("10.555")},
	}})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(dec("268.56")), "2*100 + 58 + 10.56, got %s", updated.Total)

	_, err = s.orders.UpdatePrices(ctx, s.supA, o.ID, dto.UpdatePricesRequest{Prices: []dto.LinePriceRequest{{Index: 9, Price: dec("1")}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderAdmin_CancelarExigeMotivoYLoLimpia(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)

	_, err := s.orders.UpdateStatusByAdmin(ctx, s.admin, o.ID, dto.AdminStatusRequest{Status: entity.OrderCancelled, CancellationReason: "   "})
	assert.ErrorIs(t, err, domain.ErrCancellationReasonRequired)

	cancelled, err := s.orders.UpdateStatusByAdmin(ctx, s.admin, o.ID, dto.AdminStatusRequest{Status: entity.OrderCancelled, CancellationReason: "Sin stock"})
	require.NoError(t, err)
	assert.Equal(t, "Sin stock", cancelled.CancellationReason)
	assert.Equal(t, order.StageCancelled, cancelled.Stage)

	reopened, err := s.orders.UpdateStatusByAdmin(ctx, s.admin, o.ID, dto.AdminStatusRequest{Status: entity.OrderPending})
	require.NoError(t, err)
	assert.Empty(t, reopened.CancellationReason)

	_, err = s.orders.UpdateStatusByAdmin(ctx, s.supA, o.ID, dto.AdminStatusRequest{Status: entity.OrderPending})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOrderDelete_SoloCanceladas(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)

	err := s.orders.Delete(ctx, s.admin, o.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotCancelled)

	_, err = s.orders.UpdateStatusByAdmin(ctx, s.admin, o.ID, dto.AdminStatusRequest{Status: entity.OrderCancelled, CancellationReason: "Duplicada"})
	require.NoError(t, err)
	require.NoError(t, s.orders.Delete(ctx, s.admin, o.ID))

	_, err = s.orders.Get(ctx, s.admin, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderList_PorRol(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	first := s.mixedOrder(t)
	second := s.mixedOrder(t)
	_, err := s.orders.Take(ctx, s.supA, first.ID, dto.TakeOrderRequest{})
	require.NoError(t, err)

	mine, err := s.orders.List(ctx, s.client)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "más recientes primero")

	taken, err := s.orders.List(ctx, s.supA)
	require.NoError(t, err)
	require.Len(t, taken, 1)
	assert.Equal(t, first.ID, taken[0].ID)

	available, err := s.orders.ListAvailable(ctx, s.supB)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, second.ID, available[0].ID)

	_, err = s.orders.ListAvailable(ctx, s.client)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOrderGet_Acceso(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)
	other := s.user(t, "otro@barco.mx", "Otro", entity.RoleCliente)

	_, err := s.orders.Get(ctx, other, o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = s.orders.Get(ctx, s.supB, o.ID)
	assert.NoError(t, err, "sin tomar: visible para cualquier proveedor")

	_, err = s.orders.Take(ctx, s.supA, o.ID, dto.TakeOrderRequest{})
	require.NoError(t, err)
	_, err = s.orders.Get(ctx, s.supB, o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOrderPDFYExport(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)

	data, name, err := s.orders.OrderPDF(ctx, s.client, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber+".pdf", name)
	assert.Contains(t, string(data), o.OrderNumber)

	_, _, err = s.orders.ExportOrders(ctx, s.client)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, name, err = s.orders.ExportOrders(ctx, s.admin)
	require.NoError(t, err)
	assert.Contains(t, name, ".xlsx")
	assert.Equal(t, 1, s.exporter.rows)
}
