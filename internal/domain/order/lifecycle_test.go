package order_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/order"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidateSupplierStatus(t *testing.T) {
	for _, s := range []string{entity.OrderReceived, entity.OrderInProcess, entity.OrderCompleted} {
		assert.NoError(t, order.ValidateSupplierStatus(s), s)
	}
	assert.ErrorIs(t, order.ValidateSupplierStatus(entity.OrderCancelled), domain.ErrInvalidStatus,
		"el proveedor no puede cancelar")
	assert.ErrorIs(t, order.ValidateSupplierStatus(entity.OrderPending), domain.ErrInvalidStatus)
	assert.ErrorIs(t, order.ValidateSupplierStatus("enviado"), domain.ErrInvalidStatus)
}

func TestValidateAdminStatus_CanceladoExigeMotivo(t *testing.T) {
	assert.ErrorIs(t, order.ValidateAdminStatus(entity.OrderCancelled, ""), domain.ErrCancellationReasonRequired)
	assert.ErrorIs(t, order.ValidateAdminStatus(entity.OrderCancelled, "   "), domain.ErrCancellationReasonRequired)
	assert.NoError(t, order.ValidateAdminStatus(entity.OrderCancelled, "cliente desistió"))
	assert.NoError(t, order.ValidateAdminStatus(entity.OrderPending, ""))
	assert.ErrorIs(t, order.ValidateAdminStatus("archivado", ""), domain.ErrInvalidStatus)
}

func TestCanDelete_SoloCancelado(t *testing.T) {
	assert.True(t, order.CanDelete(entity.OrderCancelled))
	for _, s := range []string{entity.OrderPending, entity.OrderReceived, entity.OrderInProcess, entity.OrderCompleted} {
		assert.False(t, order.CanDelete(s), s)
	}
}

func TestTotal_IgnoraRenglonesSinPrecio(t *testing.T) {
	lines := []entity.OrderLine{
		{ProductName: "Aceite 2T", Price: price("150.50"), Quantity: 2},
		{ProductName: "Hélice especial", IsCustom: true, Quantity: 1},
		{ProductName: "Filtro", Price: price("80"), Quantity: 3},
	}
	assert.Equal(t, "541.00", order.Total(lines).StringFixed(2))
	assert.False(t, order.FullyPriced(lines))
}

func TestApplyPrices(t *testing.T) {
	lines := []entity.OrderLine{
		{ProductName: "Hélice", IsCustom: true, Quantity: 2},
		{ProductName: "Filtro", Price: price("80"), Quantity: 1},
	}
	out, err := order.ApplyPrices(lines, []order.LinePrice{{Index: 0, Price: decimal.RequireFromString("1200.555")}})
	require.NoError(t, err)
	require.NotNil(t, out[0].Price)
	assert.Equal(t, "1200.56", out[0].Price.StringFixed(2))
	assert.Nil(t, lines[0].Price, "no debe mutar el slice original")
	assert.Equal(t, "2481.12", order.Total(out).StringFixed(2))
	assert.True(t, order.FullyPriced(out))

	_, err = order.ApplyPrices(lines, []order.LinePrice{{Index: 5, Price: decimal.NewFromInt(1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = order.ApplyPrices(lines, []order.LinePrice{{Index: 0, Price: decimal.NewFromInt(-1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStage(t *testing.T) {
	o := &entity.Order{
		Status: entity.OrderPending,
		Lines:  []entity.OrderLine{{IsCustom: true, Quantity: 1}},
	}
	assert.Equal(t, order.StageUnclaimed, order.Stage(o))

	o.SupplierID = "sup-1"
	o.Status = entity.OrderReceived
	assert.Equal(t, order.StagePendingPrice, order.Stage(o))

	o.Lines[0].Price = price("10")
	assert.Equal(t, order.StagePriced, order.Stage(o))

	o.Status = entity.OrderInProcess
	assert.Equal(t, order.StageInProcess, order.Stage(o))

	o.Status = entity.OrderCancelled
	assert.Equal(t, order.StageCancelled, order.Stage(o))
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	n := order.NewOrderNumber(now, "1a2b3c4d-0000-0000-0000-000000000000")
	assert.Equal(t, "ORD-20250309-1A2B3C4D", n)
}
