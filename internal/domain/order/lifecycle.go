// Package order concentra las reglas del ciclo de vida de una orden:
// estados permitidos por rol, toma por proveedor, cotización por renglón y totales.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// Etapas derivadas del ciclo de vida (vista del proveedor).
const (
	StageUnclaimed    = "unclaimed"
	StagePendingPrice = "claimed-pending-price"
	StagePriced       = "priced"
	StageInProcess    = "en_proceso"
	StageCompleted    = "completado"
	StageCancelled    = "cancelado"
)

var allStatuses = []string{
	entity.OrderPending,
	entity.OrderReceived,
	entity.OrderInProcess,
	entity.OrderCompleted,
	entity.OrderCancelled,
}

// SupplierStatuses estados que un proveedor puede asignar. cancelado es exclusivo del admin.
var SupplierStatuses = []string{
	entity.OrderReceived,
	entity.OrderInProcess,
	entity.OrderCompleted,
}

// ValidStatus indica si s pertenece al enum de estados.
func ValidStatus(s string) bool { return contains(allStatuses, s) }

// IsTerminal indica si la orden ya no admite cambios del proveedor.
func IsTerminal(s string) bool {
	return s == entity.OrderCompleted || s == entity.OrderCancelled
}

// ValidateSupplierStatus acepta solo {recibido, en_proceso, completado}.
func ValidateSupplierStatus(s string) error {
	if !contains(SupplierStatuses, s) {
		return fmt.Errorf("%w: el proveedor no puede asignar %q", domain.ErrInvalidStatus, s)
	}
	return nil
}

// ValidateAdminStatus acepta el enum completo; cancelado exige motivo no vacío.
func ValidateAdminStatus(s, reason string) error {
	if !ValidStatus(s) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
	if s == entity.OrderCancelled && strings.TrimSpace(reason) == "" {
		return domain.ErrCancellationReasonRequired
	}
	return nil
}

// CanDelete solo las órdenes canceladas se pueden eliminar.
func CanDelete(status string) bool { return status == entity.OrderCancelled }

// Total suma precio*cantidad de los renglones con precio. Los personalizados sin cotizar aportan 0.
func Total(lines []entity.OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Price == nil {
			continue
		}
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// FullyPriced indica si todos los renglones tienen precio.
func FullyPriced(lines []entity.OrderLine) bool {
	for _, l := range lines {
		if l.Price == nil {
			return false
		}
	}
	return true
}

// LinePrice precio propuesto para el renglón Index (posición en Order.Lines).
type LinePrice struct {
	Index int
	Price decimal.Decimal
}

// ApplyPrices asigna precios por renglón sobre una copia de lines.
func ApplyPrices(lines []entity.OrderLine, prices []LinePrice) ([]entity.OrderLine, error) {
	out := make([]entity.OrderLine, len(lines))
	copy(out, lines)
	for _, p := range prices {
		if p.Index < 0 || p.Index >= len(out) {
			return nil, fmt.Errorf("%w: renglón %d fuera de rango", domain.ErrInvalidInput, p.Index)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo en renglón %d", domain.ErrInvalidInput, p.Index)
		}
		price := p.Price.Round(2)
		out[p.Index].Price = &price
	}
	return out, nil
}

// Stage deriva la etapa del ciclo de vida a partir del estado, la asignación y los precios.
func Stage(o *entity.Order) string {
	switch o.Status {
	case entity.OrderCancelled:
		return StageCancelled
	case entity.OrderCompleted:
		return StageCompleted
	case entity.OrderInProcess:
		return StageInProcess
	}
	if !o.Claimed() {
		return StageUnclaimed
	}
	if !FullyPriced(o.Lines) {
		return StagePendingPrice
	}
	return StagePriced
}

// NewOrderNumber ORD-YYYYMMDD-XXXXXXXX con los primeros 8 caracteres del ID en mayúsculas.
func NewOrderNumber(now time.Time, id string) string {
	suffix := strings.ReplaceAll(id, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(suffix))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
