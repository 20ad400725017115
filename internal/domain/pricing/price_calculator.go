// Package pricing calcula el precio de venta de un producto a partir de su costo.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// DefaultIVA tasa de IVA aplicada cuando el producto no especifica una (16%).
var DefaultIVA = decimal.NewFromInt(16)

var hundred = decimal.NewFromInt(100)

// Input parámetros de costo de un producto.
type Input struct {
	BasePrice     decimal.Decimal
	ProfitType    string // percentage | fixed
	ProfitValue   decimal.Decimal
	IVAPercentage decimal.Decimal
}

// Markup ganancia sobre el precio base:
// BasePrice * ProfitValue / 100 si es porcentaje, ProfitValue si es monto fijo.
func Markup(in Input) (decimal.Decimal, error) {
	switch in.ProfitType {
	case entity.ProfitPercentage:
		return in.BasePrice.Mul(in.ProfitValue).Div(hundred), nil
	case entity.ProfitFixed:
		return in.ProfitValue, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: profit_type %q", domain.ErrInvalidInput, in.ProfitType)
	}
}

// ComputePrice PrecioFinal = round2((Base + Markup) * (1 + IVA/100)).
// Ej: base 100, 20%, IVA 16 -> (100 + 20) * 1.16 = 139.20
func ComputePrice(in Input) (decimal.Decimal, error) {
	if in.BasePrice.IsNegative() || in.ProfitValue.IsNegative() || in.IVAPercentage.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: los valores de precio no pueden ser negativos", domain.ErrInvalidInput)
	}
	markup, err := Markup(in)
	if err != nil {
		return decimal.Zero, err
	}
	factor := decimal.NewFromInt(1).Add(in.IVAPercentage.Div(hundred))
	return in.BasePrice.Add(markup).Mul(factor).Round(2), nil
}

// Apply recalcula y asigna Price en el producto a partir de sus campos de costo.
func Apply(p *entity.Product) error {
	price, err := ComputePrice(Input{
		BasePrice:     p.BasePrice,
		ProfitType:    p.ProfitType,
		ProfitValue:   p.ProfitValue,
		IVAPercentage: p.IVAPercentage,
	})
	if err != nil {
		return err
	}
	p.Price = price
	return nil
}
