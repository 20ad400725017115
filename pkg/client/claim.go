package client

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ClaimForm formulario de precios por renglón al tomar o revisar una orden.
// Los campos son texto, como los escribe el proveedor; vacío = sin precio.
type ClaimForm struct {
	lines  []OrderLine
	prices []string
}

// NewClaimForm siembra el formulario con los precios que la orden ya tenga.
func NewClaimForm(o Order) *ClaimForm {
	f := &ClaimForm{lines: o.Products, prices: make([]string, len(o.Products))}
	for i, l := range o.Products {
		if l.Price != nil {
			f.prices[i] = l.Price.String()
		}
	}
	return f
}

// Price valor actual del renglón i.
func (f *ClaimForm) Price(i int) string {
	if i < 0 || i >= len(f.prices) {
		return ""
	}
	return f.prices[i]
}

// SetPrice escribe el campo del renglón i.
func (f *ClaimForm) SetPrice(i int, value string) error {
	if i < 0 || i >= len(f.prices) {
		return fmt.Errorf("renglón %d fuera de rango", i)
	}
	f.prices[i] = strings.TrimSpace(value)
	return nil
}

// Total suma precio × cantidad de los renglones con un precio válido escrito.
func (f *ClaimForm) Total() decimal.Decimal {
	total := decimal.Zero
	for i, raw := range f.prices {
		if raw == "" {
			continue
		}
		p, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		total = total.Add(p.Mul(decimal.NewFromInt(int64(f.lines[i].Quantity))))
	}
	return total.Round(2)
}

// Prices convierte los campos no vacíos en precios por índice.
func (f *ClaimForm) Prices() ([]LinePrice, error) {
	out := make([]LinePrice, 0, len(f.prices))
	for i, raw := range f.prices {
		if raw == "" {
			continue
		}
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("precio inválido en renglón %d: %q", i, raw)
		}
		if p.IsNegative() {
			return nil, fmt.Errorf("precio negativo en renglón %d", i)
		}
		out = append(out, LinePrice{Index: i, Price: p})
	}
	return out, nil
}

// TakeRequest cuerpo de PUT /orders/:id/take con estado inicial y responsable.
func (f *ClaimForm) TakeRequest(status, assignedTo string) (TakeOrder, error) {
	prices, err := f.Prices()
	if err != nil {
		return TakeOrder{}, err
	}
	return TakeOrder{Status: status, AssignedTo: strings.TrimSpace(assignedTo), Prices: prices}, nil
}
