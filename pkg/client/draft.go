package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyDraft una orden sin renglones no se envía.
var ErrEmptyDraft = errors.New("agrega al menos un producto a la orden")

// draftLine renglón del borrador; price nil en los personalizados.
type draftLine struct {
	input OrderLineInput
	price *decimal.Decimal
}

// OrderDraft borrador del compositor: renglones de catálogo y personalizados más notas.
type OrderDraft struct {
	lines []draftLine
	Notes string
}

// AddProduct agrega un producto del catálogo; si ya está suma la cantidad.
func (d *OrderDraft) AddProduct(p Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("cantidad inválida: %d", quantity)
	}
	for i := range d.lines {
		if !d.lines[i].input.IsCustom && d.lines[i].input.ProductID == p.ID {
			d.lines[i].input.Quantity += quantity
			return nil
		}
	}
	price := p.Price
	d.lines = append(d.lines, draftLine{
		input: OrderLineInput{ProductID: p.ID, ProductName: p.Name, Quantity: quantity, ImageURL: p.ImageURL},
		price: &price,
	})
	return nil
}

// AddCustom agrega un renglón sin precio que cotizará el proveedor.
func (d *OrderDraft) AddCustom(name, description string, quantity int, imageURL string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("el producto personalizado necesita nombre")
	}
	if quantity < 1 {
		return fmt.Errorf("cantidad inválida: %d", quantity)
	}
	d.lines = append(d.lines, draftLine{input: OrderLineInput{
		ProductName: strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		ImageURL:    imageURL,
		IsCustom:    true,
	}})
	return nil
}

// Remove quita el renglón i.
func (d *OrderDraft) Remove(i int) {
	if i < 0 || i >= len(d.lines) {
		return
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
}

// Len cantidad de renglones.
func (d *OrderDraft) Len() int { return len(d.lines) }

// Total suma precio × cantidad de los renglones de catálogo; los personalizados aportan 0.
func (d *OrderDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.lines {
		if l.price == nil {
			continue
		}
		total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.input.Quantity))))
	}
	return total.Round(2)
}

// Validate rechaza el borrador vacío.
func (d *OrderDraft) Validate() error {
	if len(d.lines) == 0 {
		return ErrEmptyDraft
	}
	return nil
}

// Request arma el cuerpo de POST /orders.
func (d *OrderDraft) Request() (NewOrder, error) {
	if err := d.Validate(); err != nil {
		return NewOrder{}, err
	}
	lines := make([]OrderLineInput, 0, len(d.lines))
	for _, l := range d.lines {
		lines = append(lines, l.input)
	}
	return NewOrder{Products: lines, Notes: strings.TrimSpace(d.Notes)}, nil
}
