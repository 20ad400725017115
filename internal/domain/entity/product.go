package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ganancia sobre el precio base.
const (
	ProfitPercentage = "percentage"
	ProfitFixed      = "fixed"
)

// Product artículo del catálogo de un proveedor.
// Price es derivado (base + ganancia + IVA) y nunca lo fija el cliente.
type Product struct {
	ID            string
	Name          string
	Description   string
	Category      string // slug de Category
	SKU           string
	SupplierID    string
	SupplierName  string
	BasePrice     decimal.Decimal
	ProfitType    string
	ProfitValue   decimal.Decimal
	IVAPercentage decimal.Decimal
	Price         decimal.Decimal
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
