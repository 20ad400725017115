package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation documento (PDF) que un proveedor adjunta a una orden tomada.
// Es un anexo: no cambia el estado de la orden.
type Quotation struct {
	ID           string
	OrderID      string
	SupplierID   string
	SupplierName string
	FileName     string
	ContentType  string
	Data         []byte
	Amount       *decimal.Decimal
	Notes        string
	CreatedAt    time.Time
}
