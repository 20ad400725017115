package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UploadQuotationInput archivo ya leído del multipart más campos opcionales.
type UploadQuotationInput struct {
	FileName    string
	ContentType string
	Data        []byte
	Amount      *decimal.Decimal
	Notes       string
}

// QuotationResponse metadatos de una cotización (sin el contenido del archivo).
type QuotationResponse struct {
	ID           string           `json:"id"`
	OrderID      string           `json:"order_id"`
	SupplierID   string           `json:"supplier_id"`
	SupplierName string           `json:"supplier_name"`
	FileName     string           `json:"file_name"`
	Size         int              `json:"size,omitempty"`
	Amount       *decimal.Decimal `json:"amount"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}
