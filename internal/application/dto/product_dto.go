package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest alta/edición de producto. El precio final nunca se recibe: se deriva
// de BasePrice, ProfitType, ProfitValue e IVAPercentage.
type ProductRequest struct {
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description"`
	Category      string           `json:"category" validate:"required"`
	SKU           string           `json:"sku" validate:"required"`
	BasePrice     decimal.Decimal  `json:"base_price"`
	ProfitType    string           `json:"profit_type" validate:"required,oneof=percentage fixed"`
	ProfitValue   decimal.Decimal  `json:"profit_value"`
	IVAPercentage *decimal.Decimal `json:"iva_percentage"` // nil = 16
	ImageURL      string           `json:"image_url"`
	SupplierID    string           `json:"supplier_id"` // solo rutas de admin
}

// ProductResponse salida de un producto con el precio derivado.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	SKU           string          `json:"sku"`
	SupplierID    string          `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	BasePrice     decimal.Decimal `json:"base_price"`
	ProfitType    string          `json:"profit_type"`
	ProfitValue   decimal.Decimal `json:"profit_value"`
	IVAPercentage decimal.Decimal `json:"iva_percentage"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductQuery filtros de listado de productos.
type ProductQuery struct {
	Category   string `query:"category"`
	SupplierID string `query:"supplier_id"`
	Q          string `query:"q"`
}

// PricePreviewRequest cálculo en vivo del precio mientras se edita el formulario.
type PricePreviewRequest struct {
	BasePrice     decimal.Decimal  `json:"base_price"`
	ProfitType    string           `json:"profit_type"`
	ProfitValue   decimal.Decimal  `json:"profit_value"`
	IVAPercentage *decimal.Decimal `json:"iva_percentage"`
}

// PricePreviewResponse desglose del precio calculado.
type PricePreviewResponse struct {
	BasePrice decimal.Decimal `json:"base_price"`
	Markup    decimal.Decimal `json:"markup"`
	Price     decimal.Decimal `json:"price"`
}
