package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest renglón enviado por el cliente. Para productos del catálogo basta
// ProductID y Quantity; los personalizados llevan IsCustom, ProductName y Description.
type OrderLineRequest struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity" validate:"min=1"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsCustom    bool   `json:"is_custom"`
}

// CreateOrderRequest orden completa del compositor.
type CreateOrderRequest struct {
	Products []OrderLineRequest `json:"products" validate:"required,min=1"`
	Notes    string             `json:"notes"`
}

// OrderLineResponse renglón de orden; Price es null mientras no se cotiza.
type OrderLineResponse struct {
	ProductID   *string          `json:"product_id"`
	ProductName string           `json:"product_name"`
	Description string           `json:"description,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    int              `json:"quantity"`
	IsCustom    bool             `json:"is_custom"`
}

// OrderResponse orden con su etapa derivada del ciclo de vida.
type OrderResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"order_number"`
	ClientID           string              `json:"client_id"`
	ClientName         string              `json:"client_name"`
	SupplierID         *string             `json:"supplier_id"`
	SupplierName       *string             `json:"supplier_name"`
	Products           []OrderLineResponse `json:"products"`
	Total              decimal.Decimal     `json:"total"`
	Status             string              `json:"status"`
	Stage              string              `json:"stage"`
	AssignedTo         string              `json:"assigned_to,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// LinePriceRequest precio para el renglón Index de la orden.
type LinePriceRequest struct {
	Index int             `json:"index"`
	Price decimal.Decimal `json:"price"`
}

// TakeOrderRequest toma de una orden sin asignar. Status vacío = recibido.
type TakeOrderRequest struct {
	Status     string             `json:"status"`
	AssignedTo string             `json:"assigned_to"`
	Prices     []LinePriceRequest `json:"prices"`
}

// SupplierStatusRequest actualización del proveedor que tomó la orden.
type SupplierStatusRequest struct {
	Status     string             `json:"status" validate:"required,oneof=recibido en_proceso completado"`
	AssignedTo string             `json:"assigned_to"`
	Prices     []LinePriceRequest `json:"prices"`
}

// UpdatePricesRequest revisión de precios por renglón.
type UpdatePricesRequest struct {
	Prices []LinePriceRequest `json:"prices" validate:"required,min=1"`
}

// AdminStatusRequest cambio de estado por el admin; cancelado exige motivo.
type AdminStatusRequest struct {
	Status             string `json:"status" validate:"required"`
	AssignedTo         string `json:"assigned_to"`
	CancellationReason string `json:"cancellation_reason"`
}
