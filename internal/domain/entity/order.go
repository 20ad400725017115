package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden.
const (
	OrderPending   = "pendiente"
	OrderReceived  = "recibido"
	OrderInProcess = "en_proceso"
	OrderCompleted = "completado"
	OrderCancelled = "cancelado"
)

// OrderLine renglón de una orden. Los renglones personalizados no tienen ProductID
// y su Price queda en nil hasta que el proveedor que toma la orden lo cotiza.
type OrderLine struct {
	ProductID   string
	ProductName string
	Description string
	ImageURL    string
	Price       *decimal.Decimal
	Quantity    int
	IsCustom    bool
}

// Order pedido de un cliente. SupplierID vacío significa "sin tomar".
type Order struct {
	ID                 string
	OrderNumber        string
	ClientID           string
	ClientName         string
	SupplierID         string
	SupplierName       string
	Lines              []OrderLine
	Total              decimal.Decimal
	Status             string
	AssignedTo         string
	CancellationReason string
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Claimed indica si algún proveedor ya tomó la orden.
func (o *Order) Claimed() bool { return o.SupplierID != "" }
