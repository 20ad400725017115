package client

import (
	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// Tipos del contrato HTTP. Son alias de los DTO del servidor para que cliente y API
// compartan una sola definición de cada sobre JSON.
type (
	User                 = dto.UserResponse
	LoginResult          = dto.LoginResponse
	Supplier             = dto.SupplierResponse
	Category             = dto.CategoryResponse
	Product              = dto.ProductResponse
	ProductInput         = dto.ProductRequest
	ProductQuery         = dto.ProductQuery
	Order                = dto.OrderResponse
	OrderLine            = dto.OrderLineResponse
	OrderLineInput       = dto.OrderLineRequest
	NewOrder             = dto.CreateOrderRequest
	LinePrice            = dto.LinePriceRequest
	TakeOrder            = dto.TakeOrderRequest
	SupplierStatus       = dto.SupplierStatusRequest
	AdminStatus          = dto.AdminStatusRequest
	RegistrationInput    = dto.CreateRegistrationRequest
	RegistrationRequest  = dto.RegistrationRequestResponse
	ApproveRegistration  = dto.ApproveRegistrationRequest
	ApprovedRegistration = dto.ApproveRegistrationResponse
	Quotation            = dto.QuotationResponse
	Notification         = dto.NotificationResponse
	AdminStats           = dto.AdminStatsResponse
)

// Roles y estados expuestos a los consumidores del cliente.
const (
	RoleCliente   = entity.RoleCliente
	RoleProveedor = entity.RoleProveedor
	RoleAdmin     = entity.RoleAdmin

	StatusPending   = entity.OrderPending
	StatusReceived  = entity.OrderReceived
	StatusInProcess = entity.OrderInProcess
	StatusCompleted = entity.OrderCompleted
	StatusCancelled = entity.OrderCancelled
)
