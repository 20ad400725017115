package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Órdenes
	ErrEmptyOrder                 = errors.New("la orden no tiene productos")
	ErrInvalidStatus              = errors.New("estado de orden inválido")
	ErrOrderAlreadyClaimed        = errors.New("la orden ya fue tomada por otro proveedor")
	ErrOrderClosed                = errors.New("la orden ya está cerrada")
	ErrCancellationReasonRequired = errors.New("el motivo de cancelación es obligatorio")
	ErrOrderNotCancelled          = errors.New("solo se pueden eliminar órdenes canceladas")

	// Solicitudes de registro y catálogo
	ErrRequestProcessed = errors.New("la solicitud ya fue procesada")
	ErrPendingRequest   = errors.New("ya existe una solicitud pendiente con este correo")
	ErrCategoryInUse    = errors.New("la categoría tiene productos asociados")
	ErrAdminUndeletable = errors.New("no se pueden eliminar usuarios administradores")
)
