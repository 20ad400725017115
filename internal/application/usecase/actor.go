package usecase

import "github.com/jhoicas/mardecortez-api/internal/domain/entity"

// Actor usuario autenticado que ejecuta el caso de uso (extraído del JWT).
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// IsSupplier indica si el actor es proveedor.
func (a Actor) IsSupplier() bool { return a.Role == entity.RoleProveedor }

// IsClient indica si el actor es cliente.
func (a Actor) IsClient() bool { return a.Role == entity.RoleCliente }
