package entity

import "time"

// Roles válidos para User.
const (
	RoleCliente   = "cliente"
	RoleProveedor = "proveedor"
	RoleAdmin     = "admin"
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	return r == RoleCliente || r == RoleProveedor || r == RoleAdmin
}

// User representa una cuenta: capitán/cliente, proveedor o administrador.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // cliente, proveedor, admin
	Company      string // nombre de la embarcación o empresa; opcional
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
