package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleCliente   = "cliente"
)

// DefaultProfileImage imagen de perfil por defecto para usuarios nuevos.
const DefaultProfileImage = "profile.jpg"

// User representa un usuario del sistema. Es dueño de cero o más Replenishments.
type User struct {
	ID           string
	Name         string // nombre visible, único
	Username     string // único
	Email        string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Profile      string // ruta de la imagen de perfil
	Role         string // admin, bodeguero, cliente
	CreatedAt    time.Time
}
