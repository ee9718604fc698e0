package entity

import (
	"fmt"
	"time"
)

// Role es el rol cerrado de una cuenta.
type Role string

// Roles válidos para Account.
const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole convierte un texto en Role. Acepta "user" como alias histórico de viewer.
func ParseRole(s string) (Role, error) {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleEditor):
		return RoleEditor, nil
	case string(RoleViewer), "user":
		return RoleViewer, nil
	default:
		return "", fmt.Errorf("rol desconocido %q", s)
	}
}

// Valid informa si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleViewer
}

// Account representa una cuenta de usuario del directorio.
type Account struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountRef referencia mínima de una cuenta embebida en otras respuestas.
type AccountRef struct {
	ID       int64
	Username string
}
