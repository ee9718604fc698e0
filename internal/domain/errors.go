package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada uno es un discriminante estable que la
// capa HTTP traduce a un código de respuesta.
var (
	ErrUnauthenticated = errors.New("autenticación requerida")
	ErrForbidden       = errors.New("acceso denegado")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrInvalidInput    = errors.New("entrada inválida")

	// ErrInvalidCredentials credenciales de login incorrectas (nunca distingue usuario vs. password).
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	// ErrAccountDisabled la cuenta existe pero está desactivada.
	ErrAccountDisabled = errors.New("la cuenta está desactivada")
)
