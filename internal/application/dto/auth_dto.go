package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/directorio-api/internal/domain"
)

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate verifica campos requeridos.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("%w: username y password son requeridos", domain.ErrInvalidInput)
	}
	return nil
}

// LoginResponse token de sesión + cuenta.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

// StatusResponse estado de la sesión para el cliente.
type StatusResponse struct {
	Authenticated bool             `json:"authenticated"`
	Account       *AccountResponse `json:"account,omitempty"`
}
