package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/directorio-api/internal/domain"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// CreateAccountRequest entrada para crear una cuenta (password en texto, se hashea en use case).
type CreateAccountRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"` // admin | editor | viewer; vacío = viewer
	IsActive  *bool  `json:"is_active"`
}

// Validate recorta espacios y verifica campos requeridos.
func (r *CreateAccountRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return fmt.Errorf("%w: username, email y password son requeridos", domain.ErrInvalidInput)
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

// UpdateAccountRequest actualización parcial de una cuenta (solo admin).
type UpdateAccountRequest struct {
	Username  Optional[string] `json:"username" swaggertype:"string"`
	Email     Optional[string] `json:"email" swaggertype:"string"`
	Password  Optional[string] `json:"password" swaggertype:"string"`
	FirstName Optional[string] `json:"first_name" swaggertype:"string"`
	LastName  Optional[string] `json:"last_name" swaggertype:"string"`
	Role      Optional[string] `json:"role" swaggertype:"string"`
	IsActive  Optional[bool]   `json:"is_active" swaggertype:"boolean"`
}

// AccountResponse salida de una cuenta (sin password).
type AccountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountRefResponse referencia {id, username}.
type AccountRefResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AccountListResponse lista paginada de cuentas.
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ValidateEmail verifica que el texto sea una dirección de correo simple.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return nil
}

// ValidatePassword exige la longitud mínima.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}
