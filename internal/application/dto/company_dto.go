package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/directorio-api/internal/domain"
)

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name        string  `json:"name"`
	Industry    *string `json:"industry"`
	Website     *string `json:"website"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zip_code"`
	Country     *string `json:"country"`
	Description *string `json:"description"`
}

// Validate recorta espacios y verifica el nombre.
func (r *CreateCompanyRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	r.Email = TextPtr(r.Email)
	if r.Email != nil {
		return ValidateEmail(*r.Email)
	}
	return nil
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Industry    *string   `json:"industry"`
	Website     *string   `json:"website"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Address     *string   `json:"address"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	ZipCode     *string   `json:"zip_code"`
	Country     *string   `json:"country"`
	Description *string   `json:"description"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyRefResponse referencia {id, name} embebida en contactos.
type CompanyRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
