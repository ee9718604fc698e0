package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/directorio-api/internal/domain"
)

// CreateContactRequest entrada para crear un contacto.
type CreateContactRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Mobile    *string `json:"mobile"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zip_code"`
	Country   *string `json:"country"`
	Notes     *string `json:"notes"`
	CompanyID *int64  `json:"company_id"`
}

// Validate recorta espacios y verifica nombre y apellido.
func (r *CreateContactRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.FirstName == "" || r.LastName == "" {
		return fmt.Errorf("%w: first_name y last_name son requeridos", domain.ErrInvalidInput)
	}
	r.Email = TextPtr(r.Email)
	if r.Email != nil {
		return ValidateEmail(*r.Email)
	}
	return nil
}

// UpdateContactRequest actualización parcial: solo se aplican las claves presentes.
type UpdateContactRequest struct {
	FirstName Optional[string] `json:"first_name" swaggertype:"string"`
	LastName  Optional[string] `json:"last_name" swaggertype:"string"`
	Email     Optional[string] `json:"email" swaggertype:"string"`
	Phone     Optional[string] `json:"phone" swaggertype:"string"`
	Mobile    Optional[string] `json:"mobile" swaggertype:"string"`
	Address   Optional[string] `json:"address" swaggertype:"string"`
	City      Optional[string] `json:"city" swaggertype:"string"`
	State     Optional[string] `json:"state" swaggertype:"string"`
	ZipCode   Optional[string] `json:"zip_code" swaggertype:"string"`
	Country   Optional[string] `json:"country" swaggertype:"string"`
	Notes     Optional[string] `json:"notes" swaggertype:"string"`
	CompanyID Optional[int64]  `json:"company_id" swaggertype:"integer"`
}

// ContactListRequest filtros del listado.
type ContactListRequest struct {
	PageRequest
	Search    string
	CompanyID *int64
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID        int64               `json:"id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	FullName  string              `json:"full_name"`
	Email     *string             `json:"email"`
	Phone     *string             `json:"phone"`
	Mobile    *string             `json:"mobile"`
	Address   *string             `json:"address"`
	City      *string             `json:"city"`
	State     *string             `json:"state"`
	ZipCode   *string             `json:"zip_code"`
	Country   *string             `json:"country"`
	Notes     *string             `json:"notes"`
	CompanyID *int64              `json:"company_id"`
	Company   *CompanyRefResponse `json:"company"`
	CreatedBy int64               `json:"created_by"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ContactListResponse lista paginada de contactos.
type ContactListResponse struct {
	Items []ContactResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
