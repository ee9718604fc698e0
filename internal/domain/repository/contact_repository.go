package repository

import (
	"context"

	"github.com/jhoicas/directorio-api/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para Contact.
// Las lecturas completan Contact.Company cuando la empresa existe.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id int64) (*entity.Contact, error)
	// List aplica búsqueda y filtro por empresa; devuelve la página y el total sin paginar.
	List(ctx context.Context, filter entity.ContactFilter) ([]*entity.Contact, int, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id int64) error
}
