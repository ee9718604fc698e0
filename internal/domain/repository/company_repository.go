package repository

import (
	"context"

	"github.com/jhoicas/directorio-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create persiste la empresa. Nombre repetido -> domain.ErrConflict.
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, int, error)
}
