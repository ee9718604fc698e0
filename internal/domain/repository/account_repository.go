package repository

import (
	"context"

	"github.com/jhoicas/directorio-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Las búsquedas devuelven (nil, nil) cuando no existe la cuenta.
type AccountRepository interface {
	// Create persiste la cuenta y completa ID/CreatedAt/UpdatedAt. Username o email repetido -> domain.ErrConflict.
	Create(ctx context.Context, account *entity.Account) error
	// CreateBootstrapAdmin inserta la cuenta solo si no existe ningún admin, de forma atómica.
	// Si ya hay un admin devuelve domain.ErrConflict sin escribir nada.
	CreateBootstrapAdmin(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Account, int, error)
	// Update reescribe la fila completa. Sin filas afectadas -> domain.ErrNotFound.
	Update(ctx context.Context, account *entity.Account) error
	// Delete elimina la cuenta. Con registros propios -> domain.ErrConflict.
	Delete(ctx context.Context, id int64) error
	AdminExists(ctx context.Context) (bool, error)
	CountAdmins(ctx context.Context) (int, error)
}
