package repository

import (
	"context"
	"time"

	"github.com/jhoicas/directorio-api/internal/domain/entity"
)

// SessionRepository almacén de sesiones del lado servidor.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// Get devuelve (nil, nil) si la sesión no existe.
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByAccount(ctx context.Context, accountID int64) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
