package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo almacén de sesiones sobre PostgreSQL.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el adaptador de sesiones.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Create persiste la sesión.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return fmt.Errorf("session id: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO sessions (id, account_id, username, role, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, s.AccountID, s.Username, s.Role, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return translateWrite("insert session", err, false)
	}
	return nil
}

// Get devuelve la sesión o (nil, nil) si no existe. Un id que no es UUID no existe.
func (r *SessionRepo) Get(ctx context.Context, id string) (*entity.Session, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	var (
		s   entity.Session
		got uuid.UUID
	)
	err = r.pool.QueryRow(ctx, `
		SELECT id, account_id, username, role, created_at, expires_at FROM sessions WHERE id = $1`, sid).
		Scan(&got, &s.AccountID, &s.Username, &s.Role, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.ID = got.String()
	return &s, nil
}

// Delete elimina la sesión; no existir no es error.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteByAccount revoca todas las sesiones de una cuenta.
func (r *SessionRepo) DeleteByAccount(ctx context.Context, accountID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, fmt.Errorf("delete sessions by account: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteExpired elimina las sesiones vencidas en now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
