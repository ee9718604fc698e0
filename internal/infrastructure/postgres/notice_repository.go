package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
)

var _ repository.NoticeRepository = (*NoticeRepo)(nil)

const noticeColumns = `n.id, n.title, n.content, n.priority, n.is_active, n.expires_at, n.created_by, n.created_at, n.updated_at`

// NoticeRepo implementación del puerto NoticeRepository sobre PostgreSQL.
type NoticeRepo struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository construye el adaptador de persistencia para avisos.
func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepo {
	return &NoticeRepo{pool: pool}
}

func scanNotice(row pgx.Row, extra ...any) (*entity.Notice, error) {
	var n entity.Notice
	dest := append([]any{&n.ID, &n.Title, &n.Content, &n.Priority, &n.IsActive, &n.ExpiresAt, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste un aviso.
func (r *NoticeRepo) Create(ctx context.Context, n *entity.Notice) error {
	query := `
		INSERT INTO notices (title, content, priority, is_active, expires_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, n.Title, n.Content, n.Priority, n.IsActive, n.ExpiresAt, n.CreatedBy).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return translateWrite("insert notice", err, false)
	}
	return nil
}

// GetByID obtiene un aviso por ID.
func (r *NoticeRepo) GetByID(ctx context.Context, id int64) (*entity.Notice, error) {
	n, err := scanNotice(r.pool.QueryRow(ctx, `SELECT `+noticeColumns+` FROM notices n WHERE n.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notice: %w", err)
	}
	return n, nil
}

// ListActive avisos activos cuyo vencimiento no pasó, más recientes primero, con su creador.
func (r *NoticeRepo) ListActive(ctx context.Context, now time.Time) ([]*entity.Notice, error) {
	query := `
		SELECT ` + noticeColumns + `, a.id, a.username
		  FROM notices n
		  LEFT JOIN accounts a ON a.id = n.created_by
		 WHERE n.is_active
		   AND (n.expires_at IS NULL OR n.expires_at >= $1)
		 ORDER BY n.created_at DESC, n.id DESC`
	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Notice, 0)
	for rows.Next() {
		var (
			creatorID   *int64
			creatorName *string
		)
		n, err := scanNotice(rows, &creatorID, &creatorName)
		if err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		if creatorID != nil && creatorName != nil {
			n.Creator = &entity.AccountRef{ID: *creatorID, Username: *creatorName}
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Update reescribe los campos editables del aviso.
func (r *NoticeRepo) Update(ctx context.Context, n *entity.Notice) error {
	query := `
		UPDATE notices SET title = $2, content = $3, priority = $4, is_active = $5, expires_at = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query, n.ID, n.Title, n.Content, n.Priority, n.IsActive, n.ExpiresAt).Scan(&n.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return translateWrite("update notice", err, false)
	}
	return nil
}

// Delete elimina un aviso por ID.
func (r *NoticeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return translateWrite("delete notice", err, true)
	}
	return expectRow(tag)
}
