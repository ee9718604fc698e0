package repository

import (
	"context"
	"time"

	"github.com/jhoicas/directorio-api/internal/domain/entity"
)

// NoticeRepository define el puerto de persistencia para Notice.
type NoticeRepository interface {
	Create(ctx context.Context, notice *entity.Notice) error
	GetByID(ctx context.Context, id int64) (*entity.Notice, error)
	// ListActive avisos activos sin vencer en now, del más reciente al más antiguo, con Creator.
	ListActive(ctx context.Context, now time.Time) ([]*entity.Notice, error)
	Update(ctx context.Context, notice *entity.Notice) error
	Delete(ctx context.Context, id int64) error
}
