package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/authz"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
)

// NoticeUseCase aplica reglas de negocio para el tablón de avisos.
type NoticeUseCase struct {
	repo repository.NoticeRepository
	now  func() time.Time
}

// NewNoticeUseCase construye el caso de uso.
func NewNoticeUseCase(repo repository.NoticeRepository) *NoticeUseCase {
	return &NoticeUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *NoticeUseCase) WithClock(now func() time.Time) *NoticeUseCase {
	uc.now = now
	return uc
}

// ListActive lista avisos activos y no vencidos, del más reciente al más antiguo.
func (uc *NoticeUseCase) ListActive(ctx context.Context, actor *authz.Actor, page dto.PageRequest) (*dto.NoticeListResponse, error) {
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpRead, Kind: authz.KindNotice}); err != nil {
		return nil, err
	}
	page.DefaultPage()
	now := uc.now().UTC()
	list, err := uc.repo.ListActive(ctx, now)
	if err != nil {
		return nil, err
	}
	total := len(list)
	items := lo.Map(lo.Slice(list, page.Offset, page.Offset+page.Limit), func(n *entity.Notice, _ int) dto.NoticeResponse {
		return dto.FromNotice(n, now)
	})
	return &dto.NoticeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Create publica un aviso (solo admin).
func (uc *NoticeUseCase) Create(ctx context.Context, actor *authz.Actor, in dto.CreateNoticeRequest) (*dto.NoticeResponse, error) {
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpCreate, Kind: authz.KindNotice}); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	priority, err := entity.ParsePriority(strings.TrimSpace(in.Priority))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	var expiresAt *time.Time
	if in.ExpiresAt != nil {
		if expiresAt, err = dto.ParseTimestamp(*in.ExpiresAt); err != nil {
			return nil, err
		}
	}
	notice := &entity.Notice{
		Title:     in.Title,
		Content:   in.Content,
		Priority:  priority,
		IsActive:  lo.FromPtrOr(in.IsActive, true),
		ExpiresAt: expiresAt,
		CreatedBy: actor.AccountID,
	}
	if err := uc.repo.Create(ctx, notice); err != nil {
		return nil, err
	}
	out := dto.FromNotice(notice, uc.now())
	return &out, nil
}

// Update aplica los campos presentes (admin o creador del aviso).
func (uc *NoticeUseCase) Update(ctx context.Context, actor *authz.Actor, id int64, in dto.UpdateNoticeRequest) (*dto.NoticeResponse, error) {
	notice, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpUpdate, Kind: authz.KindNotice, OwnerID: notice.CreatedBy}); err != nil {
		return nil, err
	}

	if err := dto.ApplyRequiredText("title", in.Title, &notice.Title); err != nil {
		return nil, err
	}
	if err := dto.ApplyRequiredText("content", in.Content, &notice.Content); err != nil {
		return nil, err
	}
	var priorityText string
	if err := in.Priority.ApplyRequired("priority", &priorityText); err != nil {
		return nil, err
	}
	if in.Priority.Set {
		p, err := entity.ParsePriority(strings.TrimSpace(priorityText))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		notice.Priority = p
	}
	if err := in.IsActive.ApplyRequired("is_active", &notice.IsActive); err != nil {
		return nil, err
	}
	if in.ExpiresAt.Set {
		notice.ExpiresAt = nil
		if !in.ExpiresAt.Null {
			if notice.ExpiresAt, err = dto.ParseTimestamp(in.ExpiresAt.Value); err != nil {
				return nil, err
			}
		}
	}

	if err := uc.repo.Update(ctx, notice); err != nil {
		return nil, err
	}
	out := dto.FromNotice(notice, uc.now())
	return &out, nil
}

// Delete elimina un aviso (admin o creador).
func (uc *NoticeUseCase) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	notice, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpDelete, Kind: authz.KindNotice, OwnerID: notice.CreatedBy}); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *NoticeUseCase) load(ctx context.Context, actor *authz.Actor, id int64) (*entity.Notice, error) {
	if err := authz.RequireActor(actor); err != nil {
		return nil, err
	}
	notice, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, domain.ErrNotFound
	}
	return notice, nil
}
