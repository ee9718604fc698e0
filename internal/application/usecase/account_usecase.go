package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/jhoicas/directorio-api/internal/application/auth"
	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/authz"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

// AccountUseCase aplica reglas de negocio para cuentas.
type AccountUseCase struct {
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	hasher   auth.PasswordHasher
	log      *logger.Logger
}

// NewAccountUseCase construye el caso de uso con los puertos de persistencia.
func NewAccountUseCase(accounts repository.AccountRepository, sessions repository.SessionRepository, hasher auth.PasswordHasher, log *logger.Logger) *AccountUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AccountUseCase{accounts: accounts, sessions: sessions, hasher: hasher, log: log.Component("accounts")}
}

// Create crea una cuenta. Sin administradores, la primera cuenta admin puede crearse sin sesión;
// esa inserción es atómica y las solicitudes concurrentes que pierdan reciben domain.ErrConflict.
func (uc *AccountUseCase) Create(ctx context.Context, actor *authz.Actor, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	role := entity.RoleViewer
	if r := strings.TrimSpace(in.Role); r != "" {
		parsed, err := entity.ParseRole(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		role = parsed
	}
	adminExists, err := uc.accounts.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(authz.Request{
		Actor:         actor,
		Op:            authz.OpCreate,
		Kind:          authz.KindAccount,
		AdminExists:   adminExists,
		RequestedRole: role,
	}); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	account := &entity.Account{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     lo.FromPtrOr(in.IsActive, true),
	}
	if authz.IsBootstrap(adminExists, role) {
		err = uc.accounts.CreateBootstrapAdmin(ctx, account)
	} else {
		err = uc.accounts.Create(ctx, account)
	}
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("account_id", account.ID).Str("role", string(role)).Bool("bootstrap", actor == nil).Msg("cuenta creada")
	out := dto.FromAccount(account)
	return &out, nil
}

// List lista cuentas (solo admin).
func (uc *AccountUseCase) List(ctx context.Context, actor *authz.Actor, page dto.PageRequest) (*dto.AccountListResponse, error) {
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpRead, Kind: authz.KindAccount}); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, total, err := uc.accounts.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.AccountListResponse{
		Items: lo.Map(list, func(a *entity.Account, _ int) dto.AccountResponse { return dto.FromAccount(a) }),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetByID obtiene una cuenta (solo admin).
func (uc *AccountUseCase) GetByID(ctx context.Context, actor *authz.Actor, id int64) (*dto.AccountResponse, error) {
	account, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpRead, Kind: authz.KindAccount, OwnerID: id}); err != nil {
		return nil, err
	}
	out := dto.FromAccount(account)
	return &out, nil
}

// Update aplica solo los campos presentes. Cambiar rol, estado o password revoca las sesiones
// de la cuenta.
func (uc *AccountUseCase) Update(ctx context.Context, actor *authz.Actor, id int64, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpUpdate, Kind: authz.KindAccount, OwnerID: id}); err != nil {
		return nil, err
	}

	before := *account
	if err := dto.ApplyRequiredText("username", in.Username, &account.Username); err != nil {
		return nil, err
	}
	if err := dto.ApplyRequiredText("email", in.Email, &account.Email); err != nil {
		return nil, err
	}
	if in.Email.HasValue() {
		if err := dto.ValidateEmail(account.Email); err != nil {
			return nil, err
		}
	}
	if in.FirstName.Set {
		account.FirstName = strings.TrimSpace(in.FirstName.Value)
	}
	if in.LastName.Set {
		account.LastName = strings.TrimSpace(in.LastName.Value)
	}
	var roleText string
	if err := in.Role.ApplyRequired("role", &roleText); err != nil {
		return nil, err
	}
	if in.Role.Set {
		role, err := entity.ParseRole(strings.TrimSpace(roleText))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		account.Role = role
	}
	if err := in.IsActive.ApplyRequired("is_active", &account.IsActive); err != nil {
		return nil, err
	}
	passwordChanged := false
	var password string
	if err := in.Password.ApplyRequired("password", &password); err != nil {
		return nil, err
	}
	if in.Password.Set {
		if err := dto.ValidatePassword(password); err != nil {
			return nil, err
		}
		hash, err := uc.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
		passwordChanged = true
	}

	if err := uc.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	if passwordChanged || account.Role != before.Role || account.IsActive != before.IsActive || account.Username != before.Username {
		n, err := uc.sessions.DeleteByAccount(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("revocar sesiones: %w", err)
		}
		uc.log.Info().Int64("account_id", account.ID).Int64("sessions", n).Msg("sesiones revocadas")
	}
	out := dto.FromAccount(account)
	return &out, nil
}

// Delete elimina una cuenta. Un admin nunca puede eliminarse a sí mismo.
func (uc *AccountUseCase) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpDelete, Kind: authz.KindAccount, OwnerID: id}); err != nil {
		return err
	}
	if err := uc.accounts.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("account_id", id).Int64("by", actor.AccountID).Msg("cuenta eliminada")
	return nil
}

// ResetPassword reemplaza la contraseña sin sesión de por medio (CLI de operador) y revoca sesiones.
func (uc *AccountUseCase) ResetPassword(ctx context.Context, username, password string) error {
	if err := dto.ValidatePassword(password); err != nil {
		return err
	}
	account, err := uc.accounts.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	if err := uc.accounts.Update(ctx, account); err != nil {
		return err
	}
	_, err = uc.sessions.DeleteByAccount(ctx, account.ID)
	return err
}

func (uc *AccountUseCase) load(ctx context.Context, actor *authz.Actor, id int64) (*entity.Account, error) {
	if err := authz.RequireActor(actor); err != nil {
		return nil, err
	}
	account, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return account, nil
}
