package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/authz"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
	"github.com/jhoicas/directorio-api/pkg/jwt"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

// SessionConfig configuración para emitir y validar tokens de sesión.
type SessionConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// AuthUseCase casos de uso de autenticación: login, logout y resolución de sesión.
type AuthUseCase struct {
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	hasher   PasswordHasher
	cfg      SessionConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(accounts repository.AccountRepository, sessions repository.SessionRepository, hasher PasswordHasher, cfg SessionConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		accounts: accounts,
		sessions: sessions,
		hasher:   hasher,
		cfg:      cfg,
		log:      log.Component("auth"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Login verifica username/password, crea la sesión y devuelve el token que la referencia.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	account, err := uc.accounts.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if account == nil || !uc.hasher.Verify(in.Password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	now := uc.now().UTC()
	session := &entity.Session{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.TTL),
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	token, err := jwt.Generate(uc.cfg.Secret, session.ID, account.ID, uc.cfg.Issuer, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("account_id", account.ID).Str("session_id", session.ID).Msg("login")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Account:   dto.FromAccount(account),
	}, nil
}

// Logout elimina la sesión referenciada por el token. Un token inválido no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := jwt.Parse(uc.cfg.Secret, uc.cfg.Issuer, token)
	if err != nil {
		return nil
	}
	return uc.sessions.Delete(ctx, claims.SessionID())
}

// Authenticate resuelve el token en un Actor. Token ausente, inválido, vencido o revocado
// devuelve (nil, nil); solo los fallos de almacenamiento devuelven error.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*authz.Actor, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := jwt.Parse(uc.cfg.Secret, uc.cfg.Issuer, token)
	if err != nil {
		return nil, nil
	}
	session, err := uc.sessions.Get(ctx, claims.SessionID())
	if err != nil {
		return nil, err
	}
	if session == nil || session.AccountID != claims.AccountID || session.Expired(uc.now()) {
		return nil, nil
	}
	return &authz.Actor{AccountID: session.AccountID, Username: session.Username, Role: session.Role}, nil
}

// Status informa si hay sesión y, en ese caso, la cuenta actual.
func (uc *AuthUseCase) Status(ctx context.Context, actor *authz.Actor) (*dto.StatusResponse, error) {
	if actor == nil {
		return &dto.StatusResponse{Authenticated: false}, nil
	}
	account, err := uc.accounts.GetByID(ctx, actor.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &dto.StatusResponse{Authenticated: false}, nil
	}
	out := dto.FromAccount(account)
	return &dto.StatusResponse{Authenticated: true, Account: &out}, nil
}

// SweepExpired borra las sesiones vencidas.
func (uc *AuthUseCase) SweepExpired(ctx context.Context) (int64, error) {
	return uc.sessions.DeleteExpired(ctx, uc.now())
}

// RunSweeper ejecuta SweepExpired cada interval hasta que ctx se cancele.
func (uc *AuthUseCase) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := uc.SweepExpired(ctx)
			if err != nil {
				uc.log.Error().Err(err).Msg("limpieza de sesiones")
				continue
			}
			if n > 0 {
				uc.log.Debug().Int64("deleted", n).Msg("sesiones vencidas eliminadas")
			}
		}
	}
}
