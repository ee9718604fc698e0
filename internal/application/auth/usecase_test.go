package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/directorio-api/internal/application/auth"
	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/infrastructure/memory"
)

const secret = "secreto-de-pruebas"

func setup(t *testing.T) (*memory.Store, *auth.AuthUseCase, *entity.Account) {
	t.Helper()
	store := memory.NewStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("clave-segura")
	require.NoError(t, err)
	acc := &entity.Account{Username: "ana", Email: "ana@example.com", PasswordHash: hash, Role: entity.RoleEditor, IsActive: true}
	require.NoError(t, store.Accounts().Create(context.Background(), acc))

	uc := auth.NewAuthUseCase(store.Accounts(), store.Sessions(), hasher, auth.SessionConfig{
		Secret: secret, Issuer: "directorio-test", TTL: time.Hour,
	}, nil)
	return store, uc, acc
}

func TestBcryptHasher(t *testing.T) {
	h := auth.NewBcryptHasher(bcrypt.MinCost)
	digest, err := h.Hash("abc12345")
	require.NoError(t, err)
	assert.NotEqual(t, "abc12345", digest)
	assert.True(t, h.Verify("abc12345", digest))
	assert.False(t, h.Verify("otra", digest))
	assert.False(t, h.Verify("abc12345", "no-es-bcrypt"))
}

func TestLogin_FlujoCompleto(t *testing.T) {
	ctx := context.Background()
	store, uc, acc := setup(t)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, acc.ID, out.Account.ID)

	actor, err := uc.Authenticate(ctx, out.Token)
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.Equal(t, acc.ID, actor.AccountID)
	assert.Equal(t, entity.RoleEditor, actor.Role)

	status, err := uc.Status(ctx, actor)
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	assert.Equal(t, "ana", status.Account.Username)

	require.NoError(t, uc.Logout(ctx, out.Token))
	actor, err = uc.Authenticate(ctx, out.Token)
	require.NoError(t, err)
	assert.Nil(t, actor, "logout revoca la sesión")

	n, err := store.Sessions().DeleteExpired(ctx, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLogin_CredencialesYCuentaInactiva(t *testing.T) {
	ctx := context.Background()
	store, uc, acc := setup(t)

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	acc.IsActive = false
	require.NoError(t, store.Accounts().Update(ctx, acc))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestAuthenticate_TokensInvalidos(t *testing.T) {
	ctx := context.Background()
	store, uc, _ := setup(t)

	for _, tok := range []string{"", "basura", "a.b.c"} {
		actor, err := uc.Authenticate(ctx, tok)
		require.NoError(t, err)
		assert.Nil(t, actor)
	}

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "clave-segura"})
	require.NoError(t, err)

	// Sesión vencida del lado servidor aunque el token siga firmado y vigente.
	uc.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
	actor, err := uc.Authenticate(ctx, out.Token)
	require.NoError(t, err)
	assert.Nil(t, actor)

	n, err := uc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	s, err := store.Sessions().Get(ctx, "inexistente")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestStatus_Anonimo(t *testing.T) {
	_, uc, _ := setup(t)
	status, err := uc.Status(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, status.Authenticated)
	assert.Nil(t, status.Account)
}

func TestLogout_TokenInvalidoNoFalla(t *testing.T) {
	_, uc, _ := setup(t)
	assert.NoError(t, uc.Logout(context.Background(), ""))
	assert.NoError(t, uc.Logout(context.Background(), "basura"))
}
