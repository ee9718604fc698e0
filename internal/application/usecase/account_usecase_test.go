package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/directorio-api/internal/application/auth"
	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/infrastructure/memory"
)

func newEmptyAccountUseCase() (*memory.Store, *usecase.AccountUseCase) {
	store := memory.NewStore()
	return store, usecase.NewAccountUseCase(store.Accounts(), store.Sessions(), auth.NewBcryptHasher(bcrypt.MinCost), nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bootstrap
// ──────────────────────────────────────────────────────────────────────────────

func TestAccountCreate_BootstrapSinSesion(t *testing.T) {
	ctx := context.Background()
	store, uc := newEmptyAccountUseCase()

	out, err := uc.Create(ctx, nil, dto.CreateAccountRequest{Username: "root", Email: "root@example.com", Password: "secreto123", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Role)
	assert.True(t, out.IsActive)

	_, err = uc.Create(ctx, nil, dto.CreateAccountRequest{Username: "otro", Email: "otro@example.com", Password: "secreto123", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated, "con admin existente el bootstrap ya no aplica")

	n, err := store.Accounts().CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAccountCreate_BootstrapNoAplicaAOtrosRoles(t *testing.T) {
	_, uc := newEmptyAccountUseCase()
	_, err := uc.Create(context.Background(), nil, dto.CreateAccountRequest{Username: "ed", Email: "ed@example.com", Password: "secreto123", Role: "editor"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAccountCreate_BootstrapConcurrenteCreaUnSoloAdmin(t *testing.T) {
	ctx := context.Background()
	store, uc := newEmptyAccountUseCase()

	const n = 20
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.Create(ctx, nil, dto.CreateAccountRequest{
				Username: fmt.Sprintf("admin%d", i),
				Email:    fmt.Sprintf("admin%d@example.com", i),
				Password: "secreto123",
				Role:     "admin",
			})
		}(i)
	}
	close(start)
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrUnauthenticated):
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	admins, err := store.Accounts().CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, admins)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gestión de cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestAccountCreate_SoloAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := dto.CreateAccountRequest{Username: "nuevo", Email: "nuevo@example.com", Password: "secreto123"}

	_, err := f.accounts.Create(ctx, f.editor, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.accounts.Create(ctx, f.admin, in)
	require.NoError(t, err)
	assert.Equal(t, "viewer", out.Role, "rol por defecto")

	_, err = f.accounts.Create(ctx, f.admin, in)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.accounts.Create(ctx, f.admin, dto.CreateAccountRequest{Username: "x", Email: "x@example.com", Password: "secreto123", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAccountDelete_AdminNoSeEliminaASiMismo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.accounts.Delete(ctx, f.admin, f.admin.AccountID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.accounts.Delete(ctx, f.admin, f.viewer.AccountID))
	_, err = f.accounts.GetByID(ctx, f.admin, f.viewer.AccountID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountDelete_ConRegistrosPropiosEsConflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.contacts.Create(ctx, f.editor, dto.CreateContactRequest{FirstName: "Ana", LastName: "Ruiz"})
	require.NoError(t, err)

	err = f.accounts.Delete(ctx, f.admin, f.editor.AccountID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAccountGet_PrecedenciaDeErrores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.accounts.GetByID(ctx, nil, 999)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.accounts.GetByID(ctx, f.viewer, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.accounts.GetByID(ctx, f.viewer, f.admin.AccountID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAccountUpdate_CambioDeRolRevocaSesiones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sessions := f.store.Sessions()
	require.NoError(t, sessions.Create(ctx, &entity.Session{ID: "s-1", AccountID: f.viewer.AccountID, Role: entity.RoleViewer}))

	out, err := f.accounts.Update(ctx, f.admin, f.viewer.AccountID, dto.UpdateAccountRequest{FirstName: dto.Some("Luz")})
	require.NoError(t, err)
	assert.Equal(t, "Luz", out.FirstName)
	s, err := sessions.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.NotNil(t, s, "cambiar el nombre no revoca")

	out, err = f.accounts.Update(ctx, f.admin, f.viewer.AccountID, dto.UpdateAccountRequest{Role: dto.Some("editor")})
	require.NoError(t, err)
	assert.Equal(t, "editor", out.Role)
	assert.Equal(t, "Luz", out.FirstName)
	s, err = sessions.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestAccountUpdate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Update(ctx, f.editor, f.viewer.AccountID, dto.UpdateAccountRequest{Role: dto.Some("admin")})
	assert.ErrorIs(t, err, domain.ErrForbidden, "el rol solo lo cambia un admin")

	_, err = f.accounts.Update(ctx, f.admin, f.viewer.AccountID, dto.UpdateAccountRequest{Role: dto.Null[string]()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.accounts.Update(ctx, f.admin, f.viewer.AccountID, dto.UpdateAccountRequest{Email: dto.Some("no-email")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.accounts.Update(ctx, f.admin, f.viewer.AccountID, dto.UpdateAccountRequest{Username: dto.Some("editora")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAccountResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.accounts.ResetPassword(ctx, "nadie", "secreto123"), domain.ErrNotFound)
	assert.ErrorIs(t, f.accounts.ResetPassword(ctx, "admin", "corto"), domain.ErrInvalidInput)
	require.NoError(t, f.accounts.ResetPassword(ctx, "admin", "nuevo-secreto"))

	a, err := f.store.Accounts().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, auth.NewBcryptHasher(bcrypt.MinCost).Verify("nuevo-secreto", a.PasswordHash))
}

func TestAccountList_Paginado(t *testing.T) {
	f := newFixture(t)
	out, err := f.accounts.List(context.Background(), f.admin, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)

	_, err = f.accounts.List(context.Background(), f.viewer, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
