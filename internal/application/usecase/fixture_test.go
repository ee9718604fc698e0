package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/directorio-api/internal/application/auth"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
	"github.com/jhoicas/directorio-api/internal/domain/authz"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/infrastructure/memory"
)

type fixture struct {
	store    *memory.Store
	accounts *usecase.AccountUseCase
	contacts *usecase.ContactUseCase
	company  *usecase.CompanyUseCase
	notices  *usecase.NoticeUseCase

	admin, editor, viewer *authz.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	f := &fixture{
		store:    store,
		accounts: usecase.NewAccountUseCase(store.Accounts(), store.Sessions(), hasher, nil),
		contacts: usecase.NewContactUseCase(store.Contacts(), store.Companies()),
		company:  usecase.NewCompanyUseCase(store.Companies()),
		notices:  usecase.NewNoticeUseCase(store.Notices()),
	}
	f.admin = f.seedAccount(t, "admin", entity.RoleAdmin)
	f.editor = f.seedAccount(t, "editora", entity.RoleEditor)
	f.viewer = f.seedAccount(t, "lector", entity.RoleViewer)
	return f
}

func (f *fixture) seedAccount(t *testing.T, username string, role entity.Role) *authz.Actor {
	t.Helper()
	a := &entity.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, f.store.Accounts().Create(context.Background(), a))
	return &authz.Actor{AccountID: a.ID, Username: a.Username, Role: a.Role}
}

func strPtr(s string) *string { return &s }
