package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/infrastructure/memory"
	"github.com/jhoicas/directorio-api/internal/infrastructure/persistence"
	"github.com/jhoicas/directorio-api/pkg/config"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

func memoryRepos() *persistence.Repositories {
	store := memory.NewStore()
	return &persistence.Repositories{
		Accounts:  store.Accounts(),
		Contacts:  store.Contacts(),
		Companies: store.Companies(),
		Notices:   store.Notices(),
		Sessions:  store.Sessions(),
	}
}

func run(t *testing.T, repos *persistence.Repositories, args ...string) (string, error) {
	t.Helper()
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverMemory}}
	open := func(context.Context) (*persistence.Repositories, error) { return repos, nil }
	root := newRootCmd(cfg, open, logger.Nop())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCreateAdmin_SoloUnaVez(t *testing.T) {
	repos := memoryRepos()

	out, err := run(t, repos, "create-admin", "--email", "root@example.com", "--password", "secreto-123")
	require.NoError(t, err)
	assert.Contains(t, out, `administrador "admin" creado`)

	_, err = run(t, repos, "create-admin", "--username", "otro", "--email", "otro@example.com", "--password", "secreto-123")
	assert.ErrorIs(t, err, domain.ErrConflict)

	n, err := repos.Accounts.CountAdmins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestResetPassword_RevocaSesiones(t *testing.T) {
	repos := memoryRepos()
	_, err := run(t, repos, "create-admin", "--email", "root@example.com", "--password", "secreto-123")
	require.NoError(t, err)

	admin, err := repos.Accounts.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	before := admin.PasswordHash

	_, err = run(t, repos, "reset-password", "--password", "nuevo-secreto")
	require.NoError(t, err)
	admin, err = repos.Accounts.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.NotEqual(t, before, admin.PasswordHash)

	_, err = run(t, repos, "reset-password", "--username", "nadie", "--password", "nuevo-secreto")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportDirectory(t *testing.T) {
	repos := memoryRepos()
	viewer := &entity.Account{Username: "lector", Email: "l@example.com", PasswordHash: "x", Role: entity.RoleViewer, IsActive: true}
	require.NoError(t, repos.Accounts.Create(context.Background(), viewer))
	_, err := run(t, repos, "create-admin", "--email", "root@example.com", "--password", "secreto-123")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dir.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<CiscoIPPhoneDirectory>
  <Title>Centralita</Title>
  <DirectoryEntry><Name>Ávila, Ana</Name><Telephone>100</Telephone></DirectoryEntry>
  <DirectoryEntry><Name>Juan Bravo</Name><Telephone>101</Telephone></DirectoryEntry>
  <DirectoryEntry><Name>Recepción</Name><Telephone>0</Telephone></DirectoryEntry>
</CiscoIPPhoneDirectory>`), 0o600))

	out, err := run(t, repos, "import-directory", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "creados=2 omitidos=1")
	_, total, err := repos.Contacts.List(context.Background(), entity.ContactFilter{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total, "dry-run no escribe")

	out, err = run(t, repos, "import-directory", path)
	require.NoError(t, err)
	assert.Contains(t, out, "creados=2 omitidos=1")
	_, total, err = repos.Contacts.List(context.Background(), entity.ContactFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, err = run(t, repos, "import-directory", path, "--as", "lector")
	assert.ErrorIs(t, err, domain.ErrForbidden, "un viewer no puede crear contactos")
}

func TestMigrate_RequierePostgres(t *testing.T) {
	_, err := run(t, memoryRepos(), "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER=postgres")
}
