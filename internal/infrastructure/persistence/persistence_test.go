package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/infrastructure/persistence"
	"github.com/jhoicas/directorio-api/pkg/config"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

func TestOpen_Memoria(t *testing.T) {
	repos, err := persistence.Open(context.Background(), config.DBConfig{Driver: config.DriverMemory}, logger.Nop())
	require.NoError(t, err)
	defer repos.Close()

	a := &entity.Account{Username: "ana", Email: "ana@example.com", PasswordHash: "x", Role: entity.RoleAdmin, IsActive: true}
	require.NoError(t, repos.Accounts.Create(context.Background(), a))
	exists, err := repos.Accounts.AdminExists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := persistence.Open(context.Background(), config.DBConfig{Driver: "mysql"}, logger.Nop())
	assert.Error(t, err)
}
