// phonebookctl tareas de operador: migraciones, primer administrador, reseteo de contraseña e
// importación de directorios de telefonía IP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/directorio-api/internal/infrastructure/persistence"
	"github.com/jhoicas/directorio-api/pkg/config"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

// opener abre la persistencia; los tests inyectan un almacén en memoria compartido.
type opener func(ctx context.Context) (*persistence.Repositories, error)

func main() {
	cfg, err := config.LoadForTools()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Las migraciones se aplican explícitamente con "migrate up".
	dbCfg := cfg.DB
	dbCfg.AutoMigrate = false
	open := func(ctx context.Context) (*persistence.Repositories, error) {
		return persistence.Open(ctx, dbCfg, log)
	}

	if err := newRootCmd(cfg, open, log).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("comando fallido")
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, open opener, log *logger.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "phonebookctl <comando> [flags]",
		Short:         "Herramientas de operador del directorio",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(cfg, log),
		newCreateAdminCmd(open, log),
		newResetPasswordCmd(open, log),
		newImportDirectoryCmd(open, log),
	)
	return root
}
