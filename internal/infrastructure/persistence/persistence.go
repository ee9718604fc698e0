// Package persistence elige la implementación de los repositorios según DB_DRIVER.
package persistence

import (
	"context"
	"fmt"

	"github.com/jhoicas/directorio-api/internal/domain/repository"
	"github.com/jhoicas/directorio-api/internal/infrastructure/memory"
	"github.com/jhoicas/directorio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/directorio-api/pkg/config"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

// Repositories puertos de persistencia listos para inyectar en los casos de uso.
type Repositories struct {
	Accounts  repository.AccountRepository
	Contacts  repository.ContactRepository
	Companies repository.CompanyRepository
	Notices   repository.NoticeRepository
	Sessions  repository.SessionRepository

	close func()
}

// Close libera el pool de conexiones (no-op en memoria).
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open construye los repositorios. Con postgres aplica las migraciones si AutoMigrate está activo.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &Repositories{
			Accounts:  store.Accounts(),
			Contacts:  store.Contacts(),
			Companies: store.Companies(),
			Notices:   store.Notices(),
			Sessions:  store.Sessions(),
		}, nil

	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := postgres.RunMigrations(cfg.ConnectionString()); err != nil {
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Accounts:  postgres.NewAccountRepository(pool),
			Contacts:  postgres.NewContactRepository(pool),
			Companies: postgres.NewCompanyRepository(pool),
			Notices:   postgres.NewNoticeRepository(pool),
			Sessions:  postgres.NewSessionRepository(pool),
			close:     pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("persistence: driver desconocido %q", cfg.Driver)
	}
}
