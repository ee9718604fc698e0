package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/authz"
	"github.com/jhoicas/directorio-api/internal/infrastructure/persistence"
	"github.com/jhoicas/directorio-api/internal/infrastructure/xmldir"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

// importStats resumen de una importación.
type importStats struct {
	Created int
	Skipped int
}

func newImportDirectoryCmd(open opener, log *logger.Logger) *cobra.Command {
	var as string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import-directory <archivo.xml>",
		Short: "Importa contactos desde un CiscoIPPhoneDirectory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer repos.Close()
			stats, err := importDirectory(cmd.Context(), repos, log, args[0], as, dryRun)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "creados=%d omitidos=%d\n", stats.Created, stats.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "admin", "cuenta que figura como creadora (admin o editor)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "solo valida el archivo")
	return cmd
}

// importDirectory crea un contacto por entrada pasando por el resolver de permisos de la cuenta --as.
func importDirectory(ctx context.Context, repos *persistence.Repositories, log *logger.Logger, path, as string, dryRun bool) (importStats, error) {
	var stats importStats

	account, err := repos.Accounts.GetByUsername(ctx, as)
	if err != nil {
		return stats, err
	}
	if account == nil || !account.IsActive {
		return stats, fmt.Errorf("%w: cuenta %q", domain.ErrNotFound, as)
	}
	actor := &authz.Actor{AccountID: account.ID, Username: account.Username, Role: account.Role}

	f, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	_, entries, err := xmldir.Parse(f)
	if err != nil {
		return stats, err
	}

	contacts := usecase.NewContactUseCase(repos.Contacts, repos.Companies)
	for _, e := range entries {
		in := dto.CreateContactRequest{FirstName: e.FirstName, LastName: e.LastName}
		if e.Phone != "" {
			phone := e.Phone
			in.Phone = &phone
		}
		if err := in.Validate(); err != nil {
			log.Warn().Str("name", e.DisplayName()).Err(err).Msg("entrada omitida")
			stats.Skipped++
			continue
		}
		if dryRun {
			stats.Created++
			continue
		}
		if _, err := contacts.Create(ctx, actor, in); err != nil {
			if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUnauthenticated) {
				return stats, err
			}
			log.Warn().Str("name", e.DisplayName()).Err(err).Msg("entrada omitida")
			stats.Skipped++
			continue
		}
		stats.Created++
	}
	log.Info().Int("created", stats.Created).Int("skipped", stats.Skipped).Bool("dry_run", dryRun).Msg("importación terminada")
	return stats, nil
}
