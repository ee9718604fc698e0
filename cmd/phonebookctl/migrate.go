package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/directorio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/directorio-api/pkg/config"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

func newMigrateCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DB.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate requiere DB_DRIVER=postgres (actual %q)", cfg.DB.Driver)
			}
			return nil
		},
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
				return err
			}
			return printVersion(cmd, cfg, log)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revierte migraciones (por defecto la última)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.RollbackMigrations(cfg.DB.ConnectionString(), steps); err != nil {
				return err
			}
			return printVersion(cmd, cfg, log)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "migraciones a revertir; 0 revierte todas")

	version := &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión aplicada",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cmd, cfg, log)
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func printVersion(cmd *cobra.Command, cfg *config.Config, log *logger.Logger) error {
	v, dirty, err := postgres.MigrationVersion(cfg.DB.ConnectionString())
	if err != nil {
		return err
	}
	log.Info().Uint("version", v).Bool("dirty", dirty).Msg("esquema")
	fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
	return nil
}
