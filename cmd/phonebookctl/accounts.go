package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/directorio-api/internal/application/auth"
	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/infrastructure/persistence"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

func accountUseCase(repos *persistence.Repositories, log *logger.Logger) *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(repos.Accounts, repos.Sessions, auth.NewBcryptHasher(0), log)
}

func newCreateAdminCmd(open opener, log *logger.Logger) *cobra.Command {
	var in dto.CreateAccountRequest
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Crea el primer administrador (falla si ya existe uno)",
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer repos.Close()
			out, err := createAdmin(cmd.Context(), repos, log, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "administrador %q creado (id=%d)\n", out.Username, out.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Username, "username", "admin", "nombre de usuario")
	f.StringVar(&in.Email, "email", "", "email")
	f.StringVar(&in.Password, "password", "", "contraseña (mínimo 8 caracteres)")
	f.StringVar(&in.FirstName, "first-name", "", "nombre")
	f.StringVar(&in.LastName, "last-name", "", "apellido")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// createAdmin usa la misma inserción atómica que el bootstrap de la API.
func createAdmin(ctx context.Context, repos *persistence.Repositories, log *logger.Logger, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	exists, err := repos.Accounts.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe un administrador", domain.ErrConflict)
	}
	in.Role = string(entity.RoleAdmin)
	return accountUseCase(repos, log).Create(ctx, nil, in)
}

func newResetPasswordCmd(open opener, log *logger.Logger) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reemplaza la contraseña de una cuenta y cierra sus sesiones",
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer repos.Close()
			if err := accountUseCase(repos, log).ResetPassword(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "contraseña de %q actualizada\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin", "cuenta a modificar")
	cmd.Flags().StringVar(&password, "password", "", "nueva contraseña")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
