package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
)

// seedAdminCmd crea el primer administrador; sin él nadie puede registrar usuarios.
func seedAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Crea un usuario administrador",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || len(password) < 8 {
				return fmt.Errorf("--email es obligatorio y --password debe tener al menos 8 caracteres")
			}
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			})
			user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
				Email:    email,
				Password: password,
				Name:     name,
				Role:     entity.RoleAdmin,
			})
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				log.Warn().Str("email", email).Msg("el administrador ya existe")
				return nil
			}
			if err != nil {
				return err
			}
			log.Info().Str("id", user.ID).Str("email", user.Email).Msg("administrador creado")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&password, "password", "", "password (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&name, "name", "Administrador", "nombre visible")
	return cmd
}
