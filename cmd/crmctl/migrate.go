package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Gestiona las migraciones del esquema",
	}
	cmd.AddCommand(
		migrateStep("up", "Aplica todas las migraciones pendientes", postgres.UpMigrations),
		migrateStep("down", "Revierte la última migración", postgres.DownMigration),
		migrateStep("status", "Muestra el estado de cada migración", postgres.MigrationStatus),
	)
	return cmd
}

func migrateStep(use, short string, run func(dsn string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			if err := run(cfg.DB.ConnectionString()); err != nil {
				return err
			}
			log.Info().Str("step", use).Msg("migraciones")
			return nil
		},
	}
}
