package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/application/workflow"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Ventas-api/internal/infrastructure/redis"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/spreadsheet"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importaciones masivas",
	}
	cmd.AddCommand(importInvoicesCmd())
	return cmd
}

func importInvoicesCmd() *cobra.Command {
	var asUser string
	cmd := &cobra.Command{
		Use:   "invoices [archivo]",
		Short: "Importa facturas desde un Excel o CSV",
		Long: `Importa facturas de venta agrupando las filas por DocEntry.

Formatos aceptados: .xlsx, .xlsm, .csv y .txt (separador ; o ,).
Las facturas cuyo DocEntry ya existe se omiten.

Ejemplos:
  crmctl import invoices ventas_2024.xlsx
  crmctl import invoices export.csv --as 6f1c...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			var locker importer.Locker = importer.NewLocalLocker()
			if cfg.Redis.Enabled() {
				rdb, err := infraredis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
				if err != nil {
					return fmt.Errorf("conexión a Redis: %w", err)
				}
				defer rdb.Close()
				locker = infraredis.NewLocker(rdb, cfg.Redis.LockTTL, log)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			im := importer.NewInvoiceImporter(
				postgres.NewInvoiceRepository(pool),
				postgres.NewCustomerRepository(pool),
				spreadsheet.NewParser(),
				locker,
				workflow.NopNotifier{},
				log,
			)
			actor := access.Actor{UserID: asUser, Role: entity.RoleAdmin}
			res, err := im.Import(ctx, actor, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVar(&asUser, "as", "crmctl", "ID del administrador que figura como autor")
	return cmd
}
