package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	// driver database/sql para goose.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/Ventas-api/migrations"
)

// UpMigrations aplica las migraciones embebidas pendientes.
func UpMigrations(dsn string) error {
	return withGoose(dsn, func(db *sql.DB) error {
		err := goose.Up(db, ".")
		if err != nil && !errors.Is(err, goose.ErrNoNextVersion) {
			return err
		}
		return nil
	})
}

// DownMigration revierte la última migración aplicada.
func DownMigration(dsn string) error {
	return withGoose(dsn, func(db *sql.DB) error { return goose.Down(db, ".") })
}

// MigrationStatus imprime el estado de cada migración por el logger de goose.
func MigrationStatus(dsn string) error {
	return withGoose(dsn, func(db *sql.DB) error { return goose.Status(db, ".") })
}

func withGoose(dsn string, fn func(db *sql.DB) error) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir conexión de migraciones: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := fn(db); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	return nil
}
