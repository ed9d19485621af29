package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// psql builder con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullable convierte "" en NULL para columnas UUID/FK opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// withScope restringe col a los usuarios del alcance. Un alcance vacío no devuelve filas.
func withScope(b sq.SelectBuilder, col string, s repository.Scope) sq.SelectBuilder {
	if s.Unrestricted {
		return b
	}
	return b.Where(sq.Eq{col: s.UserIDs})
}

// withOwnerScope visible si el asignado o el creador caen en el alcance.
func withOwnerScope(b sq.SelectBuilder, s repository.Scope) sq.SelectBuilder {
	if s.Unrestricted {
		return b
	}
	return b.Where(sq.Or{sq.Eq{"assigned_to": s.UserIDs}, sq.Eq{"created_by": s.UserIDs}})
}

// withCustomerScope restringe documentos por el dueño del cliente.
func withCustomerScope(b sq.SelectBuilder, s repository.Scope) sq.SelectBuilder {
	if s.Unrestricted {
		return b
	}
	sub, args, err := sq.Select("card_code").From("customers").Where(sq.Eq{"assigned_to": s.UserIDs}).ToSql()
	if err != nil {
		return b.Where("1=0")
	}
	return b.Where("card_code IN ("+sub+")", args...)
}

// withRange aplica un DateRange cerrado sobre col; los extremos cero quedan abiertos.
func withRange(b sq.SelectBuilder, col string, r repository.DateRange) sq.SelectBuilder {
	if !r.From.IsZero() {
		b = b.Where(sq.GtOrEq{col: r.From})
	}
	if !r.To.IsZero() {
		b = b.Where(sq.LtOrEq{col: r.To})
	}
	return b
}

// withPage aplica orden y paginación. SortBy ya viene de una lista blanca.
func withPage(b sq.SelectBuilder, o repository.ListOptions, tiebreak string) sq.SelectBuilder {
	dir := "ASC"
	if o.SortDesc {
		dir = "DESC"
	}
	if o.SortBy != "" {
		b = b.OrderBy(fmt.Sprintf("%s %s", o.SortBy, dir))
	}
	if tiebreak != "" && tiebreak != o.SortBy {
		b = b.OrderBy(tiebreak)
	}
	if o.Limit > 0 {
		b = b.Limit(uint64(o.Limit)).Offset(uint64(o.Offset()))
	}
	return b
}

// count ejecuta un SELECT count(*) construido con los mismos filtros del listado.
func count(ctx context.Context, db Querier, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int
	if err := db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// ilike patrón de búsqueda parcial sin comodines del usuario.
func ilike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// isNoRow fila inexistente o id con formato inválido para la columna UUID (22P02).
func isNoRow(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
