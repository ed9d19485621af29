package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

var customerColumns = []string{
	"card_code", "name", "COALESCE(assigned_to::text, '')", "status", "email", "phone", "created_at", "updated_at",
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (card_code, name, assigned_to, status, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		customer.CardCode, customer.Name, nullable(customer.AssignedTo), customer.Status,
		customer.Email, customer.Phone, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByCode obtiene un cliente por CardCode.
func (r *CustomerRepo) GetByCode(ctx context.Context, cardCode string) (*entity.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From("customers").
		Where(sq.Eq{"card_code": cardCode}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get customer: %w", err)
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List listado paginado con filtros.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]entity.Customer, int, error) {
	total, err := count(ctx, r.q, r.filter(psql.Select("count(*)").From("customers"), f))
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Customer{}, 0, nil
	}
	b := withPage(r.filter(psql.Select(customerColumns...).From("customers"), f), f.ListOptions, "card_code")
	list, err := r.query(ctx, b)
	return list, total, err
}

// ListByScope devuelve todos los clientes visibles.
func (r *CustomerRepo) ListByScope(ctx context.Context, scope repository.Scope) ([]entity.Customer, error) {
	b := withScope(psql.Select(customerColumns...).From("customers"), "assigned_to", scope).OrderBy("card_code")
	return r.query(ctx, b)
}

// ListByAssignee clientes asignados a un usuario.
func (r *CustomerRepo) ListByAssignee(ctx context.Context, userID string) ([]entity.Customer, error) {
	b := psql.Select(customerColumns...).From("customers").Where(sq.Eq{"assigned_to": userID}).OrderBy("card_code")
	return r.query(ctx, b)
}

func (r *CustomerRepo) filter(b sq.SelectBuilder, f repository.CustomerFilter) sq.SelectBuilder {
	b = withScope(b, "assigned_to", f.Scope)
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.Search != "" {
		p := ilike(f.Search)
		b = b.Where(sq.Or{sq.ILike{"name": p}, sq.ILike{"card_code": p}})
	}
	return b
}

func (r *CustomerRepo) query(ctx context.Context, b sq.SelectBuilder) ([]entity.Customer, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list customers: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(
		&c.CardCode, &c.Name, &c.AssignedTo, &c.Status, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
