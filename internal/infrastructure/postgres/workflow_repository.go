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

var (
	_ repository.LeadRepository = (*LeadRepo)(nil)
	_ repository.TaskRepository = (*TaskRepo)(nil)
	_ repository.DealRepository = (*DealRepo)(nil)
)

// exec ejecuta una sentencia de escritura y traduce 0 filas a ErrNotFound.
func exec(ctx context.Context, q Querier, op, query string, args ...any) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- Leads ----

var leadColumns = []string{
	"id::text", "name", "company", "email", "phone", "source", "status",
	"COALESCE(assigned_to::text, '')", "created_by::text", "created_at", "updated_at",
}

// LeadRepo persistencia de leads.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador.
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// Create persiste un lead.
func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO leads (id, name, company, email, phone, source, status, assigned_to, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.Name, l.Company, l.Email, l.Phone, l.Source, l.Status, nullable(l.AssignedTo), l.CreatedBy,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	query, args, err := psql.Select(leadColumns...).From("leads").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lead: %w", err)
	}
	l, err := scanLead(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

// Update guarda los campos editables.
func (r *LeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	return exec(ctx, r.q, "update lead", `
		UPDATE leads SET name = $2, company = $3, email = $4, phone = $5, source = $6, status = $7,
			assigned_to = $8, updated_at = $9
		WHERE id = $1`,
		l.ID, l.Name, l.Company, l.Email, l.Phone, l.Source, l.Status, nullable(l.AssignedTo), l.UpdatedAt,
	)
}

// Delete elimina un lead.
func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.q, "delete lead", `DELETE FROM leads WHERE id = $1`, id)
}

// List listado paginado.
func (r *LeadRepo) List(ctx context.Context, f repository.LeadFilter) ([]entity.Lead, int, error) {
	filter := func(b sq.SelectBuilder) sq.SelectBuilder {
		b = withOwnerScope(b, f.Scope)
		if f.Status != "" {
			b = b.Where(sq.Eq{"status": f.Status})
		}
		if f.Search != "" {
			p := ilike(f.Search)
			b = b.Where(sq.Or{sq.ILike{"name": p}, sq.ILike{"company": p}, sq.ILike{"email": p}})
		}
		return b
	}
	total, err := count(ctx, r.q, filter(psql.Select("count(*)").From("leads")))
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Lead{}, 0, nil
	}
	query, args, err := withPage(filter(psql.Select(leadColumns...).From("leads")), f.ListOptions, "id").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list leads: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Lead, 0, f.Limit)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, *l)
	}
	return list, total, rows.Err()
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	if err := row.Scan(
		&l.ID, &l.Name, &l.Company, &l.Email, &l.Phone, &l.Source, &l.Status,
		&l.AssignedTo, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

// ---- Tasks ----

var taskColumns = []string{
	"id::text", "title", "description", "status", "priority", "due_date", "assigned_to::text", "created_by::text",
	"COALESCE(lead_id::text, '')", "COALESCE(card_code, '')", "COALESCE(approved_by::text, '')",
	"rejection_reason", "completed_at", "created_at", "updated_at",
}

// TaskRepo persistencia de tareas.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

// Create persiste una tarea.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, due_date, assigned_to, created_by,
			lead_id, card_code, approved_by, rejection_reason, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.AssignedTo, t.CreatedBy,
		nullable(t.LeadID), nullable(t.CardCode), nullable(t.ApprovedBy), t.RejectionReason, t.CompletedAt,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	query, args, err := psql.Select(taskColumns...).From("tasks").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get task: %w", err)
	}
	t, err := scanTask(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Update guarda la tarea completa, incluido el estado de aprobación.
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	return exec(ctx, r.q, "update task", `
		UPDATE tasks SET title = $2, description = $3, status = $4, priority = $5, due_date = $6,
			assigned_to = $7, approved_by = $8, rejection_reason = $9, completed_at = $10, updated_at = $11
		WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.AssignedTo,
		nullable(t.ApprovedBy), t.RejectionReason, t.CompletedAt, t.UpdatedAt,
	)
}

// Delete elimina una tarea.
func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.q, "delete task", `DELETE FROM tasks WHERE id = $1`, id)
}

// List listado paginado.
func (r *TaskRepo) List(ctx context.Context, f repository.TaskFilter) ([]entity.Task, int, error) {
	filter := func(b sq.SelectBuilder) sq.SelectBuilder {
		b = withOwnerScope(b, f.Scope)
		if f.Status != "" {
			b = b.Where(sq.Eq{"status": f.Status})
		}
		if f.Priority != "" {
			b = b.Where(sq.Eq{"priority": f.Priority})
		}
		if f.LeadID != "" {
			b = b.Where(sq.Eq{"lead_id": f.LeadID})
		}
		if f.CardCode != "" {
			b = b.Where(sq.Eq{"card_code": f.CardCode})
		}
		return b
	}
	total, err := count(ctx, r.q, filter(psql.Select("count(*)").From("tasks")))
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Task{}, 0, nil
	}
	query, args, err := withPage(filter(psql.Select(taskColumns...).From("tasks")), f.ListOptions, "id").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list tasks: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Task, 0, f.Limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, *t)
	}
	return list, total, rows.Err()
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	if err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.AssignedTo, &t.CreatedBy,
		&t.LeadID, &t.CardCode, &t.ApprovedBy, &t.RejectionReason, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

// ---- Deals ----

var dealColumns = []string{
	"id::text", "title", "COALESCE(card_code, '')", "COALESCE(lead_id::text, '')", "value", "stage",
	"close_date", "assigned_to::text", "created_by::text", "created_at", "updated_at",
}

// DealRepo persistencia de negocios.
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador.
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

// Create persiste un negocio.
func (r *DealRepo) Create(ctx context.Context, d *entity.Deal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO deals (id, title, card_code, lead_id, value, stage, close_date, assigned_to, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.Title, nullable(d.CardCode), nullable(d.LeadID), d.Value, d.Stage, d.CloseDate,
		d.AssignedTo, d.CreatedBy, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *DealRepo) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	query, args, err := psql.Select(dealColumns...).From("deals").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get deal: %w", err)
	}
	d, err := scanDeal(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return d, nil
}

// Update guarda los campos editables.
func (r *DealRepo) Update(ctx context.Context, d *entity.Deal) error {
	return exec(ctx, r.q, "update deal", `
		UPDATE deals SET title = $2, value = $3, stage = $4, close_date = $5, assigned_to = $6, updated_at = $7
		WHERE id = $1`,
		d.ID, d.Title, d.Value, d.Stage, d.CloseDate, d.AssignedTo, d.UpdatedAt,
	)
}

// Delete elimina un negocio.
func (r *DealRepo) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.q, "delete deal", `DELETE FROM deals WHERE id = $1`, id)
}

// List listado paginado.
func (r *DealRepo) List(ctx context.Context, f repository.DealFilter) ([]entity.Deal, int, error) {
	filter := func(b sq.SelectBuilder) sq.SelectBuilder {
		b = withOwnerScope(b, f.Scope)
		if f.Stage != "" {
			b = b.Where(sq.Eq{"stage": f.Stage})
		}
		if f.CardCode != "" {
			b = b.Where(sq.Eq{"card_code": f.CardCode})
		}
		return b
	}
	total, err := count(ctx, r.q, filter(psql.Select("count(*)").From("deals")))
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Deal{}, 0, nil
	}
	query, args, err := withPage(filter(psql.Select(dealColumns...).From("deals")), f.ListOptions, "id").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list deals: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Deal, 0, f.Limit)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, *d)
	}
	return list, total, rows.Err()
}

func scanDeal(row pgx.Row) (*entity.Deal, error) {
	var d entity.Deal
	if err := row.Scan(
		&d.ID, &d.Title, &d.CardCode, &d.LeadID, &d.Value, &d.Stage, &d.CloseDate,
		&d.AssignedTo, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
