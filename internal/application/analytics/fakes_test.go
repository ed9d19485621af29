package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

var (
	testNow = time.Date(2026, time.October, 15, 14, 30, 0, 0, time.UTC)
	errRepo = errors.New("conexión cerrada")
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func money(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// ── usuarios: m1 gestiona a a1; a2 no tiene gerente ────────────────────────

type fakeUsers struct{ rows []entity.User }

func (f *fakeUsers) Create(context.Context, *entity.User) error { return nil }
func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, nil
}
func (f *fakeUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (f *fakeUsers) ListByManager(_ context.Context, managerID string) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.rows {
		if u.ManagerID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func team() *fakeUsers {
	return &fakeUsers{rows: []entity.User{
		{ID: "adm", Name: "Admin", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
		{ID: "m1", Name: "Marta", Role: entity.RoleManager, Status: entity.UserStatusActive},
		{ID: "a1", Name: "Andrés", Role: entity.RoleAgent, Status: entity.UserStatusActive, ManagerID: "m1"},
		{ID: "a2", Name: "Beatriz", Role: entity.RoleAgent, Status: entity.UserStatusActive},
	}}
}

var (
	admin   = access.Actor{UserID: "adm", Role: entity.RoleAdmin}
	manager = access.Actor{UserID: "m1", Role: entity.RoleManager}
	agentA1 = access.Actor{UserID: "a1", Role: entity.RoleAgent}
	agentA2 = access.Actor{UserID: "a2", Role: entity.RoleAgent}
)

// ── clientes ───────────────────────────────────────────────────────────────

type fakeCustomers struct{ rows []entity.Customer }

func (f *fakeCustomers) Create(context.Context, *entity.Customer) error { return nil }
func (f *fakeCustomers) GetByCode(_ context.Context, code string) (*entity.Customer, error) {
	for i := range f.rows {
		if f.rows[i].CardCode == code {
			return &f.rows[i], nil
		}
	}
	return nil, nil
}
func (f *fakeCustomers) List(context.Context, repository.CustomerFilter) ([]entity.Customer, int, error) {
	return f.rows, len(f.rows), nil
}
func (f *fakeCustomers) ListByScope(_ context.Context, scope repository.Scope) ([]entity.Customer, error) {
	var out []entity.Customer
	for _, c := range f.rows {
		if scope.Allows(c.AssignedTo) {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCustomers) ListByAssignee(_ context.Context, userID string) ([]entity.Customer, error) {
	var out []entity.Customer
	for _, c := range f.rows {
		if c.AssignedTo == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ── facturas, pagos, pedidos, cotizaciones, llamadas ──────────────────────

type fakeInvoices struct {
	rows      []entity.Invoice
	err       error
	lastRange repository.DateRange
}

func (f *fakeInvoices) CreateBatch(context.Context, []entity.Invoice) error { return nil }
func (f *fakeInvoices) ExistingDocEntries(context.Context, []int64) (map[int64]bool, error) {
	return map[int64]bool{}, nil
}
func (f *fakeInvoices) ListByCustomers(_ context.Context, codes []string, r repository.DateRange) ([]entity.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastRange = r
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	var out []entity.Invoice
	for _, inv := range f.rows {
		if want[inv.CardCode] {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (f *fakeInvoices) ListWithLines(ctx context.Context, code string, r repository.DateRange) ([]entity.Invoice, error) {
	return f.ListByCustomers(ctx, []string{code}, r)
}
func (f *fakeInvoices) List(context.Context, repository.DocumentFilter) ([]entity.Invoice, int, error) {
	return nil, 0, nil
}

type fakePayments struct {
	rows      []entity.Payment
	links     []entity.PaymentLink
	lastRange repository.DateRange
}

func (f *fakePayments) ListByCustomers(_ context.Context, codes []string, r repository.DateRange) ([]entity.Payment, error) {
	f.lastRange = r
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	var out []entity.Payment
	for _, p := range f.rows {
		if want[p.CardCode] {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakePayments) LinksByCustomer(context.Context, string, repository.DateRange) ([]entity.PaymentLink, error) {
	return f.links, nil
}
func (f *fakePayments) List(context.Context, repository.DocumentFilter) ([]entity.Payment, int, error) {
	return nil, 0, nil
}

type fakeOrders struct{ rows []entity.SalesOrder }

func (f *fakeOrders) ListByCustomers(context.Context, []string, repository.DateRange) ([]entity.SalesOrder, error) {
	return f.rows, nil
}

type fakeQuotations struct{ rows []entity.Quotation }

func (f *fakeQuotations) Create(context.Context, *entity.Quotation) error { return nil }
func (f *fakeQuotations) GetByID(context.Context, string) (*entity.Quotation, error) {
	return nil, nil
}
func (f *fakeQuotations) Update(context.Context, *entity.Quotation) error { return nil }
func (f *fakeQuotations) List(context.Context, repository.QuotationFilter) ([]entity.Quotation, int, error) {
	return f.rows, len(f.rows), nil
}
func (f *fakeQuotations) ListByCreator(_ context.Context, userID string, _ repository.DateRange) ([]entity.Quotation, error) {
	var out []entity.Quotation
	for _, q := range f.rows {
		if q.CreatedBy == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeCalls struct{ rows []entity.Call }

func (f *fakeCalls) ListByAgent(_ context.Context, agentID string, _ repository.DateRange) ([]entity.Call, error) {
	var out []entity.Call
	for _, c := range f.rows {
		if c.AgentID == agentID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ── analítica agregada ────────────────────────────────────────────────────

type metricsCall struct {
	scope      repository.Scope
	start, end time.Time
}

type fakeAnalytics struct {
	today, month metricsCall
	calls        int
	top          []repository.CustomerSalesResult
	workload     repository.WorkloadResult
	err          error
}

func (f *fakeAnalytics) GetSalesMetrics(_ context.Context, scope repository.Scope, start, end time.Time) (decimal.Decimal, int, error) {
	if f.err != nil {
		return decimal.Zero, 0, f.err
	}
	// testNow cae el día 15: solo la consulta del mes arranca el día 1
	if start.Day() == 1 {
		f.month = metricsCall{scope, start, end}
		return money("1000"), 4, nil
	}
	f.today = metricsCall{scope, start, end}
	return money("250"), 1, nil
}
func (f *fakeAnalytics) GetTopCustomers(context.Context, repository.Scope, time.Time, time.Time, int) ([]repository.CustomerSalesResult, error) {
	return f.top, nil
}
func (f *fakeAnalytics) GetWorkload(context.Context, repository.Scope, time.Time) (repository.WorkloadResult, error) {
	return f.workload, nil
}

// ── renderer de estado de cuenta ──────────────────────────────────────────

type fakeRenderer struct {
	customer *entity.Customer
	journey  *dto.JourneyResponse
}

func (f *fakeRenderer) RenderStatement(c *entity.Customer, j *dto.JourneyResponse) ([]byte, error) {
	f.customer, f.journey = c, j
	return []byte("%PDF-1.4"), nil
}

func testEngine() *scoring.Engine {
	return scoring.NewEngine(scoring.DefaultPolicy(), scoring.FixedClock(testNow))
}

// portfolio: C1 de a1 (con compras y pagos), C2 de a2, C3 de a1 sin compras.
func portfolio() (*fakeCustomers, *fakeInvoices, *fakePayments) {
	customers := &fakeCustomers{rows: []entity.Customer{
		{CardCode: "C1", Name: "Ferretería Uno", AssignedTo: "a1", Status: entity.CustomerStatusActive},
		{CardCode: "C2", Name: "Distribuidora Dos", AssignedTo: "a2", Status: entity.CustomerStatusActive},
		{CardCode: "C3", Name: "Tres Hermanos", AssignedTo: "a1", Status: entity.CustomerStatusActive},
	}}
	invoices := &fakeInvoices{rows: []entity.Invoice{
		{DocEntry: 1, DocNum: 101, CardCode: "C1", DocDate: day(2026, time.July, 1), DocTotal: money("1190"), VatSum: money("190"), PaidToDate: money("1190")},
		{DocEntry: 2, DocNum: 102, CardCode: "C1", DocDate: day(2026, time.August, 1), DocTotal: money("1190"), VatSum: money("190"), PaidToDate: money("1190")},
		{DocEntry: 3, DocNum: 103, CardCode: "C1", DocDate: day(2026, time.September, 1), DocTotal: money("1190"), VatSum: money("190")},
		{DocEntry: 4, DocNum: 104, CardCode: "C2", DocDate: day(2025, time.March, 10), DocTotal: money("500"), VatSum: money("0")},
	}}
	payments := &fakePayments{
		rows: []entity.Payment{
			{DocEntry: 11, DocNum: 501, CardCode: "C1", DocDate: day(2026, time.July, 20), TransferSum: money("1190")},
			{DocEntry: 12, DocNum: 502, CardCode: "C1", DocDate: day(2026, time.August, 25), CashSum: money("1190")},
		},
		links: []entity.PaymentLink{
			{PaymentDocEntry: 11, InvoiceDocEntry: 1, PaymentDate: day(2026, time.July, 20), InvoiceDate: day(2026, time.July, 1), AppliedAmount: money("1190")},
			{PaymentDocEntry: 12, InvoiceDocEntry: 2, PaymentDate: day(2026, time.August, 25), InvoiceDate: day(2026, time.August, 1), AppliedAmount: money("1190")},
		},
	}
	return customers, invoices, payments
}
