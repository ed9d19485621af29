package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

var testNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

// Jerarquía de prueba: m1 gestiona a1 y a2; m2 gestiona a3; admin sin jefe.
var testUsers = []entity.User{
	{ID: "admin", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
	{ID: "m1", Role: entity.RoleManager, Status: entity.UserStatusActive},
	{ID: "m2", Role: entity.RoleManager, Status: entity.UserStatusActive},
	{ID: "a1", Role: entity.RoleAgent, Status: entity.UserStatusActive, ManagerID: "m1"},
	{ID: "a2", Role: entity.RoleAgent, Status: entity.UserStatusActive, ManagerID: "m1"},
	{ID: "a3", Role: entity.RoleAgent, Status: entity.UserStatusActive, ManagerID: "m2"},
	{ID: "gone", Role: entity.RoleAgent, Status: entity.UserStatusInactive, ManagerID: "m1"},
}

type fakeUsers struct{ users []entity.User }

func (f *fakeUsers) Create(context.Context, *entity.User) error { return nil }
func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}
func (f *fakeUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (f *fakeUsers) ListByManager(_ context.Context, managerID string) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.users {
		if u.ManagerID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Notify(_ context.Context, e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) types() []string {
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

func newDeps() (Deps, *recordingNotifier) {
	users := &fakeUsers{users: testUsers}
	n := &recordingNotifier{}
	return Deps{
		Users:    users,
		Access:   access.NewResolver(users),
		Notifier: n,
		Clock:    scoring.FixedClock(testNow),
	}, n
}

func actor(id, role string) access.Actor { return access.Actor{UserID: id, Role: role} }

type fakeTasks struct {
	byID    map[string]*entity.Task
	filters []repository.TaskFilter
}

func newFakeTasks() *fakeTasks { return &fakeTasks{byID: map[string]*entity.Task{}} }

func (f *fakeTasks) Create(_ context.Context, t *entity.Task) error {
	c := *t
	f.byID[t.ID] = &c
	return nil
}
func (f *fakeTasks) GetByID(_ context.Context, id string) (*entity.Task, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}
func (f *fakeTasks) Update(_ context.Context, t *entity.Task) error {
	c := *t
	f.byID[t.ID] = &c
	return nil
}
func (f *fakeTasks) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}
func (f *fakeTasks) List(_ context.Context, filter repository.TaskFilter) ([]entity.Task, int, error) {
	f.filters = append(f.filters, filter)
	var out []entity.Task
	for _, t := range f.byID {
		if filter.Scope.Allows(t.AssignedTo) {
			out = append(out, *t)
		}
	}
	return out, len(out), nil
}

type fakeLeads struct{ byID map[string]*entity.Lead }

func newFakeLeads() *fakeLeads { return &fakeLeads{byID: map[string]*entity.Lead{}} }

func (f *fakeLeads) Create(_ context.Context, l *entity.Lead) error {
	c := *l
	f.byID[l.ID] = &c
	return nil
}
func (f *fakeLeads) GetByID(_ context.Context, id string) (*entity.Lead, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}
func (f *fakeLeads) Update(_ context.Context, l *entity.Lead) error {
	c := *l
	f.byID[l.ID] = &c
	return nil
}
func (f *fakeLeads) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}
func (f *fakeLeads) List(context.Context, repository.LeadFilter) ([]entity.Lead, int, error) {
	return nil, 0, nil
}

type fakeDeals struct{ byID map[string]*entity.Deal }

func newFakeDeals() *fakeDeals { return &fakeDeals{byID: map[string]*entity.Deal{}} }

func (f *fakeDeals) Create(_ context.Context, d *entity.Deal) error {
	c := *d
	f.byID[d.ID] = &c
	return nil
}
func (f *fakeDeals) GetByID(_ context.Context, id string) (*entity.Deal, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}
func (f *fakeDeals) Update(_ context.Context, d *entity.Deal) error {
	c := *d
	f.byID[d.ID] = &c
	return nil
}
func (f *fakeDeals) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}
func (f *fakeDeals) List(context.Context, repository.DealFilter) ([]entity.Deal, int, error) {
	return nil, 0, nil
}

type fakeQuotations struct{ byID map[string]*entity.Quotation }

func newFakeQuotations() *fakeQuotations {
	return &fakeQuotations{byID: map[string]*entity.Quotation{}}
}

func (f *fakeQuotations) Create(_ context.Context, q *entity.Quotation) error {
	c := *q
	f.byID[q.ID] = &c
	return nil
}
func (f *fakeQuotations) GetByID(_ context.Context, id string) (*entity.Quotation, error) {
	q, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *q
	return &c, nil
}
func (f *fakeQuotations) Update(_ context.Context, q *entity.Quotation) error {
	c := *q
	f.byID[q.ID] = &c
	return nil
}
func (f *fakeQuotations) List(context.Context, repository.QuotationFilter) ([]entity.Quotation, int, error) {
	return nil, 0, nil
}
func (f *fakeQuotations) ListByCreator(context.Context, string, repository.DateRange) ([]entity.Quotation, error) {
	return nil, nil
}

type fakeCustomers struct{ byCode map[string]entity.Customer }

func (f *fakeCustomers) Create(context.Context, *entity.Customer) error { return nil }
func (f *fakeCustomers) GetByCode(_ context.Context, code string) (*entity.Customer, error) {
	c, ok := f.byCode[code]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
func (f *fakeCustomers) List(context.Context, repository.CustomerFilter) ([]entity.Customer, int, error) {
	return nil, 0, nil
}
func (f *fakeCustomers) ListByScope(context.Context, repository.Scope) ([]entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomers) ListByAssignee(context.Context, string) ([]entity.Customer, error) {
	return nil, nil
}
