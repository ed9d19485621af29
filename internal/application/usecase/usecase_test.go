package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

type stubUsers struct{ users []entity.User }

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i], nil
		}
	}
	return nil, nil
}
func (s *stubUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUsers) ListByManager(_ context.Context, managerID string) ([]entity.User, error) {
	var out []entity.User
	for _, u := range s.users {
		if u.ManagerID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubCustomers struct {
	rows   []entity.Customer
	filter repository.CustomerFilter
}

func (s *stubCustomers) Create(context.Context, *entity.Customer) error { return nil }
func (s *stubCustomers) GetByCode(_ context.Context, code string) (*entity.Customer, error) {
	for i := range s.rows {
		if s.rows[i].CardCode == code {
			return &s.rows[i], nil
		}
	}
	return nil, nil
}
func (s *stubCustomers) List(_ context.Context, f repository.CustomerFilter) ([]entity.Customer, int, error) {
	s.filter = f
	var out []entity.Customer
	for _, c := range s.rows {
		if f.Scope.Allows(c.AssignedTo) {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}
func (s *stubCustomers) ListByScope(context.Context, repository.Scope) ([]entity.Customer, error) {
	return s.rows, nil
}
func (s *stubCustomers) ListByAssignee(context.Context, string) ([]entity.Customer, error) {
	return nil, nil
}

func fixtures() (*stubUsers, *stubCustomers) {
	users := &stubUsers{users: []entity.User{
		{ID: "m1", Role: entity.RoleManager, Status: entity.UserStatusActive},
		{ID: "a1", Role: entity.RoleAgent, Status: entity.UserStatusActive, ManagerID: "m1"},
		{ID: "a2", Role: entity.RoleAgent, Status: entity.UserStatusActive},
	}}
	customers := &stubCustomers{rows: []entity.Customer{
		{CardCode: "C1", Name: "Uno", AssignedTo: "a1"},
		{CardCode: "C2", Name: "Dos", AssignedTo: "a2"},
	}}
	return users, customers
}

func TestCustomerUseCase_ScopedListAndGet(t *testing.T) {
	users, customers := fixtures()
	uc := NewCustomerUseCase(customers, access.NewResolver(users))
	ctx := context.Background()
	mgr := access.Actor{UserID: "m1", Role: entity.RoleManager}

	list, page, err := uc.List(ctx, mgr, dto.CustomerListRequest{PageRequest: dto.PageRequest{Page: 1, Limit: 20}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "C1", list[0].CardCode)
	assert.Equal(t, 1, page.TotalItems)
	assert.Equal(t, "name", customers.filter.SortBy)

	_, err = uc.Get(ctx, mgr, "C2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Get(ctx, mgr, "C404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_Agents(t *testing.T) {
	users, _ := fixtures()
	uc := NewUserUseCase(users, access.NewResolver(users))
	ctx := context.Background()

	agents, err := uc.Agents(ctx, access.Actor{UserID: "m1", Role: entity.RoleManager}, "m1")
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "a1", agents[0].ID)

	_, err = uc.Agents(ctx, access.Actor{UserID: "a2", Role: entity.RoleAgent}, "m1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	me, err := uc.Me(ctx, access.Actor{UserID: "a1", Role: entity.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, "m1", me.ManagerID)
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), r.To)

	r, err = ParseDateRange("", "")
	require.NoError(t, err)
	assert.True(t, r.From.IsZero())
	assert.True(t, r.To.IsZero())

	_, err = ParseDateRange("2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = ParseDateRange("01/02/2024", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
