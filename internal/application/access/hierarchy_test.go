package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

type fakeUsers struct {
	byManager map[string][]entity.User
	err       error
}

func (f *fakeUsers) Create(context.Context, *entity.User) error { return nil }
func (f *fakeUsers) GetByID(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUsers) ListByManager(_ context.Context, managerID string) ([]entity.User, error) {
	return f.byManager[managerID], f.err
}

func TestAgentsManagedBy_DepthOneIgnoresCycles(t *testing.T) {
	users := &fakeUsers{byManager: map[string][]entity.User{
		// m1 → a1, a2, m1 (auto-referencia); a1 → m1 (ciclo); a2 → a3
		"m1": {{ID: "a1"}, {ID: "a2"}, {ID: "m1"}, {ID: "a1"}},
		"a1": {{ID: "m1"}},
		"a2": {{ID: "a3"}},
	}}
	r := NewResolver(users)

	ids, err := r.AgentsManagedBy(context.Background(), "m1")

	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, ids)
}

func TestScopeFor(t *testing.T) {
	users := &fakeUsers{byManager: map[string][]entity.User{"m1": {{ID: "a1"}}}}
	r := NewResolver(users)
	ctx := context.Background()

	admin, err := r.ScopeFor(ctx, Actor{UserID: "x", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, admin.Unrestricted)

	mgr, err := r.ScopeFor(ctx, Actor{UserID: "m1", Role: entity.RoleManager})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"m1", "a1"}, mgr.UserIDs)
	assert.False(t, mgr.Allows("a3"))

	agent, err := r.ScopeFor(ctx, Actor{UserID: "a1", Role: entity.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, agent.UserIDs)

	_, err = r.ScopeFor(ctx, Actor{UserID: "z", Role: "guest"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCanManageAgent(t *testing.T) {
	users := &fakeUsers{byManager: map[string][]entity.User{"m1": {{ID: "a1"}}}}
	r := NewResolver(users)
	ctx := context.Background()

	assert.NoError(t, r.CanManageAgent(ctx, Actor{UserID: "m1", Role: entity.RoleManager}, "a1"))
	assert.ErrorIs(t, r.CanManageAgent(ctx, Actor{UserID: "m1", Role: entity.RoleManager}, "a9"), domain.ErrForbidden)
	assert.ErrorIs(t, r.CanManageAgent(ctx, Actor{UserID: "a1", Role: entity.RoleAgent}, "a2"), domain.ErrForbidden)
	assert.NoError(t, r.CanManageAgent(ctx, Actor{UserID: "a1", Role: entity.RoleAgent}, "a1"))
	assert.NoError(t, r.CanManageAgent(ctx, Actor{UserID: "root", Role: entity.RoleAdmin}, "a1"))
}

func TestAgentsManagedBy_PropagatesError(t *testing.T) {
	r := NewResolver(&fakeUsers{err: errors.New("db down")})
	_, err := r.AgentsManagedBy(context.Background(), "m1")
	assert.Error(t, err)
}
