package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type memUsers struct{ rows []entity.User }

func (m *memUsers) Create(context.Context, *entity.User) error { return nil }
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			return &m.rows[i], nil
		}
	}
	return nil, nil
}
func (m *memUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (m *memUsers) ListByManager(_ context.Context, managerID string) ([]entity.User, error) {
	var out []entity.User
	for _, u := range m.rows {
		if u.ManagerID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

type memCustomers struct{ rows []entity.Customer }

func (m *memCustomers) Create(context.Context, *entity.Customer) error { return nil }
func (m *memCustomers) GetByCode(_ context.Context, code string) (*entity.Customer, error) {
	for i := range m.rows {
		if m.rows[i].CardCode == code {
			return &m.rows[i], nil
		}
	}
	return nil, nil
}
func (m *memCustomers) List(_ context.Context, f repository.CustomerFilter) ([]entity.Customer, int, error) {
	var out []entity.Customer
	for _, c := range m.rows {
		if f.Scope.Allows(c.AssignedTo) {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}
func (m *memCustomers) ListByScope(context.Context, repository.Scope) ([]entity.Customer, error) {
	return m.rows, nil
}
func (m *memCustomers) ListByAssignee(context.Context, string) ([]entity.Customer, error) {
	return nil, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	users := &memUsers{rows: []entity.User{
		{ID: "admin", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
		{ID: "m1", Role: entity.RoleManager, Status: entity.UserStatusActive},
		{ID: "a1", Role: entity.RoleAgent, Status: entity.UserStatusActive, ManagerID: "m1"},
		{ID: "a2", Role: entity.RoleAgent, Status: entity.UserStatusActive},
	}}
	customers := &memCustomers{rows: []entity.Customer{
		{CardCode: "C1", Name: "Uno", AssignedTo: "a1", Status: entity.CustomerStatusActive},
		{CardCode: "C2", Name: "Dos", AssignedTo: "a2", Status: entity.CustomerStatusActive},
	}}
	resolver := access.NewResolver(users)

	log := logger.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log, false)})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		UserUC:     usecase.NewUserUseCase(users, resolver),
		CustomerUC: usecase.NewCustomerUseCase(customers, resolver),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, dto.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out dto.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	status, body := call(t, newTestServer(t), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)
}

func TestCustomers_ListScopedAndPaged(t *testing.T) {
	app := newTestServer(t)

	status, body := call(t, app, http.MethodGet, "/api/customers?page=1&limit=10", tokenFor(t, "a1", "agent"), "")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 1, body.Pagination.TotalItems)
	assert.Equal(t, 10, body.Pagination.Limit)
	assert.False(t, body.Pagination.HasNextPage)

	items, ok := body.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "C1", items[0].(map[string]interface{})["cardCode"])
}

func TestCustomers_PaginationOutOfRange(t *testing.T) {
	app := newTestServer(t)
	tok := tokenFor(t, "admin", "admin")

	for _, q := range []string{"limit=0", "limit=101", "page=0", "sortOrder=sideways"} {
		status, body := call(t, app, http.MethodGet, "/api/customers?"+q, tok, "")
		assert.Equal(t, http.StatusBadRequest, status, q)
		assert.Equal(t, "VALIDATION", body.Code, q)
		assert.False(t, body.Success)
	}
}

func TestCustomers_UnknownSortField(t *testing.T) {
	status, body := call(t, newTestServer(t), http.MethodGet, "/api/customers?sortBy=password", tokenFor(t, "admin", "admin"), "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestCustomers_GetOutsideScope(t *testing.T) {
	app := newTestServer(t)

	status, body := call(t, app, http.MethodGet, "/api/customers/C2", tokenFor(t, "a1", "agent"), "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.Code)

	// el gerente de a1 sí lo ve
	status, _ = call(t, app, http.MethodGet, "/api/customers/C1", tokenFor(t, "m1", "manager"), "")
	assert.Equal(t, http.StatusOK, status)

	status, body = call(t, app, http.MethodGet, "/api/customers/NOPE", tokenFor(t, "admin", "admin"), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestUsers_AgentsRequiresManager(t *testing.T) {
	app := newTestServer(t)

	status, _ := call(t, app, http.MethodGet, "/api/users/m1/agents", tokenFor(t, "a1", "agent"), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, body := call(t, app, http.MethodGet, "/api/users/m1/agents", tokenFor(t, "m1", "manager"), "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body.Data, 1)
}

func TestAuth_LoginUnknownEmailIs401(t *testing.T) {
	status, body := call(t, newTestServer(t), http.MethodPost, "/api/auth/login", "",
		`{"email":"nadie@example.com","password":"secreta123"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

func TestAuth_LoginValidation(t *testing.T) {
	status, body := call(t, newTestServer(t), http.MethodPost, "/api/auth/login", "", `{"email":"no-es-email"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Error, "Email")
	assert.Contains(t, body.Error, "Password")
}

func TestAuth_RegisterIsAdminOnly(t *testing.T) {
	status, _ := call(t, newTestServer(t), http.MethodPost, "/api/auth/register", tokenFor(t, "m1", "manager"),
		`{"email":"x@example.com","password":"secreta123","role":"agent"}`)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidTransition, http.StatusBadRequest, "INVALID_TRANSITION"},
		{domain.ErrInvalidAssignee, http.StatusBadRequest, "INVALID_ASSIGNEE"},
		{domain.ErrImportInProgress, http.StatusConflict, "IMPORT_IN_PROGRESS"},
		{domain.ErrUserNotFound, http.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.Join(errors.New("tarea t1"), domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fiber.ErrRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "TOO_LARGE"},
	}
	for _, tc := range cases {
		app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop(), true)})
		err := tc.err
		app.Get("/", func(*fiber.Ctx) error { return err })

		status, body := call(t, app, http.MethodGet, "/", "", "")
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, body.Code)
	}
}

func TestErrorHandler_InternalDetailHiddenInProduction(t *testing.T) {
	boom := errors.New("pq: relation does not exist")
	for _, production := range []bool{true, false} {
		app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop(), production)})
		app.Get("/", func(*fiber.Ctx) error { return boom })

		status, body := call(t, app, http.MethodGet, "/", "", "")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "INTERNAL", body.Code)
		if production {
			assert.Empty(t, body.Error)
		} else {
			assert.Equal(t, boom.Error(), body.Error)
		}
	}
}
