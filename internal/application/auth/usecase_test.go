package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
)

type memUsers struct{ users map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.users[id], nil
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) ListByManager(context.Context, string) ([]entity.User, error) { return nil, nil }

const testSecret = "test-secret"

func newAuth() (*AuthUseCase, *memUsers) {
	repo := &memUsers{users: map[string]*entity.User{
		"m1": {ID: "m1", Email: "jefe@ventas.co", Role: entity.RoleManager, Status: entity.UserStatusActive},
		"a9": {ID: "a9", Email: "agente@ventas.co", Role: entity.RoleAgent, Status: entity.UserStatusActive},
	}}
	return NewAuthUseCase(repo, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "ventas-api"}), repo
}

func TestRegisterThenLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "Nuevo@Ventas.co", Password: "supersecreta", Role: entity.RoleAgent, ManagerID: "m1",
	})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@ventas.co", user.Email)
	assert.Equal(t, "m1", user.ManagerID)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "nuevo@ventas.co", Password: "supersecreta"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleAgent, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nuevo@ventas.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_Rejections(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "jefe@ventas.co", Password: "12345678", Role: entity.RoleAgent})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@ventas.co", Password: "12345678", Role: entity.RoleAgent, ManagerID: "a9"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_InactiveUser(t *testing.T) {
	uc, repo := newAuth()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave1234"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["off"] = &entity.User{ID: "off", Email: "off@ventas.co", PasswordHash: string(hash), Status: entity.UserStatusInactive}

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "off@ventas.co", Password: "clave1234"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@ventas.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
