package services_test

import (
	"context"
	"testing"

	"storefront/models"
	"storefront/repository"
	"storefront/services"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUserRepo struct {
	users map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrDuplicate
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

const testJWTSecret = "test-secret"

func newAuthService(repo repository.UserRepository) services.AuthService {
	logger, _ := zap.NewDevelopment()
	return services.NewAuthService(repo, testJWTSecret, logger)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	user, serviceErr := svc.Register(context.Background(), &models.RegisterRequest{
		Email:     "ana@example.com",
		Password:  "hunter2hunter2",
		FirstName: "Ana",
	})
	require.Nil(t, serviceErr)
	assert.Equal(t, "customer", user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
}

func TestRegisterDuplicateEmailReturns409(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	req := &models.RegisterRequest{Email: "dup@example.com", Password: "hunter2hunter2", FirstName: "Dup"}
	_, serviceErr := svc.Register(context.Background(), req)
	require.Nil(t, serviceErr)

	_, serviceErr = svc.Register(context.Background(), req)
	require.NotNil(t, serviceErr)
	assert.Equal(t, 409, serviceErr.StatusCode)
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	registered, serviceErr := svc.Register(context.Background(), &models.RegisterRequest{
		Email:     "bo@example.com",
		Password:  "hunter2hunter2",
		FirstName: "Bo",
	})
	require.Nil(t, serviceErr)

	resp, serviceErr := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "bo@example.com",
		Password: "hunter2hunter2",
	})
	require.Nil(t, serviceErr)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, registered.ID.String(), claims["user_id"])
	assert.Equal(t, "customer", claims["role"])
}

func TestLoginWrongPasswordReturns401(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	_, serviceErr := svc.Register(context.Background(), &models.RegisterRequest{
		Email:     "cy@example.com",
		Password:  "hunter2hunter2",
		FirstName: "Cy",
	})
	require.Nil(t, serviceErr)

	_, serviceErr = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "cy@example.com",
		Password: "wrong-password",
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 401, serviceErr.StatusCode)
	assert.Equal(t, "Invalid email or password", serviceErr.Message)
}

func TestLoginUnknownEmailReturns401(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	_, serviceErr := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, 401, serviceErr.StatusCode)
}
