package auth

import (
	"context"
	"testing"
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/auth"
	"github.com/peoplekit/payroll-backend-go/internal/domain/user"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) LinkEmployee(ctx context.Context, id string, employeeID string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.EmployeeID = &employeeID
	f.users[id] = u
	return nil
}

type fakeJWTRepo struct {
	tokens  map[string]int64
	revoked map[string]bool
}

func newFakeJWTRepo() *fakeJWTRepo {
	return &fakeJWTRepo{tokens: make(map[string]int64), revoked: make(map[string]bool)}
}

func (f *fakeJWTRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	f.tokens[token] = expiresAt
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	expiresAt, ok := f.tokens[token]
	if !ok {
		// Unknown tokens are treated as revoked.
		return true, nil
	}
	if f.revoked[token] {
		return true, nil
	}
	return time.Now().Unix() > expiresAt, nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func testUser(t *testing.T, password string) user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return user.User{
		ID:           "user-1",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		FullName:     "Test Admin",
		Role:         user.RoleAdmin,
		IsActive:     true,
	}
}

func newTestService(t *testing.T, u user.User) (auth.Service, *fakeJWTRepo) {
	jwtRepo := newFakeJWTRepo()
	jwtSvc := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(nil, newFakeUserRepo(u), jwtSvc, jwtRepo), jwtRepo
}

func TestAuthService_Login(t *testing.T) {
	svc, jwtRepo := newTestService(t, testUser(t, "password123"))

	res, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Greater(t, res.ExpiresAt, time.Now().Unix())
	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, "admin", res.User.Role)

	// The refresh token was persisted.
	revoked, err := jwtRepo.IsRefreshTokenRevoked(context.Background(), res.RefreshToken)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t, testUser(t, "password123"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown email maps to the same error as a bad password.
	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	u := testUser(t, "password123")
	u.IsActive = false
	svc, _ := newTestService(t, u)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newTestService(t, testUser(t, "password123"))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	res, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	svc, jwtRepo := newTestService(t, testUser(t, "password123"))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	revoked, err := jwtRepo.IsRefreshTokenRevoked(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
