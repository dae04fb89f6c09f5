package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/CbIpok/energos/internal/domain"
	"github.com/CbIpok/energos/internal/repository"
)

type fakeAdminRepo struct {
	admins map[string]domain.Admin
}

func newFakeAdminRepo(t *testing.T, username, password string) *fakeAdminRepo {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &fakeAdminRepo{
		admins: map[string]domain.Admin{
			username: {ID: 1, Username: username, PasswordHash: string(hash)},
		},
	}
}

func (f *fakeAdminRepo) FindByUsername(_ context.Context, username string) (domain.Admin, error) {
	admin, ok := f.admins[username]
	if !ok {
		return domain.Admin{}, repository.ErrAdminNotFound
	}

	return admin, nil
}

func (f *fakeAdminRepo) UpdatePasswordHash(_ context.Context, username, passwordHash string) error {
	admin, ok := f.admins[username]
	if !ok {
		return repository.ErrAdminNotFound
	}

	admin.PasswordHash = passwordHash
	f.admins[username] = admin

	return nil
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeAdminRepo(t, "admin", "admin")
	svc := NewAuthService(repo)

	admin, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newFakeAdminRepo(t, "admin", "admin")
	svc := NewAuthService(repo)

	_, err := svc.Login(context.Background(), "admin", "nope")
	assert.True(t, errors.Is(err, ErrWrongPassword))
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newFakeAdminRepo(t, "admin", "admin")
	svc := NewAuthService(repo)

	_, err := svc.Login(context.Background(), "ghost", "admin")
	assert.True(t, errors.Is(err, ErrAdminNotFound))
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newFakeAdminRepo(t, "admin", "admin")
	svc := NewAuthService(repo)

	err := svc.ChangePassword(context.Background(), "admin", "admin", "newpass123")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "admin", "admin")
	assert.True(t, errors.Is(err, ErrWrongPassword))

	_, err = svc.Login(context.Background(), "admin", "newpass123")
	assert.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := newFakeAdminRepo(t, "admin", "admin")
	svc := NewAuthService(repo)

	err := svc.ChangePassword(context.Background(), "admin", "nope", "newpass123")
	assert.True(t, errors.Is(err, ErrWrongPassword))

	_, err = svc.Login(context.Background(), "admin", "admin")
	assert.NoError(t, err)
}
