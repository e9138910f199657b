package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
)

func TestAuthService_CheckAuth_Authenticated(t *testing.T) {
	api := newFakeHTTPClient()
	api.responses["/api/check-auth"] = `{"authenticated":true,"user":{"id":3,"nama":"Budi","role":"murid"}}`
	svc := NewAuthService(api)

	user, err := svc.CheckAuth(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entities.RoleMurid, user.Role)
}

func TestAuthService_CheckAuth_NotAuthenticated(t *testing.T) {
	api := newFakeHTTPClient()
	api.responses["/api/check-auth"] = `{"authenticated":false}`
	svc := NewAuthService(api)

	user, err := svc.CheckAuth(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthService_Login(t *testing.T) {
	api := newFakeHTTPClient()
	api.responses["/api/auth/login"] = `{"user":{"id":7,"nama":"Bu Sari","role":"guru"}}`
	svc := NewAuthService(api)

	user, err := svc.Login(context.Background(), entities.LoginRequest{
		Email:    "sari@sekolah.id",
		Password: "rahasia",
		Role:     entities.RoleGuru,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	call := api.lastCall(t)
	assert.Equal(t, "POST", call.method)
	assert.Equal(t, "/api/auth/login", call.path)
}

func TestAuthService_Login_MissingUser(t *testing.T) {
	api := newFakeHTTPClient()
	api.responses["/api/auth/login"] = `{}`
	svc := NewAuthService(api)

	user, err := svc.Login(context.Background(), entities.LoginRequest{})
	assert.ErrorIs(t, err, ErrNoUserInResponse)
	assert.Nil(t, user)
}

func TestAuthService_Logout(t *testing.T) {
	api := newFakeHTTPClient()
	svc := NewAuthService(api)

	require.NoError(t, svc.Logout(context.Background()))

	call := api.lastCall(t)
	assert.Equal(t, "POST", call.method)
	assert.Equal(t, "/api/auth/logout", call.path)
}

func TestAuthService_Register(t *testing.T) {
	api := newFakeHTTPClient()
	svc := NewAuthService(api)

	err := svc.Register(context.Background(), entities.RegisterRequest{
		Nama:     "Budi",
		Kelas:    "10A",
		Email:    "budi@sekolah.id",
		Password: "rahasia",
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/register", api.lastCall(t).path)
}
