package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
	"github.com/belajarku/belajarku-bot/internal/session"
)

type fakeAuthAPI struct {
	checkAuthFn func(ctx context.Context) (*entities.User, error)
	loginFn     func(ctx context.Context, creds entities.LoginRequest) (*entities.User, error)
	logoutFn    func(ctx context.Context) error
	registerFn  func(ctx context.Context, data entities.RegisterRequest) error

	checkAuthCalls int
	registerCalls  int
}

func (f *fakeAuthAPI) CheckAuth(ctx context.Context) (*entities.User, error) {
	f.checkAuthCalls++
	if f.checkAuthFn != nil {
		return f.checkAuthFn(ctx)
	}
	return nil, nil
}

func (f *fakeAuthAPI) Login(ctx context.Context, creds entities.LoginRequest) (*entities.User, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, creds)
	}
	return nil, errors.New("login not configured")
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	if f.logoutFn != nil {
		return f.logoutFn(ctx)
	}
	return nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, data entities.RegisterRequest) error {
	f.registerCalls++
	if f.registerFn != nil {
		return f.registerFn(ctx, data)
	}
	return nil
}

func guru() *entities.User {
	return &entities.User{ID: 7, Nama: "Bu Sari", Email: "sari@sekolah.id", Role: entities.RoleGuru}
}

func TestStore_Initialize_ExistingSession(t *testing.T) {
	api := &fakeAuthAPI{
		checkAuthFn: func(ctx context.Context) (*entities.User, error) {
			return guru(), nil
		},
	}
	store := session.NewStore(api)

	snap := store.Initialize(context.Background())
	assert.Equal(t, session.StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, int64(7), snap.User.ID)
	assert.True(t, snap.Settled())
	assert.True(t, snap.Authenticated())
}

func TestStore_Initialize_NoSession(t *testing.T) {
	store := session.NewStore(&fakeAuthAPI{})

	snap := store.Initialize(context.Background())
	assert.Equal(t, session.StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.True(t, snap.Settled())
	assert.False(t, snap.Authenticated())
}

// A probe failure must never leave the session looking authenticated:
// inability to verify settles as anonymous.
func TestStore_Initialize_ProbeFailureSettlesAnonymous(t *testing.T) {
	api := &fakeAuthAPI{
		checkAuthFn: func(ctx context.Context) (*entities.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	store := session.NewStore(api)

	snap := store.Initialize(context.Background())
	assert.Equal(t, session.StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
}

func TestStore_Initialize_ProbesOnce(t *testing.T) {
	api := &fakeAuthAPI{
		checkAuthFn: func(ctx context.Context) (*entities.User, error) {
			return guru(), nil
		},
	}
	store := session.NewStore(api)

	store.Initialize(context.Background())
	store.Initialize(context.Background())
	snap := store.Initialize(context.Background())

	assert.Equal(t, 1, api.checkAuthCalls)
	assert.Equal(t, session.StateAuthenticated, snap.State)
}

func TestStore_Login_Success(t *testing.T) {
	api := &fakeAuthAPI{
		loginFn: func(ctx context.Context, creds entities.LoginRequest) (*entities.User, error) {
			assert.Equal(t, "sari@sekolah.id", creds.Email)
			assert.Equal(t, entities.RoleGuru, creds.Role)
			return guru(), nil
		},
	}
	store := session.NewStore(api)
	store.Initialize(context.Background())

	user, err := store.Login(context.Background(), entities.LoginRequest{
		Email:    "sari@sekolah.id",
		Password: "rahasia",
		Role:     entities.RoleGuru,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, session.StateAuthenticated, store.Snapshot().State)
}

// A rejected login leaves the session exactly as it was; the backend's
// message reaches the caller verbatim.
func TestStore_Login_FailureLeavesStateUnchanged(t *testing.T) {
	api := &fakeAuthAPI{
		loginFn: func(ctx context.Context, creds entities.LoginRequest) (*entities.User, error) {
			return nil, errors.New("Email atau password salah")
		},
	}
	store := session.NewStore(api)
	store.Initialize(context.Background())

	before := store.Snapshot()
	user, err := store.Login(context.Background(), entities.LoginRequest{Email: "x@y.z"})

	require.EqualError(t, err, "Email atau password salah")
	assert.Nil(t, user)
	assert.Equal(t, before, store.Snapshot())
}

func TestStore_Logout_AlwaysDropsIdentity(t *testing.T) {
	api := &fakeAuthAPI{
		checkAuthFn: func(ctx context.Context) (*entities.User, error) {
			return guru(), nil
		},
		logoutFn: func(ctx context.Context) error {
			return errors.New("backend unreachable")
		},
	}
	store := session.NewStore(api)
	store.Initialize(context.Background())
	require.True(t, store.Snapshot().Authenticated())

	err := store.Logout(context.Background())
	assert.Error(t, err)

	snap := store.Snapshot()
	assert.Equal(t, session.StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
}

func TestStore_Register_DoesNotAuthenticate(t *testing.T) {
	api := &fakeAuthAPI{}
	store := session.NewStore(api)
	store.Initialize(context.Background())

	err := store.Register(context.Background(), entities.RegisterRequest{
		Nama:  "Budi",
		Kelas: "10A",
		Email: "budi@sekolah.id",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, api.registerCalls)
	assert.Equal(t, session.StateAnonymous, store.Snapshot().State)
}
