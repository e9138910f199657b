package session

import (
	"context"
	"sync"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
)

// AuthAPI is the slice of backend operations the store needs.
type AuthAPI interface {
	// CheckAuth probes the current session cookie. A nil user with a nil
	// error means the backend answered "not authenticated".
	CheckAuth(ctx context.Context) (*entities.User, error)
	Login(ctx context.Context, creds entities.LoginRequest) (*entities.User, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, data entities.RegisterRequest) error
}

// State is the lifecycle position of the authentication session.
type State int

const (
	StateUnknown State = iota // before the initial probe
	StateLoading              // initial probe in flight
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "invalid"
}

// Snapshot is a read-only view of the session handed to consumers. Nothing
// outside the store mutates session fields.
type Snapshot struct {
	State State
	User  *entities.User
}

// Settled reports whether the initial probe has finished. Protected actions
// must not be attempted before the snapshot settles.
func (s Snapshot) Settled() bool {
	return s.State == StateAuthenticated || s.State == StateAnonymous
}

// Authenticated reports whether a principal is attached.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

// Store owns the authentication state for one chat. It is mutated only
// through Initialize, Login and Logout; everything else reads snapshots.
type Store struct {
	mu          sync.Mutex
	api         AuthAPI
	state       State
	user        *entities.User
	initialized bool
}

func NewStore(api AuthAPI) *Store {
	return &Store{api: api, state: StateUnknown}
}

// Initialize probes the backend for an existing session. It runs the probe
// at most once per store lifetime; later calls return the settled snapshot.
// Any failure to verify settles as Anonymous: inability to check is treated
// as "not logged in".
func (st *Store) Initialize(ctx context.Context) Snapshot {
	st.mu.Lock()
	if st.initialized {
		snap := st.snapshotLocked()
		st.mu.Unlock()
		return snap
	}
	st.initialized = true
	st.state = StateLoading
	st.mu.Unlock()

	user, err := st.api.CheckAuth(ctx)

	st.mu.Lock()
	defer st.mu.Unlock()
	if err != nil || user == nil {
		st.state = StateAnonymous
		st.user = nil
	} else {
		st.state = StateAuthenticated
		st.user = user
	}
	return st.snapshotLocked()
}

// Login authenticates against the backend. On success the store transitions
// to Authenticated; on failure the state is unchanged and the error
// propagates to the caller for display.
func (st *Store) Login(ctx context.Context, creds entities.LoginRequest) (*entities.User, error) {
	user, err := st.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.initialized = true
	st.state = StateAuthenticated
	st.user = user
	return user, nil
}

// Logout tells the backend to terminate the session and drops the local
// identity unconditionally: the server is the source of truth for session
// termination, but the client never keeps a principal it cannot verify.
func (st *Store) Logout(ctx context.Context) error {
	err := st.api.Logout(ctx)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.initialized = true
	st.state = StateAnonymous
	st.user = nil
	return err
}

// Register delegates to the backend and leaves the session untouched:
// registered accounts require guru verification before they may log in.
func (st *Store) Register(ctx context.Context, data entities.RegisterRequest) error {
	return st.api.Register(ctx, data)
}

// Snapshot returns the current session view.
func (st *Store) Snapshot() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.snapshotLocked()
}

func (st *Store) snapshotLocked() Snapshot {
	return Snapshot{State: st.state, User: st.user}
}
