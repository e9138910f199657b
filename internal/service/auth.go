package service

import (
	"context"
	"errors"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
)

var ErrNoUserInResponse = errors.New("login response carries no user")

// AuthService wraps the authentication endpoints of the backend.
type AuthService struct {
	api HTTPClient
}

func NewAuthService(api HTTPClient) *AuthService {
	return &AuthService{api: api}
}

// CheckAuth probes the session cookie. Returns a nil user when the backend
// answers "not authenticated".
func (s *AuthService) CheckAuth(ctx context.Context) (*entities.User, error) {
	var resp struct {
		Authenticated bool           `json:"authenticated"`
		User          *entities.User `json:"user"`
	}
	if err := s.api.Get(ctx, "/api/check-auth", &resp); err != nil {
		return nil, err
	}
	if !resp.Authenticated {
		return nil, nil
	}
	return resp.User, nil
}

func (s *AuthService) Login(ctx context.Context, creds entities.LoginRequest) (*entities.User, error) {
	var resp struct {
		User *entities.User `json:"user"`
	}
	if err := s.api.Post(ctx, "/api/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, ErrNoUserInResponse
	}
	return resp.User, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.api.Post(ctx, "/api/auth/logout", struct{}{}, nil)
}

// Register creates a pending murid account. No session is granted; the
// confirmation message tells the murid to wait for guru verification.
func (s *AuthService) Register(ctx context.Context, data entities.RegisterRequest) error {
	return s.api.Post(ctx, "/api/auth/register", data, nil)
}
