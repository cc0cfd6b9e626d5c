// Package auth covers the backend's /auth endpoints: account registration,
// cookie-session login/logout, explicit session renewal and the
// current-user lookup. Login and register are exempt from the transport's
// refresh-and-retry cycle; a 401 from either means bad credentials.
package auth

import (
	"context"

	"github.com/hupe1980/agentos-go/transport"
)

// User is the authenticated account as returned by the backend.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// credentials is the request body shared by register and login.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service calls the /auth endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates an auth service on the shared transport client.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// Register creates a new account. The backend enforces password length
// (8-72 characters) and rejects duplicate emails with a 409.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	var user User
	if err := s.client.Post(ctx, "/auth/register", credentials{Email: email, Password: password}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the session cookies (access and refresh
// tokens) in the transport's cookie jar.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	var user User
	if err := s.client.Post(ctx, "/auth/login", credentials{Email: email, Password: password}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh explicitly renews the session. Normally unnecessary — the
// transport refreshes transparently on 401 — but useful to validate a
// restored session at startup.
func (s *Service) Refresh(ctx context.Context) error {
	return s.client.Post(ctx, transport.DefaultRefreshPath, struct{}{}, nil)
}

// Logout revokes the refresh token server-side and clears the session
// cookies.
func (s *Service) Logout(ctx context.Context) error {
	return s.client.Post(ctx, "/auth/logout", struct{}{}, nil)
}

// Me returns the account behind the current session.
func (s *Service) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
