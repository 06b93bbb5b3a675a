package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/campusrooms/booking-client/internal/core/domain"
	"github.com/campusrooms/booking-client/internal/core/ports"
)

// AuthClient handles login, registration, and profile retrieval. It owns the
// session lifecycle around those calls: a successful login saves the issued
// token, a rejected profile fetch discards it.
type AuthClient struct {
	client *Client
	store  ports.SessionStore
	log    zerolog.Logger
}

func NewAuthClient(client *Client, store ports.SessionStore, log zerolog.Logger) *AuthClient {
	return &AuthClient{client: client, store: store, log: log}
}

func (a *AuthClient) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := a.client.do(ctx, "login", http.MethodPost, "/api/login", body, &resp, false); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return domain.ErrInvalidResponse
	}
	if err := a.store.Save(ctx, ports.Session{Token: resp.AccessToken}); err != nil {
		return err
	}
	a.log.Info().Str("username", username).Msg("logged in")
	return nil
}

func (a *AuthClient) Register(ctx context.Context, in ports.RegisterInput) error {
	body := map[string]string{
		"username": in.Username,
		"password": in.Password,
		"fullname": in.FullName,
		"email":    in.Email,
		"role":     in.Role,
	}
	return a.client.do(ctx, "register", http.MethodPost, "/api/regis", body, nil, false)
}

// Profile fetches the authenticated account. Any backend rejection clears the
// cached token: a credential the profile endpoint refuses is useless for
// every other call too.
func (a *AuthClient) Profile(ctx context.Context) (*ports.Profile, error) {
	var resp struct {
		Username string `json:"username"`
		FullName string `json:"fullname"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	err := a.client.do(ctx, "profile", http.MethodGet, "/api/profile", nil, &resp, true)
	if err != nil {
		if _, rejected := domain.IsRequestError(err); rejected || errors.Is(err, domain.ErrSessionExpired) {
			if clearErr := a.store.Clear(ctx); clearErr != nil {
				a.log.Warn().Err(clearErr).Msg("failed to clear session after rejected profile fetch")
			}
		}
		return nil, err
	}
	return &ports.Profile{
		Username: resp.Username,
		FullName: resp.FullName,
		Email:    resp.Email,
		Role:     resp.Role,
	}, nil
}

func (a *AuthClient) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}
