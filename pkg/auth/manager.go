// Package auth provides the session gate in front of booking actions. The
// identity provider itself is external: any OIDC issuer configured through
// cfg.OIDCConfig. The rest of the application only ever sees a session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"skytrip/cfg"
)

var (
	ErrInvalidState = errors.New("invalid state")
)

// UserInfo is the unified identity extracted from the provider's ID token.
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Manager runs the OIDC code flow and owns the session store.
type Manager struct {
	config         *oauth2.Config
	verifier       *oidc.IDTokenVerifier
	states         *stateStore
	sessions       *sessionStore
	stateTimeout   time.Duration
	sessionTimeout time.Duration
}

func NewManager(ctx context.Context, conf *cfg.OIDCConfig) (*Manager, error) {
	provider, err := oidc.NewProvider(ctx, conf.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	config := &oauth2.Config{
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		RedirectURL:  conf.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: conf.ClientID,
	})

	return &Manager{
		config:         config,
		verifier:       verifier,
		states:         newStateStore(),
		sessions:       newSessionStore(),
		stateTimeout:   10 * time.Minute,
		sessionTimeout: 24 * time.Hour,
	}, nil
}

// LoginURL generates the authorization URL with a fresh state and nonce.
func (m *Manager) LoginURL() (string, error) {
	state, err := randomString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	nonce, err := randomString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	m.states.Save(state, nonce, time.Now().Add(m.stateTimeout))

	return m.config.AuthCodeURL(state, oidc.Nonce(nonce)), nil
}

// HandleCallback exchanges the code, verifies the ID token against the saved
// nonce, and creates a session.
func (m *Manager) HandleCallback(ctx context.Context, code, state string) (*Session, error) {
	nonce, ok := m.states.Consume(state)
	if !ok {
		return nil, ErrInvalidState
	}

	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("no id_token in response")
	}

	idToken, err := m.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}
	if idToken.Nonce != nonce {
		return nil, errors.New("nonce mismatch")
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}

	user := UserInfo{
		ID:            idToken.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
	}

	return m.sessions.Create(user, m.sessionTimeout)
}

// Session returns the live session for id, or an error when it is missing or
// expired.
func (m *Manager) Session(id string) (*Session, error) {
	return m.sessions.Get(id)
}

// Logout deletes the session; unknown ids are a no-op.
func (m *Manager) Logout(id string) {
	m.sessions.Delete(id)
}
