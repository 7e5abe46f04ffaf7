// Package auth is the boundary to the external identity capability. The feed
// service never implements identity itself; it only gates on session state.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// SessionState is the signed-in/signed-out gate the API reacts to.
type SessionState string

const (
	SignedIn  SessionState = "signed-in"
	SignedOut SessionState = "signed-out"
)

var ErrInvalidCredentials = errors.New("invalid identifier or secret")

// SessionProvider exposes sign-in, sign-out, and session-state lookup.
// Token refresh is out of scope; sessions live until signed out.
type SessionProvider interface {
	SignIn(ctx context.Context, identifier, secret string) (string, error)
	SignOut(ctx context.Context, token string)
	State(token string) SessionState
}

// StaticProvider validates a single configured credential pair and keeps
// issued sessions in memory.
type StaticProvider struct {
	identifier string
	secret     string

	mu       sync.Mutex
	sessions map[string]struct{}
}

func NewStaticProvider(identifier, secret string) *StaticProvider {
	return &StaticProvider{
		identifier: identifier,
		secret:     secret,
		sessions:   make(map[string]struct{}),
	}
}

// SignIn issues a session token for the configured credential pair.
func (p *StaticProvider) SignIn(_ context.Context, identifier, secret string) (string, error) {
	if identifier != p.identifier || secret != p.secret {
		return "", ErrInvalidCredentials
	}
	token := uuid.New().String()
	p.mu.Lock()
	p.sessions[token] = struct{}{}
	p.mu.Unlock()
	return token, nil
}

// SignOut invalidates the token. Unknown tokens are a no-op.
func (p *StaticProvider) SignOut(_ context.Context, token string) {
	p.mu.Lock()
	delete(p.sessions, token)
	p.mu.Unlock()
}

// State reports whether the token belongs to a live session.
func (p *StaticProvider) State(token string) SessionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sessions[token]; ok {
		return SignedIn
	}
	return SignedOut
}
