package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the gate's position in the login lifecycle.
type State string

const (
	Unauthenticated State = "unauthenticated"
	Authenticating  State = "authenticating"
	Authenticated   State = "authenticated"
)

var (
	ErrLoginInProgress      = errors.New("login already in progress")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	ErrNotAuthenticated     = errors.New("not authenticated")
)

// Gate is the process-wide session. It holds at most one token and
// moves unauthenticated → authenticating → authenticated; a failed
// exchange falls back to unauthenticated. Authenticating is only
// reachable from unauthenticated. Logout is valid from any state and
// always lands on unauthenticated.
type Gate struct {
	mu       sync.Mutex
	state    State
	token    string
	provider Provider
}

func NewGate(provider Provider) *Gate {
	return &Gate{state: Unauthenticated, provider: provider}
}

// Login exchanges the credential for a session token. Logging in again
// while a login is in flight or a session is active is an invalid
// transition; callers must log out first.
func (g *Gate) Login(ctx context.Context, credential string) (string, error) {
	g.mu.Lock()
	switch g.state {
	case Authenticating:
		g.mu.Unlock()
		return "", ErrLoginInProgress
	case Authenticated:
		g.mu.Unlock()
		return "", ErrAlreadyAuthenticated
	}
	g.state = Authenticating
	g.token = ""
	g.mu.Unlock()

	token, err := g.provider.Exchange(ctx, credential)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.state = Unauthenticated
		return "", fmt.Errorf("exchange credential: %w", err)
	}
	g.state = Authenticated
	g.token = token
	return token, nil
}

// Logout drops the session. It is idempotent.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Unauthenticated
	g.token = ""
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Verify checks a presented token against the current session. Only
// token presence and equality are checked; expiry and claims are the
// provider's concern at exchange time.
func (g *Gate) Verify(token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Authenticated || token == "" || token != g.token {
		return ErrNotAuthenticated
	}
	return nil
}
