// Package auth gates API access behind an exchangeable credential. The
// stub provider issues mock tokens for local development; the Google
// provider verifies real ID tokens against the tokeninfo endpoint.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var ErrInvalidCredential = errors.New("invalid credential")

// Provider exchanges an opaque credential for a session token.
type Provider interface {
	Exchange(ctx context.Context, credential string) (string, error)
}

// StubProvider accepts any non-empty credential and mints a mock token
// after a short simulated round trip.
type StubProvider struct {
	delay time.Duration
}

func NewStubProvider(delay time.Duration) *StubProvider {
	return &StubProvider{delay: delay}
}

func (p *StubProvider) Exchange(ctx context.Context, credential string) (string, error) {
	if credential == "" {
		return "", ErrInvalidCredential
	}
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return "mock-jwt-token-" + uuid.Must(uuid.NewV4()).String(), nil
}

// GoogleProvider validates a Google ID token via the tokeninfo endpoint
// and returns it as the session token when it checks out.
type GoogleProvider struct {
	service *goauth2.Service
}

func NewGoogleProvider(ctx context.Context) (*GoogleProvider, error) {
	svc, err := goauth2.NewService(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("create oauth2 service: %w", err)
	}
	return &GoogleProvider{service: svc}, nil
}

func (p *GoogleProvider) Exchange(ctx context.Context, credential string) (string, error) {
	if credential == "" {
		return "", ErrInvalidCredential
	}
	info, err := p.service.Tokeninfo().IdToken(credential).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("verify ID token: %w", err)
	}
	if !info.VerifiedEmail {
		return "", fmt.Errorf("%w: email not verified", ErrInvalidCredential)
	}
	return credential, nil
}
