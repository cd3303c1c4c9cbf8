// Package services contains application services for the gigbook CLI:
// authentication against the server and the bookkeeping calls that keep
// the local snapshot cache current.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gigbook/internal/client/client"
	"github.com/dmitrijs2005/gigbook/internal/client/repositories/cache"
	"github.com/dmitrijs2005/gigbook/internal/common"
)

// AuthService defines authentication operations for the CLI.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	// LastUser is the user whose snapshot sits in the cache, if any.
	LastUser(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	cache  cache.Repository
}

func NewAuthService(c client.Client, r cache.Repository) AuthService {
	return &authService{client: c, cache: r}
}

func (a *authService) Register(ctx context.Context, username, email, password string) error {
	return a.client.Register(ctx, username, email, password)
}

// Login authenticates online. A different user than the cached one drops
// the old snapshot so reports never mix accounts.
func (a *authService) Login(ctx context.Context, username, password string) error {
	if err := a.client.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	prev, err := a.cache.GetMeta(ctx, cache.KeyUsername)
	if err != nil {
		return err
	}
	if prev != "" && prev != username {
		if err := a.cache.Clear(ctx); err != nil {
			return err
		}
	}
	return a.cache.SetMeta(ctx, cache.KeyUsername, username)
}

// Logout forgets the tokens and wipes the local snapshot.
func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout()
	return a.cache.Clear(ctx)
}

func (a *authService) LastUser(ctx context.Context) (string, error) {
	u, err := a.cache.GetMeta(ctx, cache.KeyUsername)
	if err != nil {
		return "", err
	}
	if u == "" {
		return "", client.ErrLocalDataNotAvailable
	}
	return u, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// requireLogin is shared by the services that call protected RPCs.
func requireLogin(c client.Client) error {
	if !c.LoggedIn() {
		return fmt.Errorf("%w: login first", common.ErrUnauthorized)
	}
	return nil
}
