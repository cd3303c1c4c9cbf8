package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) Register(ctx context.Context) error {
	userName, err := GetRequiredText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, userName, email, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success! You can login now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := GetRequiredText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, userName, password); err != nil {
		return err
	}

	a.mu.Lock()
	a.userName = userName
	a.mu.Unlock()
	a.setMode(ModeOnline)

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout drops the session and the local snapshot.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	a.userName = ""
	a.mu.Unlock()

	fmt.Fprintln(a.out, "Logged out")
	return nil
}
