package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
)

// Login prompts for credentials and opens a session. A rejected login is
// reported to the user and is not an error; store failures are returned.
// The password buffer is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter login", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	c, u, err := a.auth.Login(ctx, login, string(password))
	if err != nil {
		var rej *session.RejectedError
		if !errors.As(err, &rej) {
			return err
		}
		a.printf("Authentication failed: %s.\n", rej.Reason)
		if rej.Reason == session.ReasonDisabled {
			a.println("Contact an administrator.")
		}
		return nil
	}

	a.users, a.current = c, u
	if u.IsAdmin() {
		a.println("Logged in as administrator", u.Login)
	} else {
		a.println("Logged in as user", u.Login)
	}
	return nil
}

// Logout records the logout and ends the session. The session ends even if
// the record could not be saved; the save error is returned.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return nil
	}

	err := a.auth.Logout(ctx, a.users, a.current)
	a.users, a.current = nil, nil
	if err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// Exit closes an open session before the shell quits.
func (a *App) Exit(ctx context.Context) error {
	return a.Logout(ctx)
}
