package services

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/repositories/events"
	"github.com/dmitrijs2005/userdir/internal/client/repositories/users"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// AuthService defines the login/logout flow of the shell.
//
// Contract:
//   - Login reloads the collection from the store, so edits made by another
//     run are seen, and returns it together with the authenticated record.
//   - Login and Logout persist the updated record before returning.
//   - Journal failures are logged and never fail the call.
type AuthService interface {
	Login(ctx context.Context, login, password string) (*models.Collection, *models.User, error)
	Logout(ctx context.Context, c *models.Collection, u *models.User) error
}

type authService struct {
	store   users.Repository
	tracker *session.Tracker
	journal events.Repository
	logger  logging.Logger
}

// NewAuthService constructs an AuthService. journal may be nil, in which case
// no events are recorded.
func NewAuthService(store users.Repository, tracker *session.Tracker, journal events.Repository, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{store: store, tracker: tracker, journal: journal, logger: logger}
}

func (a *authService) Login(ctx context.Context, login, password string) (*models.Collection, *models.User, error) {
	c := loadCollection(ctx, a.store, a.logger)

	u, err := a.tracker.Authenticate(c, login, password)
	if err != nil {
		a.logger.Warn(ctx, "login rejected", "login", login, "error", err)
		return nil, nil, err
	}

	before := u.Clone()
	a.tracker.RecordLogin(u)
	if err := a.store.Save(ctx, c); err != nil {
		*u = *before
		return nil, nil, err
	}

	a.logger.Info(ctx, "user logged in", "login", u.Login, "count", u.LoginCount)
	a.journalEvent(ctx, u, models.EventLogin)
	return c, u, nil
}

func (a *authService) Logout(ctx context.Context, c *models.Collection, u *models.User) error {
	before := u.Clone()
	if !a.tracker.RecordLogout(u) {
		a.logger.Warn(ctx, "logout without login record", "login", u.Login)
		return nil
	}

	if err := a.store.Save(ctx, c); err != nil {
		*u = *before
		return err
	}

	a.logger.Info(ctx, "user logged out", "login", u.Login)
	a.journalEvent(ctx, u, models.EventLogout)
	return nil
}

func (a *authService) journalEvent(ctx context.Context, u *models.User, kind models.EventKind) {
	if a.journal == nil {
		return
	}

	at := a.tracker.Now()
	if kind == models.EventLogin && u.LoginTime != nil {
		at = *u.LoginTime
	} else if kind == models.EventLogout && u.LogoutTime != nil {
		at = *u.LogoutTime
	}

	e := models.SessionEvent{Login: u.Login, Kind: kind, At: at}
	if _, err := a.journal.Append(ctx, e); err != nil {
		a.logger.Error(ctx, "failed to journal session event", "login", u.Login, "kind", string(kind), "error", err)
	}
}
