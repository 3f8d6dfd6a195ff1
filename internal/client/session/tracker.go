// Package session does login/logout bookkeeping on user records: it checks
// credentials, maintains the login counter and the login/logout timestamps,
// and computes session durations. It never persists; callers save the
// collection after every mutating call.
package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
)

// Reason explains why authentication was rejected.
type Reason string

const (
	ReasonNotFound      Reason = "user not found"
	ReasonWrongPassword Reason = "wrong password"
	ReasonDisabled      Reason = "account disabled"
)

// RejectedError is returned by Authenticate. It matches
// common.ErrAuthRejected with errors.Is.
type RejectedError struct {
	Login  string
	Reason Reason
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v for %q: %s", common.ErrAuthRejected, e.Login, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return common.ErrAuthRejected
}

// Tracker holds the clock used for timestamps.
type Tracker struct {
	now func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{now: time.Now}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Now returns the current time truncated to whole seconds, which is the
// precision timestamps are stored with.
func (t *Tracker) Now() time.Time {
	return t.now().Truncate(time.Second)
}

// Authenticate finds the record for login and checks password. A matching
// password on an inactive record is rejected as ReasonDisabled. The
// collection is never modified.
func (t *Tracker) Authenticate(c *models.Collection, login, password string) (*models.User, error) {
	u, _ := c.FindByLogin(login)
	if u == nil {
		return nil, &RejectedError{Login: login, Reason: ReasonNotFound}
	}
	if u.Password != password {
		return nil, &RejectedError{Login: login, Reason: ReasonWrongPassword}
	}
	if !u.IsActive() {
		return nil, &RejectedError{Login: login, Reason: ReasonDisabled}
	}
	return u, nil
}

// RecordLogin bumps the login counter, stamps the login time and clears the
// logout time.
func (t *Tracker) RecordLogin(u *models.User) {
	now := t.Now()
	u.LoginCount++
	u.LoginTime = &now
	u.LogoutTime = nil
}

// RecordLogout stamps the logout time. It reports false and does nothing if
// the user never logged in.
func (t *Tracker) RecordLogout(u *models.User) bool {
	if u.LoginTime == nil {
		return false
	}
	now := t.Now()
	u.LogoutTime = &now
	return true
}

// ToggleStatus flips active and inactive.
func (t *Tracker) ToggleStatus(u *models.User) {
	u.Status = u.Status.Toggle()
}

// Duration returns the time between login and logout, or between login and
// now while the session is open. It fails with common.ErrNoLoginRecord when
// the user never logged in.
func Duration(u *models.User, now time.Time) (time.Duration, error) {
	if u.LoginTime == nil {
		return 0, fmt.Errorf("%s: %w", u.Login, common.ErrNoLoginRecord)
	}
	end := now
	if u.LogoutTime != nil {
		end = *u.LogoutTime
	}
	return end.Sub(*u.LoginTime), nil
}

// FormatDuration renders d as HH:MM:SS. Hours grow past 24; negative
// durations are clamped to zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}
