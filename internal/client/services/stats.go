package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/repositories/events"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// UserStats is the login statistics row of one user.
type UserStats struct {
	ID          int
	Login       string
	Surname     string
	Name        string
	Role        models.Role
	Status      models.Status
	LoginCount  int
	LogoutCount int // journaled logouts, zero without a journal
	LoginTime   *time.Time
	LogoutTime  *time.Time
	// Duration is valid only when HasSession is true. For an open session it
	// runs up to the time passed to the service.
	Duration   time.Duration
	HasSession bool
	Online     bool
}

// Summary aggregates the whole collection.
type Summary struct {
	Total       int
	Active      int
	Inactive    int
	Admins      int
	Standard    int
	TotalLogins int
	Online      int
}

type StatsService interface {
	Users(ctx context.Context, c *models.Collection, now time.Time) []UserStats
	User(ctx context.Context, c *models.Collection, login string, now time.Time) (UserStats, error)
	Summary(c *models.Collection) Summary
	// History returns journaled events, newest first. An empty login means
	// every user.
	History(ctx context.Context, login string, limit int) ([]models.SessionEvent, error)
}

type statsService struct {
	journal events.Repository
	logger  logging.Logger
}

func NewStatsService(journal events.Repository, logger logging.Logger) StatsService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &statsService{journal: journal, logger: logger}
}

func (s *statsService) Users(ctx context.Context, c *models.Collection, now time.Time) []UserStats {
	out := make([]UserStats, 0, c.Len())
	for _, u := range c.Users {
		out = append(out, s.userStats(ctx, u, now))
	}
	return out
}

func (s *statsService) User(ctx context.Context, c *models.Collection, login string, now time.Time) (UserStats, error) {
	u, _ := c.FindByLogin(login)
	if u == nil {
		return UserStats{}, fmt.Errorf("user %q: %w", login, common.ErrNotFound)
	}
	return s.userStats(ctx, u, now), nil
}

func (s *statsService) Summary(c *models.Collection) Summary {
	var sum Summary
	for _, u := range c.Users {
		sum.Total++
		if u.IsActive() {
			sum.Active++
		} else {
			sum.Inactive++
		}
		if u.IsAdmin() {
			sum.Admins++
		} else {
			sum.Standard++
		}
		if u.Online() {
			sum.Online++
		}
		sum.TotalLogins += u.LoginCount
	}
	return sum
}

func (s *statsService) History(ctx context.Context, login string, limit int) ([]models.SessionEvent, error) {
	if s.journal == nil {
		return []models.SessionEvent{}, nil
	}
	return s.journal.Recent(ctx, login, limit)
}

func (s *statsService) userStats(ctx context.Context, u *models.User, now time.Time) UserStats {
	st := UserStats{
		ID:         u.ID,
		Login:      u.Login,
		Surname:    u.Surname,
		Name:       u.Name,
		Role:       u.Role,
		Status:     u.Status,
		LoginCount: u.LoginCount,
		LoginTime:  u.LoginTime,
		LogoutTime: u.LogoutTime,
		Online:     u.Online(),
	}

	if d, err := session.Duration(u, now); err == nil {
		st.Duration = d
		st.HasSession = true
	}

	if s.journal != nil {
		n, err := s.journal.Count(ctx, u.Login, models.EventLogout)
		if err != nil {
			s.logger.Warn(ctx, "logout count unavailable", "login", u.Login, "error", err)
		}
		st.LogoutCount = n
	}
	return st
}
