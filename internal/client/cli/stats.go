package cli

import (
	"context"
	"fmt"
	"strconv"
)

const defaultHistoryLimit = 20

// Stats prints login statistics: a summary and a row per user, or the
// details of one user when a login is given.
func (a *App) Stats(ctx context.Context, args []string) error {
	now := a.tracker.Now()

	if len(args) > 0 {
		st, err := a.stats.User(ctx, a.users, args[0], now)
		if err != nil {
			return err
		}
		renderUserStats(a.out, st)
		return nil
	}

	renderSummary(a.out, a.stats.Summary(a.users))
	a.println()
	renderStats(a.out, a.stats.Users(ctx, a.users, now))
	return nil
}

// History prints journaled logins and logouts, newest first.
//
//	history [login] [limit]
func (a *App) History(ctx context.Context, args []string) error {
	login, limit := "", defaultHistoryLimit
	if len(args) > 0 {
		login = args[0]
		if login == "all" || login == "*" {
			login = ""
		}
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("limit must be a positive number, got %q", args[1])
		}
		limit = n
	}

	list, err := a.stats.History(ctx, login, limit)
	if err != nil {
		return err
	}
	renderEvents(a.out, list)
	return nil
}
