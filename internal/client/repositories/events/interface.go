// Package events stores the activity journal: one row per login or logout.
// The journal is informational; the user records remain the source of truth
// for counters and timestamps.
package events

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

type Repository interface {
	// Append stores e and returns its row id.
	Append(ctx context.Context, e models.SessionEvent) (int64, error)
	// Recent returns up to limit events, newest first. An empty login means
	// every user; limit <= 0 means no limit.
	Recent(ctx context.Context, login string, limit int) ([]models.SessionEvent, error)
	// Count returns how many events of kind were journaled for login.
	Count(ctx context.Context, login string, kind models.EventKind) (int, error)
}
