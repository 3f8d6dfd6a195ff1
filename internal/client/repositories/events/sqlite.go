package events

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, e models.SessionEvent) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO session_events (login, kind, at_unix) VALUES (?, ?, ?)`,
		e.Login, string(e.Kind), e.At.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to append %s event for %s: %w", e.Kind, e.Login, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read event id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, login string, limit int) ([]models.SessionEvent, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, login, kind, at_unix FROM session_events
		WHERE (? = '' OR login = ?)
		ORDER BY at_unix DESC, id DESC
		LIMIT ?`, login, login, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	result := make([]models.SessionEvent, 0)
	for rows.Next() {
		var (
			e    models.SessionEvent
			kind string
			at   int64
		)
		if err := rows.Scan(&e.ID, &e.Login, &kind, &at); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		e.Kind = models.EventKind(kind)
		e.At = time.Unix(at, 0)
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context, login string, kind models.EventKind) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_events WHERE login = ? AND kind = ?`,
		login, string(kind)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count events for %s: %w", login, err)
	}
	return n, nil
}
