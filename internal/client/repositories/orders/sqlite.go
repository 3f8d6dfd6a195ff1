package orders

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *SQLiteRepository) Insert(ctx context.Context, o models.Order) error {
	values, err := json.Marshal(o.Values)
	if err != nil {
		return fmt.Errorf("failed to encode order %s: %w", o.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, login, field_values, created_unix, document_ref)
		VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.Login, string(values), o.CreatedAt.Unix(), o.DocumentRef)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", o.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListByLogin(ctx context.Context, login string) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, login, field_values, created_unix, document_ref
		FROM orders WHERE login = ?
		ORDER BY created_unix, rowid`, login)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	result := make([]models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		result = append(result, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}
	return result, nil
}

func scanOrder(rows *sql.Rows) (*models.Order, error) {
	var (
		o       models.Order
		values  string
		created int64
	)
	if err := rows.Scan(&o.ID, &o.Login, &values, &created, &o.DocumentRef); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(values), &o.Values); err != nil {
		return nil, fmt.Errorf("decode field values: %w", err)
	}
	o.CreatedAt = time.Unix(created, 0)
	return &o, nil
}
