// Package orders stores submitted order forms, one row per order.
package orders

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

type Repository interface {
	Insert(ctx context.Context, o models.Order) error
	// ListByLogin returns the user's orders, oldest first.
	ListByLogin(ctx context.Context, login string) ([]models.Order, error)
}
