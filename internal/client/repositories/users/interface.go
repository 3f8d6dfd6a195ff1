package users

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// Repository loads and saves the whole user collection.
type Repository interface {
	// Load reads the persisted collection. It always returns a usable
	// collection, possibly empty, even when err is non-nil.
	Load(ctx context.Context) (*models.Collection, error)

	// Save overwrites the persisted collection with c.
	Save(ctx context.Context, c *models.Collection) error
}
