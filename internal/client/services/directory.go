package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/query"
	"github.com/dmitrijs2005/userdir/internal/client/repositories/users"
	"github.com/dmitrijs2005/userdir/internal/client/validation"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// DirectoryService defines the administrator operations on user records.
type DirectoryService interface {
	// Load reads the collection from the store. A broken store is logged and
	// yields an empty collection.
	Load(ctx context.Context) *models.Collection
	Find(c *models.Collection, login string) (*models.User, error)
	Create(ctx context.Context, c *models.Collection, d validation.Draft) (*models.User, error)
	// Update applies the set fields of d to the record with login.
	Update(ctx context.Context, c *models.Collection, login string, d validation.Draft) (*models.User, error)
	Delete(ctx context.Context, c *models.Collection, login string) error
	ToggleStatus(ctx context.Context, c *models.Collection, login string) (*models.User, error)

	Sort(c *models.Collection, field query.Field, ascending bool)
	FilterByStatus(c *models.Collection, s models.Status) []*models.User
	FilterByRole(c *models.Collection, r models.Role) []*models.User
	Search(c *models.Collection, q string) []*models.User
}

type directoryService struct {
	store  users.Repository
	logger logging.Logger
}

func NewDirectoryService(store users.Repository, logger logging.Logger) DirectoryService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &directoryService{store: store, logger: logger}
}

func (s *directoryService) Load(ctx context.Context) *models.Collection {
	return loadCollection(ctx, s.store, s.logger)
}

func (s *directoryService) Find(c *models.Collection, login string) (*models.User, error) {
	u, _ := c.FindByLogin(login)
	if u == nil {
		return nil, fmt.Errorf("user %q: %w", login, common.ErrNotFound)
	}
	return u, nil
}

func (s *directoryService) Create(ctx context.Context, c *models.Collection, d validation.Draft) (*models.User, error) {
	d = validation.Draft{
		Surname:  ptr(deref(d.Surname)),
		Name:     ptr(deref(d.Name)),
		Login:    ptr(deref(d.Login)),
		Password: ptr(deref(d.Password)),
		Role:     ptr(deref(d.Role)),
	}
	if err := validation.ValidateDraft(d, c, nil); err != nil {
		return nil, err
	}
	role, _ := validation.ParseRole(*d.Role)

	u := &models.User{
		ID:       c.NextID(),
		Surname:  *d.Surname,
		Name:     *d.Name,
		Login:    *d.Login,
		Password: *d.Password,
		Role:     role,
		Status:   models.StatusActive,
	}
	c.Append(u)

	if err := s.store.Save(ctx, c); err != nil {
		c.RemoveAt(c.Len() - 1)
		return nil, err
	}

	s.logger.Info(ctx, "user created", "login", u.Login, "id", u.ID, "role", u.Role.String())
	return u, nil
}

func (s *directoryService) Update(ctx context.Context, c *models.Collection, login string, d validation.Draft) (*models.User, error) {
	u, err := s.Find(c, login)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateDraft(d, c, u); err != nil {
		return nil, err
	}

	before := u.Clone()
	if d.Surname != nil {
		u.Surname = *d.Surname
	}
	if d.Name != nil {
		u.Name = *d.Name
	}
	if d.Login != nil {
		u.Login = *d.Login
	}
	if d.Password != nil {
		u.Password = *d.Password
	}
	if d.Role != nil {
		u.Role, _ = validation.ParseRole(*d.Role)
	}

	if err := s.store.Save(ctx, c); err != nil {
		*u = *before
		return nil, err
	}

	s.logger.Info(ctx, "user updated", "login", login, "new_login", u.Login)
	return u, nil
}

func (s *directoryService) Delete(ctx context.Context, c *models.Collection, login string) error {
	u, i := c.FindByLogin(login)
	if u == nil {
		return fmt.Errorf("user %q: %w", login, common.ErrNotFound)
	}

	c.RemoveAt(i)
	if err := s.store.Save(ctx, c); err != nil {
		c.InsertAt(i, u)
		return err
	}

	s.logger.Info(ctx, "user deleted", "login", login, "id", u.ID)
	return nil
}

func (s *directoryService) ToggleStatus(ctx context.Context, c *models.Collection, login string) (*models.User, error) {
	u, err := s.Find(c, login)
	if err != nil {
		return nil, err
	}

	prev := u.Status
	u.Status = u.Status.Toggle()
	if err := s.store.Save(ctx, c); err != nil {
		u.Status = prev
		return nil, err
	}

	s.logger.Info(ctx, "user status changed", "login", login, "status", u.Status.String())
	return u, nil
}

func (s *directoryService) Sort(c *models.Collection, field query.Field, ascending bool) {
	query.SortBy(c, field, ascending)
}

func (s *directoryService) FilterByStatus(c *models.Collection, st models.Status) []*models.User {
	return query.FilterByStatus(c, st)
}

func (s *directoryService) FilterByRole(c *models.Collection, r models.Role) []*models.User {
	return query.FilterByRole(c, r)
}

func (s *directoryService) Search(c *models.Collection, q string) []*models.User {
	return query.Search(c, q)
}

// loadCollection never fails: a store error is logged and an empty
// collection is used instead.
func loadCollection(ctx context.Context, store users.Repository, logger logging.Logger) *models.Collection {
	c, err := store.Load(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load user records, starting empty", "error", err)
	}
	if c == nil {
		c = models.NewCollection()
	}
	return c
}

func ptr(s string) *string { return &s }

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
