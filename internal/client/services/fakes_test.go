package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
)

// fakeStore is an in-memory users.Repository. Load hands out a copy of the
// last saved collection, like the file store does.
type fakeStore struct {
	data    *models.Collection
	LoadErr error
	SaveErr error
	Saves   int
}

func newFakeStore(users ...*models.User) *fakeStore {
	return &fakeStore{data: models.NewCollection(users...)}
}

func (f *fakeStore) Load(ctx context.Context) (*models.Collection, error) {
	if f.LoadErr != nil {
		return models.NewCollection(), f.LoadErr
	}
	return f.data.Clone(), nil
}

func (f *fakeStore) Save(ctx context.Context, c *models.Collection) error {
	f.Saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.data = c.Clone()
	return nil
}

func (f *fakeStore) stored(login string) *models.User {
	u, _ := f.data.FindByLogin(login)
	return u
}

var errDiskFull = errors.Join(common.ErrPersistence, errors.New("disk full"))

// fakeJournal is an in-memory events.Repository.
type fakeJournal struct {
	Events    []models.SessionEvent
	AppendErr error
	RecentErr error
	CountErr  error
}

func (f *fakeJournal) Append(ctx context.Context, e models.SessionEvent) (int64, error) {
	if f.AppendErr != nil {
		return 0, f.AppendErr
	}
	e.ID = int64(len(f.Events) + 1)
	f.Events = append(f.Events, e)
	return e.ID, nil
}

func (f *fakeJournal) Recent(ctx context.Context, login string, limit int) ([]models.SessionEvent, error) {
	if f.RecentErr != nil {
		return nil, f.RecentErr
	}
	out := make([]models.SessionEvent, 0)
	for i := len(f.Events) - 1; i >= 0; i-- {
		if login != "" && f.Events[i].Login != login {
			continue
		}
		out = append(out, f.Events[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeJournal) Count(ctx context.Context, login string, kind models.EventKind) (int, error) {
	if f.CountErr != nil {
		return 0, f.CountErr
	}
	n := 0
	for _, e := range f.Events {
		if e.Login == login && e.Kind == kind {
			n++
		}
	}
	return n, nil
}

func clockAt(s string) func() time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func str(s string) *string { return &s }

func bob() *models.User {
	return &models.User{ID: 1, Surname: "Smith", Name: "Bob", Login: "bob", Password: "secret1",
		Role: models.RoleStandard, Status: models.StatusActive}
}

func alice() *models.User {
	return &models.User{ID: 2, Surname: "Liddell", Name: "Alice", Login: "alice", Password: "wonder1",
		Role: models.RoleAdmin, Status: models.StatusActive}
}
