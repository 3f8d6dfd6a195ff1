package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/repositories/orders"
	"github.com/dmitrijs2005/userdir/internal/client/validation"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/dbx"
	"github.com/dmitrijs2005/userdir/internal/filex"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// newOrderID is replaced in tests.
var newOrderID = uuid.NewString

// OrderService records the order forms filled in by standard users.
type OrderService interface {
	// Fields returns the form field names in prompt order.
	Fields() []string
	// Submit stores the order row and writes its JSON document. Every
	// configured field must be non-blank.
	Submit(ctx context.Context, u *models.User, values map[string]string) (*models.Order, error)
	List(ctx context.Context, login string) ([]models.Order, error)
}

type orderService struct {
	db     *sql.DB
	dir    string
	fields []string
	now    func() time.Time
	logger logging.Logger
}

// NewOrderService builds an OrderService writing documents into dir. now
// defaults to time.Now.
func NewOrderService(db *sql.DB, dir string, fields []string, now func() time.Time, logger logging.Logger) OrderService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &orderService{
		db:     db,
		dir:    dir,
		fields: append([]string(nil), fields...),
		now:    now,
		logger: logger,
	}
}

func (s *orderService) Fields() []string {
	return append([]string(nil), s.fields...)
}

type orderDocument struct {
	ID        string            `json:"id"`
	Login     string            `json:"login"`
	Surname   string            `json:"surname"`
	Name      string            `json:"name"`
	CreatedAt string            `json:"created_at"`
	Fields    map[string]string `json:"fields"`
}

func (s *orderService) Submit(ctx context.Context, u *models.User, values map[string]string) (*models.Order, error) {
	clean := make(map[string]string, len(s.fields))
	var result *multierror.Error
	for _, f := range s.fields {
		v := strings.TrimSpace(values[f])
		if v == "" {
			result = multierror.Append(result, &validation.FieldError{Field: f, Err: common.ErrEmptyField})
			continue
		}
		clean[f] = v
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("orders dir: %w", err)
	}

	id := newOrderID()
	o := &models.Order{
		ID:          id,
		Login:       u.Login,
		Values:      clean,
		CreatedAt:   s.now().Truncate(time.Second),
		DocumentRef: filepath.Join(dir, id+".json"),
	}

	doc, err := json.MarshalIndent(orderDocument{
		ID:        o.ID,
		Login:     u.Login,
		Surname:   u.Surname,
		Name:      u.Name,
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
		Fields:    clean,
	}, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode order %s: %w", id, err)
	}

	written := false
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := orders.NewSQLiteRepository(tx).Insert(ctx, *o); err != nil {
			return err
		}
		if err := filex.WriteFileAtomic(o.DocumentRef, doc, 0o600); err != nil {
			return fmt.Errorf("write order document: %w", err)
		}
		written = true
		return nil
	})
	if err != nil {
		if written {
			_ = os.Remove(o.DocumentRef)
		}
		return nil, fmt.Errorf("submit order: %w", err)
	}

	s.logger.Info(ctx, "order submitted", "login", u.Login, "order_id", id, "document", o.DocumentRef)
	return o, nil
}

func (s *orderService) List(ctx context.Context, login string) ([]models.Order, error) {
	return orders.NewSQLiteRepository(s.db).ListByLogin(ctx, login)
}
