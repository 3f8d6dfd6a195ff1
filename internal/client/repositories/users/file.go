package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/filex"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

const filePerm = 0o600

// FileRepository stores the collection in a single JSON file.
type FileRepository struct {
	path   string
	logger logging.Logger
}

func NewFileRepository(path string, logger logging.Logger) *FileRepository {
	if logger == nil {
		logger = logging.Nop()
	}
	return &FileRepository{path: path, logger: logger.With("store", path)}
}

// Path returns the backing file path.
func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) Load(ctx context.Context) (*models.Collection, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug(ctx, "store file absent, starting empty")
			return models.NewCollection(), nil
		}
		return models.NewCollection(), fmt.Errorf("read %s: %w: %w", r.path, common.ErrPersistence, err)
	}

	var raws []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return models.NewCollection(), fmt.Errorf("decode %s: %w: %w", r.path, common.ErrPersistence, err)
	}

	c := models.NewCollection()
	for i, raw := range raws {
		if raw == nil {
			return models.NewCollection(), fmt.Errorf("decode %s: %w: record %d is null", r.path, common.ErrPersistence, i)
		}
		u, warnings, err := decodeRecord(raw)
		if err != nil {
			return models.NewCollection(), fmt.Errorf("decode %s: %w: record %s: %w", r.path, common.ErrPersistence, recordRef(i, raw), err)
		}
		for _, w := range warnings {
			r.logger.Warn(ctx, "record defaulted", "record", recordRef(i, raw), "reason", w)
		}
		if len(u.Extra) > 0 {
			r.logger.Debug(ctx, "record carries extra keys", "login", u.Login, "keys", extraKeys(u))
		}
		c.Append(u)
	}

	r.logger.Debug(ctx, "store loaded", "users", c.Len())
	return c, nil
}

func (r *FileRepository) Save(ctx context.Context, c *models.Collection) error {
	raws := make([]map[string]json.RawMessage, 0, c.Len())
	for _, u := range c.Users {
		raw, err := encodeRecord(u)
		if err != nil {
			return fmt.Errorf("encode %s: %w: %w", u.Login, common.ErrPersistence, err)
		}
		raws = append(raws, raw)
	}

	data, err := json.MarshalIndent(raws, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w: %w", r.path, common.ErrPersistence, err)
	}

	if err := filex.WriteFileAtomic(r.path, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w: %w", r.path, common.ErrPersistence, err)
	}

	r.logger.Debug(ctx, "store saved", "users", c.Len())
	return nil
}
