package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/deadbrock/avalia-o/config"
	"github.com/deadbrock/avalia-o/model"
)

// ErrNotFound is returned when a delete or update targets a record that is
// not in the collection.
var ErrNotFound = errors.New("record not found")

// Responses holds the submitted evaluations, newest first.
type Responses interface {
	List(ctx context.Context) ([]model.Response, error)
	// Create validates the submission, assigns the next sequential id and
	// the server timestamp, and prepends the record.
	Create(ctx context.Context, r model.Response) (model.Response, error)
	DeleteByID(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
}

// ActionItems holds remediation tasks, newest first.
type ActionItems interface {
	List(ctx context.Context) ([]model.ActionItem, error)
	// Create assigns a creation-timestamp-derived unique id and the
	// creation time, and prepends the item.
	Create(ctx context.Context, item model.ActionItem) (model.ActionItem, error)
	// CreateBatch persists several items at once, e.g. confirmed
	// generator proposals.
	CreateBatch(ctx context.Context, items []model.ActionItem) ([]model.ActionItem, error)
	UpdateStatus(ctx context.Context, id int64, status string) (model.ActionItem, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Stores bundles the two collections behind one handle.
type Stores struct {
	Responses   Responses
	ActionItems ActionItems

	close func() error
}

func (s Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open builds the store pair for the configured driver.
func Open(cfg config.Config) (Stores, error) {
	switch cfg.Storage {
	case "memory":
		return Stores{
			Responses:   NewMemoryResponses(),
			ActionItems: NewMemoryActionItems(),
		}, nil
	case "file":
		f := NewFileStore(cfg.FilePath)
		return Stores{
			Responses:   f.Responses(),
			ActionItems: f.ActionItems(),
		}, nil
	case "redis":
		r, err := OpenRedis(cfg.RedisURL)
		if err != nil {
			return Stores{}, fmt.Errorf("store.open.redis: %w", err)
		}
		return Stores{
			Responses:   r.Responses(),
			ActionItems: r.ActionItems(),
			close:       r.Close,
		}, nil
	case "sqlite":
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return Stores{}, fmt.Errorf("store.open.sqlite: %w", err)
		}
		return Stores{
			Responses:   db.Responses(),
			ActionItems: db.ActionItems(),
			close:       db.Close,
		}, nil
	}
	return Stores{}, fmt.Errorf("unknown storage driver %q", cfg.Storage)
}

// nextResponseID derives the next sequential id from the current list.
// Records are stored newest first, so the maximum must be searched, not
// peeked.
func nextResponseID(responses []model.Response) int {
	max := 0
	for _, r := range responses {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// uniqueItemID makes a millisecond-timestamp id unique within the list by
// bumping on collision, the same way batch inserts spread ids.
func uniqueItemID(base int64, items []model.ActionItem) int64 {
	id := base
	for {
		taken := false
		for _, it := range items {
			if it.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		id++
	}
}
