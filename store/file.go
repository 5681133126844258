package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deadbrock/avalia-o/log"
	"github.com/deadbrock/avalia-o/model"
)

// fileDocument is the single JSON document the file driver keeps on disk.
type fileDocument struct {
	Responses   []model.Response   `json:"responses"`
	ActionItems []model.ActionItem `json:"actionItems"`
}

// FileStore persists both collections in one JSON file. Every mutation
// reads the whole document, changes it and writes it back under a
// process-wide mutex, so concurrent requests cannot lose updates.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (f *FileStore) Responses() Responses     { return fileResponses{f} }
func (f *FileStore) ActionItems() ActionItems { return fileActionItems{f} }

// load reads the document. A missing file or malformed content yields the
// empty document, never an error: readers must always receive a valid,
// possibly empty, collection.
func (f *FileStore) load() (doc fileDocument, err error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileDocument{}, nil
	}
	if err != nil {
		return fileDocument{}, fmt.Errorf("store.file.read: %w", err)
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Warnf("store.file.decode: treating %s as empty: %s", f.path, err)
		return fileDocument{}, nil
	}
	return doc, nil
}

// save writes the document atomically via a temp file rename.
func (f *FileStore) save(doc fileDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store.file.encode: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("store.file.mkdir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("store.file.write: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("store.file.rename: %w", err)
	}
	return nil
}

func (f *FileStore) update(mutate func(*fileDocument) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	if err := mutate(&doc); err != nil {
		return err
	}
	return f.save(doc)
}

type fileResponses struct {
	f *FileStore
}

func (s fileResponses) List(ctx context.Context) ([]model.Response, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	doc, err := s.f.load()
	if err != nil {
		return nil, err
	}
	return doc.Responses, nil
}

func (s fileResponses) Create(ctx context.Context, r model.Response) (model.Response, error) {
	if err := r.Validate(); err != nil {
		return model.Response{}, err
	}

	err := s.f.update(func(doc *fileDocument) error {
		r.ID = nextResponseID(doc.Responses)
		r.SubmittedAt = s.f.now()
		doc.Responses = append([]model.Response{r}, doc.Responses...)
		return nil
	})
	if err != nil {
		return model.Response{}, err
	}
	return r, nil
}

func (s fileResponses) DeleteByID(ctx context.Context, id int) error {
	return s.f.update(func(doc *fileDocument) error {
		for i, r := range doc.Responses {
			if r.ID == id {
				doc.Responses = append(doc.Responses[:i], doc.Responses[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func (s fileResponses) DeleteAll(ctx context.Context) error {
	return s.f.update(func(doc *fileDocument) error {
		doc.Responses = nil
		return nil
	})
}

type fileActionItems struct {
	f *FileStore
}

func (s fileActionItems) List(ctx context.Context) ([]model.ActionItem, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	doc, err := s.f.load()
	if err != nil {
		return nil, err
	}
	return doc.ActionItems, nil
}

func (s fileActionItems) Create(ctx context.Context, item model.ActionItem) (model.ActionItem, error) {
	items, err := s.CreateBatch(ctx, []model.ActionItem{item})
	if err != nil {
		return model.ActionItem{}, err
	}
	return items[0], nil
}

func (s fileActionItems) CreateBatch(ctx context.Context, items []model.ActionItem) ([]model.ActionItem, error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	var created []model.ActionItem
	err := s.f.update(func(doc *fileDocument) error {
		for _, item := range items {
			item.ID = uniqueItemID(s.f.now().UnixMilli(), append(doc.ActionItems, created...))
			item.CreatedAt = s.f.now()
			if item.Status == "" {
				item.Status = model.StatusPending
			}
			created = append(created, item)
		}
		doc.ActionItems = append(append([]model.ActionItem{}, created...), doc.ActionItems...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s fileActionItems) UpdateStatus(ctx context.Context, id int64, status string) (item model.ActionItem, err error) {
	if !model.ValidStatus(status) {
		return model.ActionItem{}, fmt.Errorf("unknown status %q", status)
	}

	err = s.f.update(func(doc *fileDocument) error {
		for i := range doc.ActionItems {
			if doc.ActionItems[i].ID == id {
				doc.ActionItems[i].Status = status
				item = doc.ActionItems[i]
				return nil
			}
		}
		return ErrNotFound
	})
	return item, err
}

func (s fileActionItems) DeleteByID(ctx context.Context, id int64) error {
	return s.f.update(func(doc *fileDocument) error {
		for i, item := range doc.ActionItems {
			if item.ID == id {
				doc.ActionItems = append(doc.ActionItems[:i], doc.ActionItems[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
