package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deadbrock/avalia-o/model"
)

// MemoryResponses keeps the collection in process memory. Used as the
// no-op-persistence driver and as the test double for the HTTP layer.
type MemoryResponses struct {
	mu        sync.Mutex
	responses []model.Response
	now       func() time.Time
}

func NewMemoryResponses() *MemoryResponses {
	return &MemoryResponses{now: time.Now}
}

func (s *MemoryResponses) List(ctx context.Context) ([]model.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Response, len(s.responses))
	copy(out, s.responses)
	return out, nil
}

func (s *MemoryResponses) Create(ctx context.Context, r model.Response) (model.Response, error) {
	if err := r.Validate(); err != nil {
		return model.Response{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = nextResponseID(s.responses)
	r.SubmittedAt = s.now()
	s.responses = append([]model.Response{r}, s.responses...)
	return r, nil
}

func (s *MemoryResponses) DeleteByID(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.responses {
		if r.ID == id {
			s.responses = append(s.responses[:i], s.responses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryResponses) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses = nil
	return nil
}

// MemoryActionItems is the in-memory ActionItems counterpart.
type MemoryActionItems struct {
	mu    sync.Mutex
	items []model.ActionItem
	now   func() time.Time
}

func NewMemoryActionItems() *MemoryActionItems {
	return &MemoryActionItems{now: time.Now}
}

func (s *MemoryActionItems) List(ctx context.Context) ([]model.ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ActionItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryActionItems) Create(ctx context.Context, item model.ActionItem) (model.ActionItem, error) {
	items, err := s.CreateBatch(ctx, []model.ActionItem{item})
	if err != nil {
		return model.ActionItem{}, err
	}
	return items[0], nil
}

func (s *MemoryActionItems) CreateBatch(ctx context.Context, items []model.ActionItem) ([]model.ActionItem, error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]model.ActionItem, 0, len(items))
	for _, item := range items {
		item.ID = uniqueItemID(s.now().UnixMilli(), append(s.items, created...))
		item.CreatedAt = s.now()
		if item.Status == "" {
			item.Status = model.StatusPending
		}
		created = append(created, item)
	}
	s.items = append(created, s.items...)
	return created, nil
}

func (s *MemoryActionItems) UpdateStatus(ctx context.Context, id int64, status string) (model.ActionItem, error) {
	if !model.ValidStatus(status) {
		return model.ActionItem{}, fmt.Errorf("unknown status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			return s.items[i], nil
		}
	}
	return model.ActionItem{}, ErrNotFound
}

func (s *MemoryActionItems) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
