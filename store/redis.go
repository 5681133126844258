package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/deadbrock/avalia-o/log"
	"github.com/deadbrock/avalia-o/model"
)

const (
	redisResponsesKey   = "feedback:responses"
	redisActionItemsKey = "feedback:action_items"
)

// RedisStore keeps each collection as one JSON document under a single key,
// matching the managed-KV layout the service originally ran against.
// Mutations are read-modify-write cycles guarded by a process mutex; the
// service runs as a single writer.
type RedisStore struct {
	mu     sync.Mutex
	client *redis.Client
	now    func() time.Time
}

func OpenRedis(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &RedisStore{client: client, now: time.Now}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Responses() Responses     { return redisResponses{r} }
func (r *RedisStore) ActionItems() ActionItems { return redisActionItems{r} }

// getList decodes the JSON document under key into out. A missing key or
// malformed document leaves out empty.
func (r *RedisStore) getList(ctx context.Context, key string, out any) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store.redis.get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Warnf("store.redis.decode: treating %s as empty: %s", key, err)
	}
	return nil
}

func (r *RedisStore) setList(ctx context.Context, key string, list any) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("store.redis.encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("store.redis.set %s: %w", key, err)
	}
	return nil
}

type redisResponses struct {
	r *RedisStore
}

func (s redisResponses) List(ctx context.Context) ([]model.Response, error) {
	var responses []model.Response
	if err := s.r.getList(ctx, redisResponsesKey, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (s redisResponses) Create(ctx context.Context, resp model.Response) (model.Response, error) {
	if err := resp.Validate(); err != nil {
		return model.Response{}, err
	}

	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	var responses []model.Response
	if err := s.r.getList(ctx, redisResponsesKey, &responses); err != nil {
		return model.Response{}, err
	}

	resp.ID = nextResponseID(responses)
	resp.SubmittedAt = s.r.now()
	responses = append([]model.Response{resp}, responses...)

	if err := s.r.setList(ctx, redisResponsesKey, responses); err != nil {
		return model.Response{}, err
	}
	return resp, nil
}

func (s redisResponses) DeleteByID(ctx context.Context, id int) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	var responses []model.Response
	if err := s.r.getList(ctx, redisResponsesKey, &responses); err != nil {
		return err
	}

	for i, resp := range responses {
		if resp.ID == id {
			responses = append(responses[:i], responses[i+1:]...)
			return s.r.setList(ctx, redisResponsesKey, responses)
		}
	}
	return ErrNotFound
}

func (s redisResponses) DeleteAll(ctx context.Context) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if err := s.r.client.Del(ctx, redisResponsesKey).Err(); err != nil {
		return fmt.Errorf("store.redis.del %s: %w", redisResponsesKey, err)
	}
	return nil
}

type redisActionItems struct {
	r *RedisStore
}

func (s redisActionItems) List(ctx context.Context) ([]model.ActionItem, error) {
	var items []model.ActionItem
	if err := s.r.getList(ctx, redisActionItemsKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s redisActionItems) Create(ctx context.Context, item model.ActionItem) (model.ActionItem, error) {
	items, err := s.CreateBatch(ctx, []model.ActionItem{item})
	if err != nil {
		return model.ActionItem{}, err
	}
	return items[0], nil
}

func (s redisActionItems) CreateBatch(ctx context.Context, items []model.ActionItem) ([]model.ActionItem, error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	var existing []model.ActionItem
	if err := s.r.getList(ctx, redisActionItemsKey, &existing); err != nil {
		return nil, err
	}

	created := make([]model.ActionItem, 0, len(items))
	for _, item := range items {
		item.ID = uniqueItemID(s.r.now().UnixMilli(), append(existing, created...))
		item.CreatedAt = s.r.now()
		if item.Status == "" {
			item.Status = model.StatusPending
		}
		created = append(created, item)
	}

	existing = append(append([]model.ActionItem{}, created...), existing...)
	if err := s.r.setList(ctx, redisActionItemsKey, existing); err != nil {
		return nil, err
	}
	return created, nil
}

func (s redisActionItems) UpdateStatus(ctx context.Context, id int64, status string) (model.ActionItem, error) {
	if !model.ValidStatus(status) {
		return model.ActionItem{}, fmt.Errorf("unknown status %q", status)
	}

	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	var items []model.ActionItem
	if err := s.r.getList(ctx, redisActionItemsKey, &items); err != nil {
		return model.ActionItem{}, err
	}

	for i := range items {
		if items[i].ID == id {
			items[i].Status = status
			if err := s.r.setList(ctx, redisActionItemsKey, items); err != nil {
				return model.ActionItem{}, err
			}
			return items[i], nil
		}
	}
	return model.ActionItem{}, ErrNotFound
}

func (s redisActionItems) DeleteByID(ctx context.Context, id int64) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	var items []model.ActionItem
	if err := s.r.getList(ctx, redisActionItemsKey, &items); err != nil {
		return err
	}

	for i, item := range items {
		if item.ID == id {
			items = append(items[:i], items[i+1:]...)
			return s.r.setList(ctx, redisActionItemsKey, items)
		}
	}
	return ErrNotFound
}
