package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbrock/avalia-o/model"
)

func validResponse(name string) model.Response {
	return model.Response{
		Name:        name,
		Email:       name + "@client.example",
		Location:    "Downtown branch",
		ServiceDate: "2026-03-10",
		Overall:     model.Good,
	}
}

func TestMemoryResponsesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryResponses()

	created, err := s.Create(ctx, validResponse("Ana"))
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.SubmittedAt.IsZero())

	second, err := s.Create(ctx, validResponse("Bruno"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// newest first
	assert.Equal(t, "Bruno", list[0].Name)
	assert.Equal(t, created, list[1])

	require.NoError(t, s.DeleteByID(ctx, created.ID))
	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bruno", list[0].Name)
}

func TestMemoryResponsesValidation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryResponses()

	missing := validResponse("Ana")
	missing.Email = ""
	_, err := s.Create(ctx, missing)
	assert.ErrorContains(t, err, "email is required")

	badLabel := validResponse("Ana")
	badLabel.Cleanliness = "Sparkling"
	_, err = s.Create(ctx, badLabel)
	assert.ErrorContains(t, err, "unknown rating")
}

func TestMemoryResponsesDeleteMissing(t *testing.T) {
	s := NewMemoryResponses()
	assert.ErrorIs(t, s.DeleteByID(context.Background(), 42), ErrNotFound)
}

func TestMemoryResponsesDeleteAll(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryResponses()

	for _, name := range []string{"Ana", "Bruno", "Clara"} {
		_, err := s.Create(ctx, validResponse(name))
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteAll(ctx))
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryActionItemsLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryActionItems()

	created, err := s.Create(ctx, model.ActionItem{
		Title:    "Improve floors",
		Priority: model.PriorityHigh,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	updated, err := s.UpdateStatus(ctx, created.ID, model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, updated.Status)

	_, err = s.UpdateStatus(ctx, created.ID, "archived")
	assert.ErrorContains(t, err, "unknown status")

	_, err = s.UpdateStatus(ctx, created.ID+1, model.StatusDone)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteByID(ctx, created.ID))
	assert.ErrorIs(t, s.DeleteByID(ctx, created.ID), ErrNotFound)
}

func TestMemoryActionItemsBatchIDsUnique(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryActionItems()
	// freeze the clock so every batch entry collides on the same base id
	fixed := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	batch := []model.ActionItem{
		{Title: "one", Priority: model.PriorityLow},
		{Title: "two", Priority: model.PriorityMedium},
		{Title: "three", Priority: model.PriorityHigh},
	}
	created, err := s.CreateBatch(ctx, batch)
	require.NoError(t, err)
	require.Len(t, created, 3)

	seen := map[int64]bool{}
	for _, item := range created {
		assert.False(t, seen[item.ID], "duplicate id %d", item.ID)
		seen[item.ID] = true
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
