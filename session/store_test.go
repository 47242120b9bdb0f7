package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/models"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore()

	s := store.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, "New Chat", s.Title)
	assert.Empty(t, s.Messages)

	got, err := store.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePutStampsLastUpdated(t *testing.T) {
	store := NewMemoryStore()
	s := store.Create()
	created := s.LastUpdated

	s.Messages = append(s.Messages, models.ChatMessage{Role: models.RoleUser, Content: "hi"})
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, store.Put(s))

	got, err := store.Get(s.ID)
	require.NoError(t, err)
	assert.True(t, got.LastUpdated.After(created))
	require.Len(t, got.Messages, 1)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	s := store.Create()

	require.NoError(t, store.Delete(s.ID))
	_, err := store.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(s.ID), ErrNotFound)
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	first := store.Create()
	time.Sleep(5 * time.Millisecond)
	second := store.Create()

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	store.Create()
	store.Create()

	store.Clear()
	assert.Empty(t, store.List())
}
