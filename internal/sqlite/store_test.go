package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// setupStore opens a Store over a temporary data directory and closes it
// when the test finishes.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDataDir(t *testing.T) {
	dir := t.TempDir() + "/nested/data"
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.List(context.Background())
	assert.NoError(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestOperationsAfterClose(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	ctx := context.Background()

	_, err = s.List(ctx)
	assert.ErrorIs(t, err, types.ErrStoreClosed)

	_, err = s.Create(ctx, "too late")
	assert.ErrorIs(t, err, types.ErrStoreClosed)

	err = s.Delete(ctx, "some-id")
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestDataSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)
	created, err := s.Create(ctx, "persists")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	todos, err := s2.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, created.ID, todos[0].ID)
	assert.Equal(t, "persists", todos[0].Content)
}

func TestSubscribeReceivesChangeEvents(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	created, err := s.Create(ctx, "watched")
	require.NoError(t, err)

	done := true
	require.NoError(t, s.Update(ctx, created.ID, types.TodoUpdate{IsCompleted: &done}))
	require.NoError(t, s.Delete(ctx, created.ID))

	want := []types.ChangeEvent{
		{Op: types.OpInsert, ID: created.ID},
		{Op: types.OpUpdate, ID: created.ID},
		{Op: types.OpDelete, ID: created.ID},
	}
	for _, w := range want {
		select {
		case got := <-ch:
			assert.Equal(t, w, got)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %v", w)
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := setupStore(t)

	ch := s.Subscribe()
	s.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open, "unsubscribed channel should be closed")
}

func TestCloseClosesSubscribers(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	ch := s.Subscribe()
	require.NoError(t, s.Close())

	_, open := <-ch
	assert.False(t, open, "close should close subscriber channels")
}

func TestSlowSubscriberDoesNotBlockWriters(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	// Overflow the subscriber buffer without ever draining it.
	for i := 0; i < 40; i++ {
		_, err := s.Create(ctx, "item "+string(rune('a'+i%26)))
		require.NoError(t, err)
	}

	todos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 40)
}
