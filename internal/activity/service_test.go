package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	store, err := docstore.New(t.TempDir())
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Store:    store,
		Locks:    lockmanager.New(),
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2024, 9, 1, 12, 30, 45, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func TestAppendRecordsFormattedEntry(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, "alice", "Login"))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, Entry{Datetime: "2024-09-01 12:30:45", Username: "alice", Type: "Login"}, entries[0])
}

func TestAppendIsAppendOnlyUnderConcurrency(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			return svc.Append(ctx, "alice", "Login")
		})
	}
	require.NoError(t, g.Wait())

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 50, "no append may be lost")
}

func TestClearReplacesWithEmptySequence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, "alice", "Login"))
	require.NoError(t, svc.Clear(ctx))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
}
