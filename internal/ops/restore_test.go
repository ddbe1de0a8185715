package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/item"
)

func TestRestore_InverseOfDelete(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	it := mustCreate(t, database, "testname", "100.99", 1)

	_, err := Delete(ctx, database, DeleteInput{ID: it.ID, Comment: "oops"})
	require.NoError(t, err)

	restored, err := Restore(ctx, database, RestoreInput{ID: it.ID})
	require.NoError(t, err)
	require.Equal(t, *it, *restored)

	items, deleted := tableSizes(t, database)
	require.Equal(t, 1, items)
	require.Equal(t, 0, deleted)

	rec, err := ReadOne(ctx, database, item.Items, it.ID)
	require.NoError(t, err)
	require.Equal(t, *it, rec)
}

func TestRestore_NotFound(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	it := mustCreate(t, database, "a", "1.00", 1)

	// Active items are not in deleted_items
	_, err := Restore(ctx, database, RestoreInput{ID: it.ID})
	require.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)

	_, err = Restore(ctx, database, RestoreInput{ID: 99})
	require.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)

	items, deleted := tableSizes(t, database)
	require.Equal(t, 1, items)
	require.Equal(t, 0, deleted)
}

func TestRestore_FaultRollsBack(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	it := mustCreate(t, database, "a", "1.00", 1)
	_, err := Delete(ctx, database, DeleteInput{ID: it.ID, Comment: "c"})
	require.NoError(t, err)

	injectFault(t, database, item.DeletedItems)

	_, err = Restore(ctx, database, RestoreInput{ID: it.ID})
	require.True(t, errors.Is(err, errors.ErrStorageFault), "got %v", err)

	items, deleted := tableSizes(t, database)
	require.Equal(t, 0, items)
	require.Equal(t, 1, deleted)
}

func TestRestore_IDNotReused(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	first := mustCreate(t, database, "a", "1.00", 1)
	_, err := Delete(ctx, database, DeleteInput{ID: first.ID})
	require.NoError(t, err)

	second := mustCreate(t, database, "b", "2.00", 2)
	require.NotEqual(t, first.ID, second.ID, "ids of deleted items must not be handed out again")

	// Restoring the first item cannot collide with the second
	_, err = Restore(ctx, database, RestoreInput{ID: first.ID})
	require.NoError(t, err)

	items, deleted := tableSizes(t, database)
	require.Equal(t, 2, items)
	require.Equal(t, 0, deleted)
}
