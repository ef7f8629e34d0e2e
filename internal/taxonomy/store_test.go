package taxonomy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreAppendAndReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := NewFileStore(dir)

	added, err := store.Append(ctx, KeyAssignees, "Sarah Wilson")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.Append(ctx, KeyAssignees, "Sarah Wilson")
	require.NoError(t, err)
	assert.False(t, added, "exact duplicates are refused")

	// case differs, so this is a distinct entry
	added, err = store.Append(ctx, KeyAssignees, "sarah wilson")
	require.NoError(t, err)
	assert.True(t, added)

	ok, err := store.Contains(ctx, KeyAssignees, "Sarah Wilson")
	require.NoError(t, err)
	assert.True(t, ok)

	// a fresh store over the same dir sees the persisted lists
	reopened := NewFileStore(dir)
	entries, err := reopened.Entries(ctx, KeyAssignees)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sarah Wilson", "sarah wilson"}, entries)
}

func TestFileStoreCorruptedFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyJobTasks+".json"), []byte("{not json"), 0o644))

	store := NewFileStore(dir)

	entries, err := store.Entries(context.Background(), KeyJobTasks)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// the list is usable again after the bad file is overwritten
	added, err := store.Append(context.Background(), KeyJobTasks, "Curtain Fitting")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestListsRejectBlankAndStandardTasks(t *testing.T) {
	lists := NewLists(NewFileStore(t.TempDir()))
	ctx := context.Background()

	added, err := lists.AddAssignee(ctx, "")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = lists.AddTask(ctx, "")
	require.NoError(t, err)
	assert.False(t, added)

	for _, standard := range StandardTasks {
		added, err = lists.AddTask(ctx, standard)
		require.NoError(t, err)
		assert.False(t, added, "standard task %q must not become a custom entry", standard)
	}

	added, err = lists.AddTask(ctx, "Curtain Fitting")
	require.NoError(t, err)
	assert.True(t, added)

	tasks, err := lists.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Curtain Fitting"}, tasks)
}

func TestListsKeepAssigneesAndTasksApart(t *testing.T) {
	lists := NewLists(NewFileStore(t.TempDir()))
	ctx := context.Background()

	_, err := lists.AddAssignee(ctx, "Sarah Wilson")
	require.NoError(t, err)
	_, err = lists.AddTask(ctx, "Curtain Fitting")
	require.NoError(t, err)

	assignees, err := lists.Assignees(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sarah Wilson"}, assignees)

	tasks, err := lists.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Curtain Fitting"}, tasks)
}
