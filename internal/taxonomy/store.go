// Package taxonomy keeps the user-grown assignee and job-task lists
// that back the scheduling dialog's autocomplete. The lists are a
// per-machine convenience cache, not canonical data; the default store
// is a JSON file, with a redis variant for shared deployments.
package taxonomy

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

const (
	KeyAssignees = "custom_assignees"
	KeyJobTasks  = "custom_job_tasks"
)

// StandardTasks are the fixed starter task names. They never get
// duplicated into the custom list.
var StandardTasks = []string{"Survey", "Delivery", "Installation"}

// Store holds one string list per key. Append reports whether the
// value was actually added; an exact (case-sensitive) duplicate is
// refused.
type Store interface {
	Entries(ctx context.Context, key string) ([]string, error)
	Contains(ctx context.Context, key, value string) (bool, error)
	Append(ctx context.Context, key, value string) (bool, error)
}

// Lists applies the dialog-submission policy on top of a Store:
// blank input is ignored and standard task names are never promoted
// to custom entries.
type Lists struct {
	store Store
}

func NewLists(store Store) *Lists {
	return &Lists{store: store}
}

func (l *Lists) Assignees(ctx context.Context) ([]string, error) {
	return l.store.Entries(ctx, KeyAssignees)
}

func (l *Lists) Tasks(ctx context.Context) ([]string, error) {
	return l.store.Entries(ctx, KeyJobTasks)
}

func (l *Lists) AddAssignee(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	return l.store.Append(ctx, KeyAssignees, name)
}

func (l *Lists) AddTask(ctx context.Context, name string) (bool, error) {
	if name == "" || slices.Contains(StandardTasks, name) {
		return false, nil
	}
	return l.store.Append(ctx, KeyJobTasks, name)
}

// FileStore persists each list as a JSON array in its own file under
// dir. Lists are loaded once at construction; a corrupted file is
// logged and treated as empty rather than crashing the planner.
type FileStore struct {
	dir string

	mu    sync.Mutex
	lists map[string][]string
}

func NewFileStore(dir string) *FileStore {
	s := &FileStore{
		dir:   dir,
		lists: make(map[string][]string),
	}
	for _, key := range []string{KeyAssignees, KeyJobTasks} {
		s.lists[key] = s.loadList(key)
	}
	return s
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) loadList(key string) []string {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("cannot read taxonomy list, starting empty", "key", key, "error", err)
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		slog.Warn("stored taxonomy list is corrupted, starting empty", "key", key, "error", err)
		return nil
	}
	return list
}

func (s *FileStore) Entries(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lists[key]))
	copy(out, s.lists[key])
	return out, nil
}

func (s *FileStore) Contains(_ context.Context, key, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.lists[key], value), nil
}

func (s *FileStore) Append(_ context.Context, key, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.lists[key], value) {
		return false, nil
	}
	updated := append(s.lists[key], value)

	data, err := json.Marshal(updated)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return false, err
	}

	s.lists[key] = updated
	return true, nil
}
