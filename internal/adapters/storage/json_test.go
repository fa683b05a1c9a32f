package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/tempo-cli/internal/domain"
)

const sampleFile = `{
  "projects": [
    {
      "id": 1,
      "name": "Alpha",
      "color": "red",
      "timers": [
        {"id": 1, "start_time": 1000, "end_time": 1600},
        {"id": 2, "start_time": 2000, "end_time": null}
      ]
    },
    {"id": 2, "name": "Beta", "timers": []}
  ],
  "favorites": [2, 77],
  "version": 3
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestJSON_LoadDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "empty file", content: ptr("")},
		{name: "whitespace only", content: ptr("  \n")},
		{name: "garbage", content: ptr("not json at all")},
		{name: "wrong shape", content: ptr(`{"projects": "nope"}`)},
		{name: "truncated", content: ptr(`{"projects": [{"id": 1, "na`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "projects.json")
			if tt.content != nil {
				path = writeFile(t, *tt.content)
			}

			store := NewJSON(context.Background(), path)
			projects, favorites := store.Load(context.Background())

			assert.NotNil(t, projects)
			assert.Empty(t, projects)
			assert.Empty(t, favorites)
		})
	}
}

func TestJSON_LoadIgnoresUnknownFields(t *testing.T) {
	store := NewJSON(context.Background(), writeFile(t, sampleFile))

	projects, favorites := store.Load(context.Background())
	require.Len(t, projects, 2)
	assert.Equal(t, "Alpha", projects[0].Name)
	require.Len(t, projects[0].Timers, 2)
	assert.True(t, projects[0].Timers[1].IsRunning())
	assert.Equal(t, domain.Favorites{2, 77}, favorites)

	// dangling id 77 is filtered, never an error
	favs := store.Favorites(context.Background())
	require.Len(t, favs, 1)
	assert.Equal(t, uint32(2), favs[0].ID)
}

func TestJSON_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, sampleFile)
	store := NewJSON(ctx, path)

	projects, favorites := store.Load(ctx)
	require.NoError(t, store.Save(ctx, projects, favorites))

	var want, got document
	require.NoError(t, json.Unmarshal([]byte(sampleFile), &want))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, want, got)
	assert.Contains(t, string(data), `"end_time": null`)
}

func TestJSON_SaveWritesEmptyArrays(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "projects.json")
	store := NewJSON(ctx, path)

	require.NoError(t, store.Save(ctx, []domain.Project{{ID: 5, Name: "Gamma"}}, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"timers": []`)
	assert.Contains(t, text, `"favorites": []`)
	assert.NotContains(t, text, "null")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is cleaned up after rename")
}

func TestJSON_EditProject(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, sampleFile)
	store := NewJSON(ctx, path)

	projects := store.Projects(ctx)
	renamed := projects[0].Clone()
	renamed.Name = "Alpha Prime"
	require.NoError(t, store.EditProject(ctx, renamed))

	reloaded := NewJSON(ctx, path).Projects(ctx)
	assert.Equal(t, "Alpha Prime", reloaded[0].Name)
	assert.Len(t, reloaded[0].Timers, 2, "timers are untouched by a rename")

	err := store.EditProject(ctx, domain.Project{ID: 999, Name: "Ghost"})
	assert.True(t, errors.Is(err, domain.ErrProjectNotFound))
}

func TestJSON_DeleteProject(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, sampleFile)
	store := NewJSON(ctx, path)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = store.DeleteProject(ctx, 999)
	assert.True(t, errors.Is(err, domain.ErrProjectNotFound))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a missing id leaves the file untouched")
	assert.Len(t, store.Projects(ctx), 2)

	require.NoError(t, store.DeleteProject(ctx, 2))
	projects, favorites := NewJSON(ctx, path).Load(ctx)
	require.Len(t, projects, 1)
	assert.Equal(t, uint32(1), projects[0].ID)
	assert.False(t, favorites.Contains(2), "deleted project leaves favorites")
}

func TestJSON_AddProject(t *testing.T) {
	ctx := context.Background()
	store := NewJSON(ctx, filepath.Join(t.TempDir(), "projects.json"))

	first, err := store.AddProject(ctx, "First")
	require.NoError(t, err)
	second, err := store.AddProject(ctx, "Second")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	_, err = store.AddProject(ctx, "  ")
	assert.True(t, errors.Is(err, domain.ErrEmptyProjectName))
	assert.Len(t, store.Projects(ctx), 2)
}

func TestJSON_ProjectsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewJSON(ctx, writeFile(t, sampleFile))

	projects := store.Projects(ctx)
	projects[0].Name = "mutated"
	*projects[0].Timers[0].EndTime = 1

	fresh := store.Projects(ctx)
	assert.Equal(t, "Alpha", fresh[0].Name)
	assert.Equal(t, uint64(1600), *fresh[0].Timers[0].EndTime)
}

func TestJSON_SaveFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// parent is a regular file, so the directory cannot be created
	store := NewJSON(ctx, filepath.Join(blocker, "projects.json"))
	_, err := store.AddProject(ctx, "Alpha")

	var pe *domain.PersistError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.True(t, strings.HasSuffix(pe.Path, "projects.json"))
	assert.Len(t, store.Projects(ctx), 1, "in-memory state is not rolled back")
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Backend("redis"), "x")
	assert.Error(t, err)
}

func ptr(s string) *string {
	return &s
}
