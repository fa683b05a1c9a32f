// Package storage provides file-backed implementations of the storage ports.
// The JSON backend is the canonical format; the SQLite backend keeps the
// same document in relational tables.
package storage

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
)

// Backend names a storage backend in configuration.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// document is the full persisted state.
type document struct {
	Projects  []domain.Project `json:"projects"`
	Favorites domain.Favorites `json:"favorites"`
}

// normalize replaces nil slices so they encode as [] rather than null.
func (d *document) normalize() {
	if d.Projects == nil {
		d.Projects = []domain.Project{}
	}
	for i := range d.Projects {
		if d.Projects[i].Timers == nil {
			d.Projects[i].Timers = []domain.Timer{}
		}
	}
	if d.Favorites == nil {
		d.Favorites = domain.Favorites{}
	}
}

// backend reads and writes a whole document.
type backend interface {
	read(ctx context.Context) (document, error)
	write(ctx context.Context, doc document) error
	path() string
	close() error
}

// repository implements ports.Store on top of a backend.
// It caches the collection in memory and rewrites the backend on every mutation.
type repository struct {
	mu        sync.Mutex
	backend   backend
	projects  []domain.Project
	favorites domain.Favorites
	now       func() time.Time
}

// Ensure repository implements ports.Store.
var _ ports.Store = (*repository)(nil)

func newRepository(ctx context.Context, b backend) *repository {
	r := &repository{
		backend: b,
		now:     time.Now,
	}
	r.Load(ctx)
	return r
}

// Open creates a store for the given backend, loading its current contents.
func Open(ctx context.Context, kind Backend, path string) (ports.Store, error) {
	switch kind {
	case BackendJSON, "":
		return NewJSON(ctx, path), nil
	case BackendSQLite:
		return NewSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// Load re-reads the backend. Any failure degrades to an empty collection.
func (r *repository) Load(ctx context.Context) ([]domain.Project, domain.Favorites) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.backend.read(ctx)
	if err != nil {
		log.Printf("storage: load %s: %v; starting empty", r.backend.path(), err)
		doc = document{}
	}
	doc.normalize()

	r.projects = doc.Projects
	r.favorites = doc.Favorites
	return domain.CloneProjects(r.projects), append(domain.Favorites{}, r.favorites...)
}

// Save replaces the collection and rewrites the backend.
func (r *repository) Save(ctx context.Context, projects []domain.Project, favorites domain.Favorites) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.projects = domain.CloneProjects(projects)
	r.favorites = append(domain.Favorites{}, favorites...)
	return r.persist(ctx)
}

// persist writes the cached state. The cache is kept even when the write fails.
func (r *repository) persist(ctx context.Context) error {
	doc := document{Projects: r.projects, Favorites: r.favorites}
	doc.normalize()
	if err := r.backend.write(ctx, doc); err != nil {
		log.Printf("storage: save %s: %v", r.backend.path(), err)
		return &domain.PersistError{Path: r.backend.path(), Err: err}
	}
	return nil
}

// Projects returns a deep copy of the cached collection.
func (r *repository) Projects(ctx context.Context) []domain.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.CloneProjects(r.projects)
}

// Favorites returns the favorite projects that still exist.
func (r *repository) Favorites(ctx context.Context) []domain.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.favorites.Filter(r.projects)
}

// FavoriteIDs returns a copy of the favorite id set.
func (r *repository) FavoriteIDs(ctx context.Context) domain.Favorites {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(domain.Favorites{}, r.favorites...)
}

// AddProject creates a project with a time-derived id and persists.
func (r *repository) AddProject(ctx context.Context, name string) (domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := domain.NewProject(domain.NextProjectID(r.projects, r.now()), name)
	if err != nil {
		return domain.Project{}, err
	}
	r.projects = append(r.projects, *p)
	return p.Clone(), r.persist(ctx)
}

// DeleteProject removes the project and its favorite entry, then persists.
func (r *repository) DeleteProject(ctx context.Context, id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := domain.FindProject(r.projects, id)
	if i < 0 {
		return fmt.Errorf("delete project %d: %w", id, domain.ErrProjectNotFound)
	}
	r.projects = append(r.projects[:i:i], r.projects[i+1:]...)
	r.favorites = r.favorites.Remove(id)
	return r.persist(ctx)
}

// EditProject replaces the stored project by value, then persists.
func (r *repository) EditProject(ctx context.Context, project domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := domain.FindProject(r.projects, project.ID)
	if i < 0 {
		return fmt.Errorf("edit project %d: %w", project.ID, domain.ErrProjectNotFound)
	}
	r.projects[i] = project.Clone()
	return r.persist(ctx)
}

// SetFavorites replaces the favorite set, then persists.
func (r *repository) SetFavorites(ctx context.Context, favorites domain.Favorites) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.favorites = append(domain.Favorites{}, favorites...)
	return r.persist(ctx)
}

// Path returns the backend location.
func (r *repository) Path() string {
	return r.backend.path()
}

// Close releases the backend.
func (r *repository) Close() error {
	return r.backend.close()
}
