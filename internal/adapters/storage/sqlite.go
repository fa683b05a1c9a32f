package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
	"modernc.org/sqlite"
)

// sqliteBackend keeps the document in projects, timers and favorites tables.
// Every write replaces all rows inside one transaction.
type sqliteBackend struct {
	db     *sql.DB
	dbPath string
}

// NewSQLite creates a store backed by a SQLite database and loads it.
func NewSQLite(ctx context.Context, dbPath string) (ports.Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A second connection to :memory: would see a different database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set WAL mode: %w", err)
		}
	}

	b := &sqliteBackend{db: db, dbPath: dbPath}
	if err := b.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return newRepository(ctx, b), nil
}

// NewMemory creates a new in-memory SQLite store for testing.
func NewMemory() (ports.Store, error) {
	return NewSQLite(context.Background(), ":memory:")
}

func (b *sqliteBackend) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS timers (
		project_id INTEGER NOT NULL,
		id INTEGER NOT NULL,
		start_time INTEGER NOT NULL,
		end_time INTEGER,
		position INTEGER NOT NULL,
		PRIMARY KEY (project_id, id),
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_timers_project ON timers(project_id, position);

	CREATE TABLE IF NOT EXISTS favorites (
		position INTEGER PRIMARY KEY,
		project_id INTEGER NOT NULL
	);
	`

	if _, err := b.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func (b *sqliteBackend) read(ctx context.Context) (document, error) {
	var doc document

	rows, err := b.db.QueryContext(ctx, `SELECT id, name FROM projects ORDER BY position`)
	if err != nil {
		return document{}, fmt.Errorf("failed to query projects: %w", err)
	}
	index := make(map[uint32]int)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			_ = rows.Close()
			return document{}, fmt.Errorf("failed to scan project: %w", err)
		}
		p.Timers = []domain.Timer{}
		index[p.ID] = len(doc.Projects)
		doc.Projects = append(doc.Projects, p)
	}
	if err := closeRows(rows); err != nil {
		return document{}, err
	}

	rows, err = b.db.QueryContext(ctx, `SELECT project_id, id, start_time, end_time FROM timers ORDER BY project_id, position`)
	if err != nil {
		return document{}, fmt.Errorf("failed to query timers: %w", err)
	}
	for rows.Next() {
		var projectID uint32
		var t domain.Timer
		var start int64
		var end sql.NullInt64
		if err := rows.Scan(&projectID, &t.ID, &start, &end); err != nil {
			_ = rows.Close()
			return document{}, fmt.Errorf("failed to scan timer: %w", err)
		}
		t.StartTime = uint64(start)
		if end.Valid {
			e := uint64(end.Int64)
			t.EndTime = &e
		}
		if i, ok := index[projectID]; ok {
			doc.Projects[i].Timers = append(doc.Projects[i].Timers, t)
		}
	}
	if err := closeRows(rows); err != nil {
		return document{}, err
	}

	rows, err = b.db.QueryContext(ctx, `SELECT project_id FROM favorites ORDER BY position`)
	if err != nil {
		return document{}, fmt.Errorf("failed to query favorites: %w", err)
	}
	for rows.Next() {
		var id uint32
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return document{}, fmt.Errorf("failed to scan favorite: %w", err)
		}
		doc.Favorites = append(doc.Favorites, id)
	}
	if err := closeRows(rows); err != nil {
		return document{}, err
	}

	return doc, nil
}

func (b *sqliteBackend) write(ctx context.Context, doc document) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{`DELETE FROM favorites`, `DELETE FROM timers`, `DELETE FROM projects`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear tables: %w", err)
		}
	}

	for pos, p := range doc.Projects {
		_, err := tx.ExecContext(ctx, `INSERT INTO projects (id, name, position) VALUES (?, ?, ?)`, p.ID, p.Name, pos)
		if isUniqueConstraintError(err) {
			return fmt.Errorf("duplicate project id %d: %w", p.ID, err)
		}
		if err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}

		for tpos, t := range p.Timers {
			var end sql.NullInt64
			if t.EndTime != nil {
				end = sql.NullInt64{Int64: int64(*t.EndTime), Valid: true}
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO timers (project_id, id, start_time, end_time, position) VALUES (?, ?, ?, ?, ?)`,
				p.ID, t.ID, int64(t.StartTime), end, tpos,
			)
			if isUniqueConstraintError(err) {
				return fmt.Errorf("duplicate timer id %d in project %d: %w", t.ID, p.ID, err)
			}
			if err != nil {
				return fmt.Errorf("failed to save timer: %w", err)
			}
		}
	}

	for pos, id := range doc.Favorites {
		if _, err := tx.ExecContext(ctx, `INSERT INTO favorites (position, project_id) VALUES (?, ?)`, pos, id); err != nil {
			return fmt.Errorf("failed to save favorite: %w", err)
		}
	}

	return tx.Commit()
}

func (b *sqliteBackend) path() string {
	return b.dbPath
}

func (b *sqliteBackend) close() error {
	return b.db.Close()
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	sqliteErr, ok := err.(*sqlite.Error)
	// SQLITE_CONSTRAINT_PRIMARYKEY or SQLITE_CONSTRAINT_UNIQUE
	return ok && (sqliteErr.Code() == 1555 || sqliteErr.Code() == 2067)
}
