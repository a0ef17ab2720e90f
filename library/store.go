// Package library stores design documents in a SQLite database.
//
// Designs are keyed by their tiling ID. Saving a design whose ID is
// already present replaces it. Names are matched case-insensitively after
// Unicode normalisation, so "Café" and "CAFÉ" find the same entry.
package library

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gogpu/girih"
	"github.com/gogpu/girih/design"
	"github.com/gogpu/girih/prototype"
	"github.com/gogpu/girih/tiling"
)

// ErrNotFound is returned when no design has the requested ID.
var ErrNotFound = errors.New("library: design not found")

const schema = `
CREATE TABLE IF NOT EXISTS designs (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	folded  TEXT NOT NULL,
	author  TEXT NOT NULL DEFAULT '',
	body    TEXT NOT NULL,
	updated INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS designs_folded ON designs (folded);
`

// Entry describes a stored design.
type Entry struct {
	ID      uuid.UUID
	Name    string
	Author  string
	Updated time.Time
}

// Store is a design library backed by one SQLite file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the library at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("library: mkdir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("library: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("library: schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the design of p, replacing any design with the same
// tiling ID.
func (s *Store) Save(ctx context.Context, p *prototype.Prototype) (Entry, error) {
	var body bytes.Buffer
	if err := design.FromPrototype(p).Encode(&body); err != nil {
		return Entry{}, err
	}
	t := p.Tiling()
	e := Entry{ID: t.ID, Name: t.Name(), Author: t.Author, Updated: s.now().UTC()}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO designs (id, name, folded, author, body, updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			folded = excluded.folded,
			author = excluded.author,
			body = excluded.body,
			updated = excluded.updated
	`, e.ID.String(), e.Name, tiling.FoldName(e.Name), e.Author, body.String(), e.Updated.UnixMilli())
	if err != nil {
		return Entry{}, fmt.Errorf("library: save %s: %w", e.ID, err)
	}
	girih.Logger().Debug("library: saved", "id", e.ID, "name", e.Name, "bytes", body.Len())
	return e, nil
}

// Document returns the stored document for id.
func (s *Store) Document(ctx context.Context, id uuid.UUID) (*design.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM designs WHERE id = ?`, id.String()).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("library: load %s: %w", id, err)
	}
	return design.Decode(bytes.NewBufferString(body))
}

// Load rebuilds the prototype stored under id.
func (s *Store) Load(ctx context.Context, id uuid.UUID, opts ...prototype.Option) (*prototype.Prototype, error) {
	d, err := s.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.Prototype(opts...)
}

// List returns every entry, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, `SELECT id, name, author, updated FROM designs ORDER BY updated DESC, name`)
}

// Find returns the entries whose name matches name, ignoring case.
func (s *Store) Find(ctx context.Context, name string) ([]Entry, error) {
	return s.query(ctx, `SELECT id, name, author, updated FROM designs WHERE folded = ? ORDER BY updated DESC`,
		tiling.FoldName(name))
}

// Delete removes the design stored under id.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM designs WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("library: delete %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("library: query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			id      string
			updated int64
		)
		if err := rows.Scan(&id, &e.Name, &e.Author, &updated); err != nil {
			return nil, fmt.Errorf("library: scan: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("library: stored id %q: %w", id, err)
		}
		e.Updated = time.UnixMilli(updated).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
