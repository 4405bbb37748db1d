package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/treekit/pkg/treepath"
)

// Schema of the SQLite backend. Each row is either an entry (key set) or
// a marker that records an empty group (key ''). path is the escaped
// group path; the root group has path ''. Row order is insertion order.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS prefs (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	path  TEXT NOT NULL,
	key   TEXT NOT NULL,
	value TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS prefs_path ON prefs(path);
`

// OpenSQLite opens (creating if needed) a SQLite store database.
// Use ":memory:" for a private in-memory database.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	// An in-memory database lives on a single connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// LoadSQLiteFile opens the database at path, reads it and closes it.
func LoadSQLiteFile(ctx context.Context, path string) (*Group, error) {
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return LoadSQLite(ctx, db)
}

// LoadSQLite reads the whole namespace from db.
func LoadSQLite(ctx context.Context, db *sql.DB) (*Group, error) {
	rows, err := db.QueryContext(ctx, `SELECT path, key, value FROM prefs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query prefs: %w", err)
	}
	defer rows.Close()

	root := New("")
	for rows.Next() {
		var path, key, value string
		if err := rows.Scan(&path, &key, &value); err != nil {
			return nil, fmt.Errorf("scan prefs: %w", err)
		}
		g := root
		for _, seg := range treepath.Parse(path) {
			g = g.AddGroup(seg)
		}
		if key != "" {
			g.Set(key, value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	return root, nil
}

// SaveSQLite replaces the contents of db with g in one transaction.
func SaveSQLite(ctx context.Context, db *sql.DB, g *Group) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM prefs`); err != nil {
		return fmt.Errorf("clear prefs: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO prefs (path, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var werr error
	g.Walk(func(c *Group) bool {
		path := escapedPath(c)
		if c != g && len(c.entries) == 0 {
			if _, err := stmt.ExecContext(ctx, path, "", ""); err != nil {
				werr = err
				return false
			}
		}
		for _, e := range c.entries {
			if e.Key == "" {
				werr = fmt.Errorf("group %q: empty key", c.Path())
				return false
			}
			if _, err := stmt.ExecContext(ctx, path, e.Key, e.Value); err != nil {
				werr = err
				return false
			}
		}
		return werr == nil
	})
	if werr != nil {
		return fmt.Errorf("insert prefs: %w", werr)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func escapedPath(g *Group) string {
	var names []string
	for n := g; n.parent != nil; n = n.parent {
		names = append([]string{n.name}, names...)
	}
	return treepath.Join(names)
}
