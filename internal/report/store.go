package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Store is a read-only connection to the tournament results database. The
// schema (matchups, games, turns) is owned by the tournament runner.
type Store struct {
	db *sqlx.DB
}

// OpenStore opens the SQLite file at path read-only. A missing file is an
// error rather than a freshly created empty database.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStoreOpen, path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreOpen, err)
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", "file:"+filepath.ToSlash(abs)+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStoreOpen, path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Store{db: db}, nil
}

// Query runs query and collects every row into a Table.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*Table, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: columns: %w", ErrQuery, err)
	}

	table := NewTable(cols...)
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrQuery, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate: %w", ErrQuery, err)
	}
	return table, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
