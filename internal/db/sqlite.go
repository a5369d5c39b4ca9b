package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jonathan/career-advisor/internal/catalog"
)

// SQLite is a catalog store backed by a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite %s: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// QueryTable returns every row of table as text, ordered by the first column.
func (s *SQLite) QueryTable(ctx context.Context, table string) ([]string, []map[string]string, error) {
	if err := checkIdentifier(table); err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT * FROM "`+table+`" ORDER BY 1`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []map[string]string
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row, err := formatRow(columns, values)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating %s: %w", table, err)
	}

	return columns, out, nil
}

// ReplaceTable creates table if needed and replaces its contents with t in one transaction.
func (s *SQLite) ReplaceTable(ctx context.Context, table string, t *catalog.Table) error {
	if err := checkIdentifier(table); err != nil {
		return err
	}
	quoted := `"` + table + `"`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, createTableSQL(quoted, false)); err != nil {
		return fmt.Errorf("failed to create %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoted); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	insert := insertSQL(quoted, false)
	for _, row := range t.Rows {
		if _, err := tx.ExecContext(ctx, insert, rowArgs(row)...); err != nil {
			return fmt.Errorf("failed to insert %s: %w", row[catalog.ColumnID], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
