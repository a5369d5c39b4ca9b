package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-advisor/internal/catalog"
)

// QueryTable returns every row of table as text, ordered by the first column.
func (db *DB) QueryTable(ctx context.Context, table string) ([]string, []map[string]string, error) {
	if err := checkIdentifier(table); err != nil {
		return nil, nil, err
	}

	rows, err := db.pool.Query(ctx, "SELECT * FROM "+pgx.Identifier{table}.Sanitize()+" ORDER BY 1")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var out []map[string]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row: %w", err)
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
func (db *DB) ReplaceTable(ctx context.Context, table string, t *catalog.Table) error {
	if err := checkIdentifier(table); err != nil {
		return err
	}
	quoted := pgx.Identifier{table}.Sanitize()

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, createTableSQL(quoted, true)); err != nil {
		return fmt.Errorf("failed to create %s: %w", table, err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM "+quoted); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	insert := insertSQL(quoted, true)
	for _, row := range t.Rows {
		if _, err := tx.Exec(ctx, insert, rowArgs(row)...); err != nil {
			return fmt.Errorf("failed to insert %s: %w", row[catalog.ColumnID], err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
