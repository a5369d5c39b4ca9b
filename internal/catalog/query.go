package catalog

import (
	"context"
)

// RowQuerier returns every row of a database table as text keyed by column name.
type RowQuerier interface {
	QueryTable(ctx context.Context, table string) (columns []string, rows []map[string]string, err error)
}

// QuerySource reads the catalog from a database table.
type QuerySource struct {
	Kind    string // "postgres" or "sqlite", used in Name
	Table   string
	Querier RowQuerier
}

// Name returns kind:table.
func (s *QuerySource) Name() string {
	return s.Kind + ":" + s.Table
}

// Read queries the whole table.
func (s *QuerySource) Read(ctx context.Context) (*Table, error) {
	if s.Querier == nil {
		return nil, &SourceError{Source: s.Name(), Message: "no database connection"}
	}

	columns, rows, err := s.Querier.QueryTable(ctx, s.Table)
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "query failed", Cause: err}
	}
	return &Table{Columns: columns, Rows: rows}, nil
}
