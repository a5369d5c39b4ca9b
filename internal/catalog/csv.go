package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/career-advisor/internal/types"
)

// CSVSource reads a catalog from a CSV file whose first record is the header.
type CSVSource struct {
	Path string
}

// Name returns the file path.
func (s *CSVSource) Name() string {
	return s.Path
}

// Read parses the whole file. Short records are padded with empty cells.
func (s *CSVSource) Read(ctx context.Context) (*Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &SourceError{Source: s.Path, Message: "failed to open file", Cause: err}
	}
	defer f.Close()

	table, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, &SourceError{Source: s.Path, Message: "failed to parse CSV", Cause: err}
	}
	return table, nil
}

// ReadCSV parses CSV from r. A reader with no header record is an error; a header
// with no data records yields an empty table.
func ReadCSV(ctx context.Context, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header record")
	}
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	table := &Table{Columns: columns}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(map[string]string, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// WriteCSV writes careers in catalog column order.
func WriteCSV(w io.Writer, careers []types.Career) error {
	table, err := ToTable(careers)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, name := range table.Columns {
			record[i] = row[name]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row[ColumnID], err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}
