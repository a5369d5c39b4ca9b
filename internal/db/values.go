package db

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// formatValue renders a driver value as the text a catalog cell would hold.
// NULL becomes the empty string; decoded JSON is re-encoded.
func formatValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int:
		return strconv.Itoa(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case bool:
		return strconv.FormatBool(val), nil
	case time.Time:
		return val.UTC().Format(time.RFC3339), nil
	case pgtype.Numeric:
		if !val.Valid {
			return "", nil
		}
		f, err := val.Float64Value()
		if err != nil {
			return "", fmt.Errorf("failed to convert numeric: %w", err)
		}
		return strconv.FormatFloat(f.Float64, 'f', -1, 64), nil
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON value: %w", err)
		}
		return string(data), nil
	default:
		return fmt.Sprint(val), nil
	}
}

func formatRow(columns []string, values []any) (map[string]string, error) {
	row := make(map[string]string, len(columns))
	for i, name := range columns {
		s, err := formatValue(values[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		row[name] = s
	}
	return row, nil
}
