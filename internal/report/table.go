package report

import (
	"fmt"
	"strconv"
	"time"
)

// floatPrecision is the number of decimals float cells render with.
const floatPrecision = 2

// Table is the tabular result of one section query.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row; values are matched to columns by position.
func (t *Table) Append(values ...any) {
	t.Rows = append(t.Rows, Row{columns: t.Columns, values: values})
}

// Head returns at most n leading rows; n <= 0 means all rows.
func (t *Table) Head(n int) []Row {
	if n <= 0 || n >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:n]
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Row is one result row with column-name access.
type Row struct {
	columns []string
	values  []any
}

// Value returns the raw value of col, or nil when the column is unknown.
func (r Row) Value(col string) any {
	for i, c := range r.columns {
		if c == col && i < len(r.values) {
			return r.values[i]
		}
	}
	return nil
}

// String returns col rendered as a display string.
func (r Row) String(col string) string {
	return FormatCell(r.Value(col))
}

// Float returns col as a number; non-numeric values yield 0.
func (r Row) Float(col string) float64 {
	switch v := r.Value(col).(type) {
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Values returns the raw row values in column order.
func (r Row) Values() []any { return r.values }

// Cells returns the row rendered as display strings in column order.
func (r Row) Cells() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = FormatCell(v)
	}
	return out
}

// FormatCell renders a database value for the HTML report. Floats are fixed
// to two decimals, so a 75% win rate renders as 75.00.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', floatPrecision, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.DateTime)
	default:
		return fmt.Sprint(x)
	}
}
