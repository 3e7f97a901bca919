package table

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/couchcryptid/fire-map-etl/internal/domain"
)

// DefaultSQLiteTable is queried when no table is configured.
const DefaultSQLiteTable = "incidents"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// readSQLite selects every column of table.
func readSQLite(ctx context.Context, path, table string) (domain.Table, error) {
	if table == "" {
		table = DefaultSQLiteTable
	}
	if !identRe.MatchString(table) {
		return domain.Table{}, fmt.Errorf("invalid table name %q", table)
	}

	if _, err := os.Stat(path); err != nil {
		return domain.Table{}, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return domain.Table{}, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return domain.Table{}, fmt.Errorf("columns: %w", err)
	}

	var out [][]string
	for rows.Next() {
		cells := make([]any, len(header))
		dest := make([]any, len(header))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return domain.Table{}, fmt.Errorf("scan row %d: %w", len(out)+1, err)
		}
		row := make([]string, len(header))
		for i, c := range cells {
			row[i] = sqliteCell(c)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("iterate rows: %w", err)
	}

	return domain.Table{Header: header, Rows: out}, nil
}

// sqliteCell renders a scanned value the way a CSV export would. NULL reads
// as "". The driver returns time.Time for DATE/DATETIME columns.
func sqliteCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}

// WriteSQLite creates table in a new or existing database at path and
// inserts every row of t. Header names must be valid identifiers.
func WriteSQLite(ctx context.Context, path, table string, t domain.Table) error {
	if table == "" {
		table = DefaultSQLiteTable
	}
	if !identRe.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	cols := make([]string, len(t.Header))
	marks := make([]string, len(t.Header))
	for i, h := range t.Header {
		if !identRe.MatchString(h) {
			return fmt.Errorf("invalid column name %q", h)
		}
		cols[i] = h + " TEXT"
		marks[i] = "?"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(cols, ", "))
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		args := make([]any, len(t.Header))
		for c := range args {
			if c < len(row) && row[c] != "" {
				args[c] = row[c]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
