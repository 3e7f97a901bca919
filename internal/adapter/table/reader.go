// Package table reads incident tables from CSV files, Excel workbooks and
// SQLite databases into a domain.Table.
package table

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/fire-map-etl/internal/domain"
)

// Options selects the data inside a multi-table source.
type Options struct {
	// Sheet is the workbook sheet to read; empty means the first sheet.
	Sheet string
	// SQLiteTable is the table queried in SQLite sources.
	SQLiteTable string
}

// Reader loads one table from a file path.
// It implements pipeline.Extractor.
type Reader struct {
	path   string
	opts   Options
	logger *slog.Logger
}

// NewReader creates a Reader for path. The format is chosen by extension.
func NewReader(path string, opts Options, logger *slog.Logger) *Reader {
	return &Reader{path: path, opts: opts, logger: logger}
}

// Extract reads the whole source. Open and parse failures are wrapped in
// domain.ErrInputUnreadable.
func (r *Reader) Extract(ctx context.Context) (domain.Table, error) {
	var (
		t   domain.Table
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(r.path)); ext {
	case ".csv", ".txt":
		t, err = readCSV(r.path)
	case ".xlsx", ".xlsm":
		t, err = readXLSX(r.path, r.opts.Sheet)
	case ".db", ".sqlite", ".sqlite3":
		t, err = readSQLite(ctx, r.path, r.opts.SQLiteTable)
	default:
		return domain.Table{}, fmt.Errorf("%w: unsupported file type %q", domain.ErrInputUnreadable, ext)
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: %s: %w", domain.ErrInputUnreadable, r.path, err)
	}

	t.Source = r.path
	r.logger.Debug("table read", "path", r.path, "columns", len(t.Header), "rows", len(t.Rows))
	return t, nil
}

// Write stores t at path in the format implied by its extension. It is the
// inverse of Reader.Extract and is used to produce fixtures.
func Write(ctx context.Context, path string, opts Options, t domain.Table) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return WriteCSV(path, t)
	case ".xlsx", ".xlsm":
		return WriteXLSX(path, opts.Sheet, t)
	case ".db", ".sqlite", ".sqlite3":
		return WriteSQLite(ctx, path, opts.SQLiteTable, t)
	default:
		return fmt.Errorf("unsupported file type %q", ext)
	}
}
