package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/fire-map-etl/internal/domain"
)

func readCSV(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, err
	}
	defer f.Close()

	return parseCSV(f)
}

// parseCSV reads a header row followed by data rows. Ragged rows are
// accepted; short rows read as empty trailing cells.
func parseCSV(r io.Reader) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.Table{}, errors.New("empty file")
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rec)
	}

	return domain.Table{Header: header, Rows: rows}, nil
}

// WriteCSV writes t as a CSV file at path.
func WriteCSV(path string, t domain.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
