package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deidaraiorek/termrank/internal/pipeline"
)

const DefaultColumn = "text"

var (
	ErrMissingColumn     = fmt.Errorf("%w: missing text column", pipeline.ErrInput)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported source format", pipeline.ErrInput)
	ErrInvalidIdentifier = fmt.Errorf("%w: invalid table or column name", pipeline.ErrInput)
)

type Options struct {
	// Column holds the document text. Defaults to "text".
	Column string
	// Table is the SQLite table to read. Defaults to "reviews".
	Table string
}

func (o Options) column() string {
	if o.Column == "" {
		return DefaultColumn
	}
	return o.Column
}

// Load reads the documents of the file at path, choosing the reader by
// extension. Row order is preserved.
func Load(ctx context.Context, path string, opts Options) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		texts, err := ReadCSV(f, opts.column())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return texts, nil
	case ".db", ".sqlite", ".sqlite3":
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		texts, err := db.Texts(ctx, opts.Table, opts.column())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return texts, nil
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// ReadCSV returns the named column of every data row. The first row is the
// header. Rows shorter than the header contribute an empty document.
func ReadCSV(r io.Reader, column string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, pipeline.ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == column {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, column)
	}

	var texts []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(texts)+1, err)
		}
		if index < len(record) {
			texts = append(texts, record[index])
		} else {
			texts = append(texts, "")
		}
	}

	if len(texts) == 0 {
		return nil, pipeline.ErrNoDocuments
	}
	return texts, nil
}
