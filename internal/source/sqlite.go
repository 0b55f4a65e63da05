package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/deidaraiorek/termrank/internal/pipeline"
)

const DefaultTable = "reviews"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteDB reads review rows from an existing SQLite database.
type SQLiteDB struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteDB, error) {
	dsn, err := readOnlyDSN(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source database: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open source database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open source database: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// readOnlyDSN builds a read-only SQLite URI. The path is percent-encoded so
// '?' and '#' in file names are not read as URI delimiters.
func readOnlyDSN(dbPath string) (string, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", err
	}
	path := filepath.ToSlash(abs)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := url.URL{
		Scheme:   "file",
		Path:     path,
		RawQuery: "mode=ro",
	}
	return u.String(), nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) HasColumn(ctx context.Context, table, column string) (bool, error) {
	rows, err := sdb.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Texts returns column of every row of table in rowid order. NULL values
// become empty documents.
func (sdb *SQLiteDB) Texts(ctx context.Context, table, column string) ([]string, error) {
	if table == "" {
		table = DefaultTable
	}
	if column == "" {
		column = DefaultColumn
	}
	if !identifierPattern.MatchString(table) || !identifierPattern.MatchString(column) {
		return nil, fmt.Errorf("%w: %q.%q", ErrInvalidIdentifier, table, column)
	}

	ok, err := sdb.HasColumn(ctx, table, column)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w %q in table %s", ErrMissingColumn, column, table)
	}

	rows, err := sdb.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT "%s" FROM "%s" ORDER BY rowid`, column, table),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(texts)+1, err)
		}
		texts = append(texts, text.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}

	if len(texts) == 0 {
		return nil, pipeline.ErrNoDocuments
	}
	return texts, nil
}
