package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/deidaraiorek/termrank/internal/pipeline"
	"github.com/deidaraiorek/termrank/internal/rank"
)

var ErrRunNotFound = errors.New("run not found")

// ReportDB stores finished pipeline results for later reporting.
type ReportDB struct {
	db *sql.DB
}

func NewReportDB(dbPath string) (*ReportDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open report database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	reportDB := &ReportDB{
		db: db,
	}

	if err := reportDB.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return reportDB, nil
}

func (rdb *ReportDB) initSchema() error {
	if _, err := rdb.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (rdb *ReportDB) Close() error {
	return rdb.db.Close()
}

// SaveRun writes documents, ranked terms and the pruned matrix of result in
// a single transaction.
func (rdb *ReportDB) SaveRun(ctx context.Context, runID string, sparse float64, result *pipeline.Result) error {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (run_id, sparse_threshold, document_count, term_count) VALUES (?, ?, ?, ?)",
		runID, sparse, len(result.Documents), len(result.Ranking),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", runID, err)
	}

	insertDocStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO documents (run_id, doc_id, raw_text, normalized_text, token_count) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insertDocStmt.Close()

	for _, doc := range result.Documents {
		if _, err := insertDocStmt.ExecContext(ctx, runID, doc.ID, doc.RawText, doc.NormalizedText, len(doc.Tokens)); err != nil {
			return fmt.Errorf("failed to save document %d: %w", doc.ID, err)
		}
	}

	insertTermStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO terms (run_id, term, rank, total_count, document_frequency) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insertTermStmt.Close()

	insertPostingStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO postings (term_id, doc_id, term_frequency) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer insertPostingStmt.Close()

	pruned := result.Pruned
	termIDs := make([]int64, pruned.NumTerms())
	for i, tf := range result.Ranking {
		res, err := insertTermStmt.ExecContext(ctx, runID, tf.Term, i+1, tf.TotalCount, tf.DocumentCount)
		if err != nil {
			return fmt.Errorf("failed to insert term %q: %w", tf.Term, err)
		}
		termID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		col, ok := pruned.Column(tf.Term)
		if !ok {
			return fmt.Errorf("term %q missing from pruned matrix", tf.Term)
		}
		termIDs[col] = termID
	}

	for doc := 0; doc < pruned.NumDocs(); doc++ {
		for _, cell := range pruned.Cells(doc) {
			if _, err := insertPostingStmt.ExecContext(ctx, termIDs[cell.Col], doc, cell.Count); err != nil {
				return fmt.Errorf("failed to insert posting for term %q: %w", pruned.Term(cell.Col), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (rdb *ReportDB) RunExists(ctx context.Context, runID string) (bool, error) {
	var exists bool
	err := rdb.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM runs WHERE run_id = ?)",
		runID,
	).Scan(&exists)
	return exists, err
}

// Ranking returns the stored ranking of runID in rank order.
func (rdb *ReportDB) Ranking(ctx context.Context, runID string) ([]rank.TermFrequency, error) {
	exists, err := rdb.RunExists(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}

	rows, err := rdb.db.QueryContext(ctx,
		"SELECT term, total_count, document_frequency FROM terms WHERE run_id = ? ORDER BY rank",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms: %w", err)
	}
	defer rows.Close()

	ranking := []rank.TermFrequency{}
	for rows.Next() {
		var tf rank.TermFrequency
		if err := rows.Scan(&tf.Term, &tf.TotalCount, &tf.DocumentCount); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		ranking = append(ranking, tf)
	}
	return ranking, rows.Err()
}

// TermPostings returns document id -> count for one stored term.
func (rdb *ReportDB) TermPostings(ctx context.Context, runID, term string) (map[int]int, error) {
	rows, err := rdb.db.QueryContext(ctx, `
		SELECT p.doc_id, p.term_frequency
		FROM postings p
		JOIN terms t ON t.term_id = p.term_id
		WHERE t.run_id = ? AND t.term = ?
		ORDER BY p.doc_id`,
		runID, term,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings: %w", err)
	}
	defer rows.Close()

	postings := make(map[int]int)
	for rows.Next() {
		var docID, freq int
		if err := rows.Scan(&docID, &freq); err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		postings[docID] = freq
	}
	return postings, rows.Err()
}

func (rdb *ReportDB) DocumentCount(ctx context.Context, runID string) (int, error) {
	var count int
	err := rdb.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE run_id = ?",
		runID,
	).Scan(&count)
	return count, err
}
