package storage

const Schema = `
-- One row per pipeline invocation that was exported
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    sparse_threshold REAL NOT NULL,
    document_count INTEGER NOT NULL,
    term_count INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Input documents and their normalized form
CREATE TABLE IF NOT EXISTS documents (
    run_id TEXT NOT NULL,
    doc_id INTEGER NOT NULL,
    raw_text TEXT NOT NULL,
    normalized_text TEXT NOT NULL,
    token_count INTEGER NOT NULL,
    PRIMARY KEY (run_id, doc_id),
    FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

-- Ranked terms that survived sparsity pruning
CREATE TABLE IF NOT EXISTS terms (
    term_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    term TEXT NOT NULL,
    rank INTEGER NOT NULL,
    total_count INTEGER NOT NULL,
    document_frequency INTEGER NOT NULL,
    UNIQUE (run_id, term),
    FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
CREATE INDEX IF NOT EXISTS idx_terms_run_rank ON terms(run_id, rank);

-- Non-zero cells of the pruned document-term matrix
CREATE TABLE IF NOT EXISTS postings (
    term_id INTEGER NOT NULL,
    doc_id INTEGER NOT NULL,
    term_frequency INTEGER NOT NULL,
    PRIMARY KEY (term_id, doc_id),
    FOREIGN KEY (term_id) REFERENCES terms(term_id)
);
CREATE INDEX IF NOT EXISTS idx_postings_doc ON postings(doc_id);
`
