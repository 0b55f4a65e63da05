package dtm

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidThreshold = errors.New("sparse threshold must be in (0, 1)")

// Cell is a non-zero entry of a matrix row.
type Cell struct {
	Col   int
	Count int
}

// Matrix is a sparse document-term count matrix. Rows are documents in input
// order, columns are terms in lexicographic order. Absent cells are zero.
type Matrix struct {
	terms     []string
	termIndex map[string]int
	rows      [][]Cell // sorted by Col, zero counts never stored
	docFreq   []int
}

func (m *Matrix) NumDocs() int {
	return len(m.rows)
}

func (m *Matrix) NumTerms() int {
	return len(m.terms)
}

// Terms returns the column labels in column order.
func (m *Matrix) Terms() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

func (m *Matrix) Term(col int) string {
	return m.terms[col]
}

// Column returns the column index of term.
func (m *Matrix) Column(term string) (int, bool) {
	col, ok := m.termIndex[term]
	return col, ok
}

// Cells returns the non-zero cells of row doc ordered by column, or nil when
// doc is out of range. The returned slice must not be modified.
func (m *Matrix) Cells(doc int) []Cell {
	if doc < 0 || doc >= len(m.rows) {
		return nil
	}
	return m.rows[doc]
}

func (m *Matrix) Count(doc int, term string) int {
	if doc < 0 || doc >= len(m.rows) {
		return 0
	}
	col, ok := m.termIndex[term]
	if !ok {
		return 0
	}
	row := m.rows[doc]
	i := sort.Search(len(row), func(i int) bool { return row[i].Col >= col })
	if i < len(row) && row[i].Col == col {
		return row[i].Count
	}
	return 0
}

// Row returns the term counts of one document. Out of range documents have
// an empty row.
func (m *Matrix) Row(doc int) map[string]int {
	row := m.Cells(doc)
	out := make(map[string]int, len(row))
	for _, c := range row {
		out[m.terms[c.Col]] = c.Count
	}
	return out
}

// DocumentFrequency is the number of documents in which term occurs.
func (m *Matrix) DocumentFrequency(term string) int {
	col, ok := m.termIndex[term]
	if !ok {
		return 0
	}
	return m.docFreq[col]
}

// DocumentFrequencies returns document frequency per column.
func (m *Matrix) DocumentFrequencies() []int {
	out := make([]int, len(m.docFreq))
	copy(out, m.docFreq)
	return out
}

// Total is the sum of every cell.
func (m *Matrix) Total() int {
	total := 0
	for _, row := range m.rows {
		for _, c := range row {
			total += c.Count
		}
	}
	return total
}

// ToMap renders the matrix as document id -> term -> count. Every document
// has an entry, empty when its row is all zero.
func (m *Matrix) ToMap() map[int]map[string]int {
	out := make(map[int]map[string]int, len(m.rows))
	for doc := range m.rows {
		out[doc] = m.Row(doc)
	}
	return out
}

// Sparsity is the fraction of documents in which the term at col is absent.
func (m *Matrix) Sparsity(col int) float64 {
	n := len(m.rows)
	if n == 0 {
		return 0
	}
	return float64(n-m.docFreq[col]) / float64(n)
}

// Prune keeps the terms whose sparsity is at most sparse. Rows are kept even
// when they end up empty, and a result with no columns is valid.
func (m *Matrix) Prune(sparse float64) (*Matrix, error) {
	if !(sparse > 0 && sparse < 1) {
		return nil, fmt.Errorf("prune with %v: %w", sparse, ErrInvalidThreshold)
	}

	remap := make([]int, len(m.terms))
	var terms []string
	var docFreq []int
	for col := range m.terms {
		if m.Sparsity(col) > sparse {
			remap[col] = -1
			continue
		}
		remap[col] = len(terms)
		terms = append(terms, m.terms[col])
		docFreq = append(docFreq, m.docFreq[col])
	}

	rows := make([][]Cell, len(m.rows))
	for doc, row := range m.rows {
		kept := make([]Cell, 0, len(row))
		for _, c := range row {
			if to := remap[c.Col]; to >= 0 {
				kept = append(kept, Cell{Col: to, Count: c.Count})
			}
		}
		rows[doc] = kept
	}

	return newMatrix(terms, rows, docFreq), nil
}

func newMatrix(terms []string, rows [][]Cell, docFreq []int) *Matrix {
	if terms == nil {
		terms = []string{}
	}
	if docFreq == nil {
		docFreq = []int{}
	}
	index := make(map[string]int, len(terms))
	for col, term := range terms {
		index[term] = col
	}
	return &Matrix{
		terms:     terms,
		termIndex: index,
		rows:      rows,
		docFreq:   docFreq,
	}
}
