package dtm

import (
	"sort"
)

// Builder collects per-document histograms. Set may be called concurrently
// as long as each document index is written by a single goroutine.
type Builder struct {
	hists []map[string]int
}

func NewBuilder(docs int) *Builder {
	return &Builder{hists: make([]map[string]int, docs)}
}

// Set records the histogram of document doc. Zero and negative counts are
// ignored.
func (b *Builder) Set(doc int, hist map[string]int) {
	row := make(map[string]int, len(hist))
	for term, count := range hist {
		if term == "" || count <= 0 {
			continue
		}
		row[term] = count
	}
	b.hists[doc] = row
}

// Matrix assembles the column space and the sparse rows. Documents that were
// never Set become all-zero rows.
func (b *Builder) Matrix() *Matrix {
	seen := make(map[string]struct{})
	for _, hist := range b.hists {
		for term := range hist {
			seen[term] = struct{}{}
		}
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for col, term := range terms {
		index[term] = col
	}

	docFreq := make([]int, len(terms))
	rows := make([][]Cell, len(b.hists))
	for doc, hist := range b.hists {
		row := make([]Cell, 0, len(hist))
		for term, count := range hist {
			col := index[term]
			row = append(row, Cell{Col: col, Count: count})
			docFreq[col]++
		}
		sort.Slice(row, func(i, j int) bool { return row[i].Col < row[j].Col })
		rows[doc] = row
	}

	return newMatrix(terms, rows, docFreq)
}

// Build is the single-goroutine form of NewBuilder, Set and Matrix.
func Build(hists []map[string]int) *Matrix {
	b := NewBuilder(len(hists))
	for doc, hist := range hists {
		b.Set(doc, hist)
	}
	return b.Matrix()
}
