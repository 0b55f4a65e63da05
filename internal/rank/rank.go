package rank

import (
	"runtime"
	"sort"
	"sync"

	"github.com/deidaraiorek/termrank/internal/dtm"
)

type TermFrequency struct {
	Term          string `json:"term"`
	TotalCount    int    `json:"total_count"`
	DocumentCount int    `json:"document_count"`
}

// minColumnsPerWorker keeps small matrices on one goroutine.
const minColumnsPerWorker = 512

// Rank sums every column of m and orders the terms by total count
// descending, then document count descending, then term ascending.
func Rank(m *dtm.Matrix) []TermFrequency {
	return RankWorkers(m, runtime.NumCPU())
}

// RankWorkers is Rank with an explicit bound on summing goroutines.
func RankWorkers(m *dtm.Matrix, workers int) []TermFrequency {
	totals := columnTotals(m, workers)
	docFreq := m.DocumentFrequencies()

	ranking := make([]TermFrequency, m.NumTerms())
	for col := range ranking {
		ranking[col] = TermFrequency{
			Term:          m.Term(col),
			TotalCount:    totals[col],
			DocumentCount: docFreq[col],
		}
	}

	sort.Slice(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if a.TotalCount != b.TotalCount {
			return a.TotalCount > b.TotalCount
		}
		if a.DocumentCount != b.DocumentCount {
			return a.DocumentCount > b.DocumentCount
		}
		return a.Term < b.Term
	})
	return ranking
}

// columnTotals splits the column space into contiguous ranges, one per
// goroutine. Each goroutine owns its slice of totals, so no merge lock is
// needed.
func columnTotals(m *dtm.Matrix, workers int) []int {
	cols := m.NumTerms()
	totals := make([]int, cols)
	if cols == 0 {
		return totals
	}

	if workers < 1 {
		workers = 1
	}
	if limit := (cols + minColumnsPerWorker - 1) / minColumnsPerWorker; workers > limit {
		workers = limit
	}

	chunk := (cols + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < cols; lo += chunk {
		hi := lo + chunk
		if hi > cols {
			hi = cols
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for doc := 0; doc < m.NumDocs(); doc++ {
				row := m.Cells(doc)
				i := sort.Search(len(row), func(i int) bool { return row[i].Col >= lo })
				for ; i < len(row) && row[i].Col < hi; i++ {
					totals[row[i].Col] += row[i].Count
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	return totals
}

// TopK returns the first k entries of ranking; k <= 0 returns all of them.
func TopK(ranking []TermFrequency, k int) []TermFrequency {
	if k <= 0 || k >= len(ranking) {
		return ranking
	}
	return ranking[:k]
}

func GrandTotal(ranking []TermFrequency) int {
	total := 0
	for _, tf := range ranking {
		total += tf.TotalCount
	}
	return total
}
