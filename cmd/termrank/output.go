package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/deidaraiorek/termrank/internal/rank"
)

type rankOutput struct {
	Documents       int                  `json:"documents"`
	Terms           int                  `json:"terms"`
	SparseThreshold float64              `json:"sparse_threshold"`
	Ranking         []rank.TermFrequency `json:"ranking"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeRanking prints a table on terminals and tab-separated rows otherwise.
func writeRanking(w io.Writer, ranking []rank.TermFrequency) {
	if !isTerminal(w) {
		for _, tf := range ranking {
			fmt.Fprintf(w, "%s\t%d\t%d\n", tf.Term, tf.TotalCount, tf.DocumentCount)
		}
		return
	}
	fmt.Fprintln(w, renderRankingTable(ranking))
}

func renderRankingTable(ranking []rank.TermFrequency) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Term", "Count", "Documents"})

	for i, tf := range ranking {
		tw.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			tf.Term,
			strconv.Itoa(tf.TotalCount),
			strconv.Itoa(tf.DocumentCount),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
