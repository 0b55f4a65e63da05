package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deidaraiorek/termrank/internal/storage"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TERMRANK_LOG_LEVEL", "error")
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeReviews(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "reviews.csv")
	body := "id,text\n1,\"Great dress, not great fit.\"\n2,Love this dress!\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRankCommandPlainOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := runCommand(t, "rank", writeReviews(t, dir), "--top", "2")
	if err != nil {
		t.Fatalf("rank error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	expected := []string{"dress\t2\t2", "fit\t1\t1"}
	if len(lines) != len(expected) {
		t.Fatalf("output = %q, want %d lines", out, len(expected))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], expected[i])
		}
	}
}

func TestRankCommandJSONAndExport(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "report.db")

	out, err := runCommand(t, "rank", writeReviews(t, dir), "--json", "--sparse", "0.4", "--export", dbPath)
	if err != nil {
		t.Fatalf("rank error: %v", err)
	}

	var result rankOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %q", out)
	}
	if result.Documents != 2 || result.SparseThreshold != 0.4 {
		t.Errorf("unexpected summary: %+v", result)
	}
	if len(result.Ranking) != 1 || result.Ranking[0].Term != "dress" {
		t.Errorf("Ranking = %+v, want only dress", result.Ranking)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var runID string
	if err := db.QueryRow("SELECT run_id FROM runs").Scan(&runID); err != nil {
		t.Fatalf("exported run not found: %v", err)
	}

	reports, err := storage.NewReportDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reports.Close()
	count, err := reports.DocumentCount(context.Background(), runID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("DocumentCount = %d, want 2", count)
	}
}

func TestRankCommandMissingColumn(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := runCommand(t, "rank", writeReviews(t, dir), "--column", "body"); err == nil {
		t.Error("expected error for missing column")
	}
}

func TestRankCommandEmptyResult(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "stop.csv")
	if err := os.WriteFile(path, []byte("text\nthe\nand\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "rank", path)
	if err != nil {
		t.Fatalf("rank error: %v", err)
	}
	if !strings.Contains(out, "No terms left") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(out, "sparse_threshold: 0.99") {
		t.Errorf("config show output = %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "termrank ") {
		t.Errorf("version output = %q", out)
	}
}

func TestRenderRankingTable(t *testing.T) {
	got := strings.ToLower(renderRankingTable(nil))
	if !strings.Contains(got, "term") || !strings.Contains(got, "documents") {
		t.Errorf("table header missing:\n%s", got)
	}
}
