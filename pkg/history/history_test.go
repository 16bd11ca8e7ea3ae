package history

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenAt(filepath.Join(t.TempDir(), DefaultDBName))
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	return db
}

func TestRecordRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.RecordRun("amp", "https://example.com/", StatusIssues, 3, 1, "3 errors, 1 warning")
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if runID == 0 {
		t.Error("RecordRun() returned 0 run ID")
	}

	run, err := db.GetRunByID(runID)
	if err != nil {
		t.Fatalf("GetRunByID() error = %v", err)
	}
	if run.Tool != "amp" {
		t.Errorf("run.Tool = %q, want %q", run.Tool, "amp")
	}
	if run.Target != "https://example.com/" {
		t.Errorf("run.Target = %q, want %q", run.Target, "https://example.com/")
	}
	if run.Status != StatusIssues {
		t.Errorf("run.Status = %q, want %q", run.Status, StatusIssues)
	}
	if run.Errors != 3 || run.Warnings != 1 {
		t.Errorf("run counts = (%d, %d), want (3, 1)", run.Errors, run.Warnings)
	}
}

func TestListRuns_MostRecentFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, err := db.RecordRun("amp", "https://a.example/", StatusOK, 0, 0, "")
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	second, err := db.RecordRun("hreflang", "https://b.example/", StatusOK, 0, 0, "")
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	runs, err := db.ListRuns("", "", 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns() returned %d runs, want 2", len(runs))
	}
	if runs[0].RunID != second || runs[1].RunID != first {
		t.Errorf("ListRuns() order = [%d, %d], want [%d, %d]",
			runs[0].RunID, runs[1].RunID, second, first)
	}
}

func TestListRuns_Filters(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.RecordRun("amp", "https://a.example/", StatusOK, 0, 0, ""); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if _, err := db.RecordRun("feed", "https://b.example/feed.xml", StatusFailed, 1, 0, ""); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if _, err := db.RecordRun("feed", "https://c.example/rss", StatusOK, 0, 0, ""); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	byTool, err := db.ListRuns("feed", "", 0)
	if err != nil {
		t.Fatalf("ListRuns(tool) error = %v", err)
	}
	if len(byTool) != 2 {
		t.Errorf("ListRuns(feed) returned %d runs, want 2", len(byTool))
	}

	byTarget, err := db.ListRuns("", "b.example", 0)
	if err != nil {
		t.Fatalf("ListRuns(target) error = %v", err)
	}
	if len(byTarget) != 1 {
		t.Fatalf("ListRuns(b.example) returned %d runs, want 1", len(byTarget))
	}
	if byTarget[0].Tool != "feed" {
		t.Errorf("filtered run tool = %q, want %q", byTarget[0].Tool, "feed")
	}

	limited, err := db.ListRuns("", "", 1)
	if err != nil {
		t.Fatalf("ListRuns(limit) error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("ListRuns(limit=1) returned %d runs, want 1", len(limited))
	}
}

func TestOpenAt_SchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDBName)

	db, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	if _, err := db.RecordRun("serp", "example title", StatusOK, 0, 0, ""); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	db.Close()

	reopened, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt() reopen error = %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.ListRuns("", "", 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("ListRuns() after reopen returned %d runs, want 1", len(runs))
	}
}
