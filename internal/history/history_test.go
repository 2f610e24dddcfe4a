package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndRecentRuns(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "sub", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	started := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.RecordRun(Run{
			Directory:  "/media/batch",
			StartedAt:  started.Add(time.Duration(i) * time.Hour),
			FinishedAt: started.Add(time.Duration(i)*time.Hour + 30*time.Minute),
			Candidates: 10,
			Done:       8,
			Failed:     1,
			Skipped:    1,
			BytesIn:    1 << 30,
			BytesOut:   1 << 29,
		})
		if err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	// Newest first.
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Errorf("runs not newest-first: %v then %v", runs[0].StartedAt, runs[1].StartedAt)
	}
	if runs[0].Done != 8 || runs[0].BytesOut != 1<<29 {
		t.Errorf("run fields lost: %+v", runs[0])
	}
}

func TestRecentRunsEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %v", runs)
	}
}

func TestOpenIsReentrant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.RecordRun(Run{Directory: "/a", StartedAt: time.Now(), FinishedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	runs, err := second.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("ledger must survive reopen, got %d runs", len(runs))
	}
}
