// Package state persists per-file processing status inside the scanned
// directory, so an interrupted batch resumes where it stopped.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName is the store's fixed dotfile name inside the scanned
// directory. It must be excluded from every media enumeration pass.
const FileName = ".timepress_state.json"

// Status is the last-known processing state of one file. Pending is
// implicit: no record, or a record whose status is not done.
type Status string

const (
	StatusProcessing        Status = "processing"
	StatusDone              Status = "done"
	StatusFailedCompression Status = "failed_compression"
	StatusFailedMetadata    Status = "failed_metadata"
	StatusFailedMove        Status = "failed_move"
	StatusSkippedExists     Status = "skipped_exists"
	StatusError             Status = "error"
)

// Record is the persisted status/timestamp/error triple for one file.
// Records are overwritten in place on every transition and never
// deleted — they are the audit trail for the directory.
type Record struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

type document struct {
	Files map[string]Record `json:"files"`
}

// Store reads and writes a directory's state file. Writes are
// load-modify-save under a mutex, so concurrent calls from one process
// are safe; there is no cross-process lock (the CLI takes a run-level
// flock instead).
type Store struct {
	mu  sync.Mutex
	now func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Load returns the filename→record mapping for dir. A missing or
// unparseable state file yields an empty mapping: corrupted state
// degrades to "reprocess everything", never to a failed run.
func (s *Store) Load(dir string) (map[string]Record, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return map[string]Record{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil || doc.Files == nil {
		return map[string]Record{}, nil
	}
	return doc.Files, nil
}

// Record writes the status for one filename, preserving all other
// records. Every transition hits disk immediately — no batching — so
// the file is always consistent with the last completed write.
func (s *Store) Record(dir, name string, status Status, errText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, _ := s.Load(dir)
	files[name] = Record{
		Status:    status,
		Timestamp: s.now(),
		Error:     errText,
	}

	data, err := json.MarshalIndent(document{Files: files}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0644)
}

// Done reports whether name is recorded as successfully processed.
func Done(files map[string]Record, name string) bool {
	rec, ok := files[name]
	return ok && rec.Status == StatusDone
}
