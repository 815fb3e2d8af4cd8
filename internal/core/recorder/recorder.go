// Package recorder persists match passes for offline analysis.
package recorder

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/solatis/playcall/internal/core/db"
	"github.com/solatis/playcall/internal/types"
)

/*
 * Session data sink.
 *
 * Two outputs per recorded pass, each independently optional:
 *   - Database rows (passes + pass_suggestions) for queryable history
 *   - Per-day JSONL file under <data_dir>/passes for grep-friendly replay
 *
 * The database is the source of truth; JSONL is a best-effort debugging
 * aid and may contain passes the database insert rejected. Neither sink
 * failing stops the advisor loop: recording degrades with a warning and
 * the next cycle tries again.
 */

// PassRecord is one evaluated cycle: the snapshot consumed and the
// suggestions produced.
type PassRecord struct {
	PassID      types.PassID        `json:"pass_id"`
	Timestamp   time.Time           `json:"ts"`
	Domain      string              `json:"domain"`
	State       types.StateSnapshot `json:"state"`
	Suggestions []types.Suggestion  `json:"suggestions"`
}

// Recorder writes pass records to the configured sinks.
type Recorder struct {
	queries *db.Queries // nil disables the database sink
	dataDir string      // empty disables the JSONL sink
	logger  *slog.Logger

	jsonlMutexes map[string]*sync.Mutex
	mutexLock    sync.Mutex
}

// NewRecorder creates a recorder. queries may be nil and dataDir may be
// empty; with both unset every Record call is a no-op.
// Auto-creates the passes directory when a data dir is configured.
func NewRecorder(queries *db.Queries, dataDir string, logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dataDir != "" {
		passesDir := filepath.Join(dataDir, "passes")
		if err := os.MkdirAll(passesDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create passes directory: %w", err)
		}
	}

	return &Recorder{
		queries:      queries,
		dataDir:      dataDir,
		logger:       logger,
		jsonlMutexes: make(map[string]*sync.Mutex),
	}, nil
}

// Record persists one pass to the configured sinks. Best-effort: sink
// failures are logged and contained, never returned to the caller's loop.
func (r *Recorder) Record(rec PassRecord) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	if r.queries != nil {
		if err := r.insertPass(rec); err != nil {
			r.logger.Warn("pass database insert failed", "pass_id", rec.PassID, "error", err)
		}
	}

	if r.dataDir != "" {
		if err := r.appendJSONL(rec); err != nil {
			r.logger.Warn("pass JSONL append failed", "pass_id", rec.PassID, "error", err)
		}
	}
}

// insertPass writes the pass row and one row per suggestion.
func (r *Recorder) insertPass(rec PassRecord) error {
	state, err := json.Marshal(rec.State)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	createdAt := rec.Timestamp.UTC().Format(time.RFC3339)
	if _, err := r.queries.Exec("insert-pass",
		string(rec.PassID), rec.Domain, string(state), len(rec.Suggestions), createdAt,
	); err != nil {
		return err
	}

	for position, s := range rec.Suggestions {
		if _, err := r.queries.Exec("insert-pass-suggestion",
			string(rec.PassID), position, s.ID, s.Text, s.Priority,
		); err != nil {
			return fmt.Errorf("suggestion %d: %w", position, err)
		}
	}

	return nil
}

// appendJSONL appends the record to the day's JSONL file.
// All passes within one UTC day share a file, mutex-guarded per filename.
func (r *Recorder) appendJSONL(rec PassRecord) error {
	filename := filepath.Join(r.dataDir, "passes", rec.Timestamp.UTC().Format("2006-01-02")+".jsonl")
	mu := r.jsonlMutex(filename)

	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(rec)
}

// jsonlMutex returns the mutex for a filename, creating it if needed.
// The map grows by one entry per day, acceptable for a session-length
// process.
func (r *Recorder) jsonlMutex(filename string) *sync.Mutex {
	r.mutexLock.Lock()
	defer r.mutexLock.Unlock()

	if _, ok := r.jsonlMutexes[filename]; !ok {
		r.jsonlMutexes[filename] = &sync.Mutex{}
	}
	return r.jsonlMutexes[filename]
}
