package recorder

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/solatis/playcall/internal/core/db"
	"github.com/solatis/playcall/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecord(t *testing.T) PassRecord {
	t.Helper()
	snap, err := types.ParseSnapshot([]byte(`{"combat": true, "player_health": 42}`))
	if err != nil {
		t.Fatal(err)
	}
	return PassRecord{
		PassID:    types.NewPassID(),
		Timestamp: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Domain:    "valorant",
		State:     snap,
		Suggestions: []types.Suggestion{
			{ID: "exposed_warning", Text: "You are exposed! Find cover quickly", Priority: 2},
		},
	}
}

func TestRecorder_JSONLSink(t *testing.T) {
	dataDir := t.TempDir()
	rec, err := NewRecorder(nil, dataDir, discardLogger())
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	first := testRecord(t)
	second := testRecord(t)
	rec.Record(first)
	rec.Record(second)

	path := filepath.Join(dataDir, "passes", "2026-03-14.jsonl")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("day file not created: %v", err)
	}
	defer f.Close()

	var got []PassRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var pr PassRecord
		if err := json.Unmarshal(scanner.Bytes(), &pr); err != nil {
			t.Fatalf("undecodable line: %v", err)
		}
		got = append(got, pr)
	}

	if len(got) != 2 {
		t.Fatalf("day file has %d records, want 2", len(got))
	}
	if got[0].PassID != first.PassID || got[1].PassID != second.PassID {
		t.Errorf("pass ids = %v %v, want %v %v in order", got[0].PassID, got[1].PassID, first.PassID, second.PassID)
	}
	if got[0].Domain != "valorant" {
		t.Errorf("Domain = %q, want valorant", got[0].Domain)
	}
	if len(got[0].Suggestions) != 1 || got[0].Suggestions[0].ID != "exposed_warning" {
		t.Errorf("Suggestions = %v, want single exposed_warning", got[0].Suggestions)
	}
}

func TestRecorder_DatabaseSink(t *testing.T) {
	database, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "rec.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()
	if err := db.MigrateUp(database); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	queries, err := db.LoadQueries(database)
	if err != nil {
		t.Fatalf("LoadQueries failed: %v", err)
	}

	rec, err := NewRecorder(queries, "", discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	rec.Record(testRecord(t))

	var count int
	if err := queries.Get("count-passes", &count); err != nil {
		t.Fatalf("count-passes failed: %v", err)
	}
	if count != 1 {
		t.Errorf("pass count = %d, want 1", count)
	}
}

func TestRecorder_NoSinksNoOp(t *testing.T) {
	rec, err := NewRecorder(nil, "", discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	// Must not panic or create files.
	rec.Record(testRecord(t))
}

func TestRecorder_ZeroTimestampFilled(t *testing.T) {
	dataDir := t.TempDir()
	rec, err := NewRecorder(nil, dataDir, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	pr := testRecord(t)
	pr.Timestamp = time.Time{}
	rec.Record(pr)

	today := time.Now().UTC().Format("2006-01-02")
	if _, err := os.Stat(filepath.Join(dataDir, "passes", today+".jsonl")); err != nil {
		t.Errorf("expected record in today's file: %v", err)
	}
}
