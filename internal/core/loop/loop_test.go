package loop

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/solatis/playcall/internal/core/recorder"
	"github.com/solatis/playcall/internal/core/source"
	"github.com/solatis/playcall/internal/rules"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine(t *testing.T) *rules.Engine {
	t.Helper()
	return rules.NewEngine(rules.Builtin(), rules.WithLogger(discardLogger()))
}

func TestNew_Validation(t *testing.T) {
	engine := testEngine(t)
	src := source.NewJSONL(strings.NewReader(""), discardLogger())
	var buf bytes.Buffer

	valid := Options{
		Engine:   engine,
		Source:   src,
		Domain:   "valorant",
		Interval: time.Millisecond,
		Output:   &buf,
		Logger:   discardLogger(),
	}
	if _, err := New(valid); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"nil engine", func(o *Options) { o.Engine = nil }},
		{"nil source", func(o *Options) { o.Source = nil }},
		{"nil output", func(o *Options) { o.Output = nil }},
		{"empty domain", func(o *Options) { o.Domain = "" }},
		{"zero interval", func(o *Options) { o.Interval = 0 }},
		{"unknown format", func(o *Options) { o.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			if _, err := New(opts); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRun_DrainsFeedAndStops(t *testing.T) {
	feed := `{"exposed": true}
{"team_money": "low", "round_time": "late"}
{}
`
	var buf bytes.Buffer
	l, err := New(Options{
		Engine:   testEngine(t),
		Source:   source.NewJSONL(strings.NewReader(feed), discardLogger()),
		Domain:   "valorant",
		Interval: time.Millisecond,
		Output:   &buf,
		Format:   FormatText,
		Logger:   discardLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "exposed_warning") {
		t.Errorf("output missing exposed_warning:\n%s", out)
	}
	if !strings.Contains(out, "default_tip") {
		t.Errorf("output missing default_tip for empty snapshot:\n%s", out)
	}
	if got := strings.Count(out, "[valorant]"); got != 3 {
		t.Errorf("rendered %d passes, want 3:\n%s", got, out)
	}
}

func TestRun_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{
		Engine:   testEngine(t),
		Source:   source.NewJSONL(strings.NewReader(`{"exposed": true}`+"\n"), discardLogger()),
		Domain:   "valorant",
		Interval: time.Millisecond,
		Output:   &buf,
		Format:   FormatJSON,
		Logger:   discardLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	scanner := bufio.NewScanner(&buf)
	if !scanner.Scan() {
		t.Fatal("no output line")
	}
	var rec recorder.PassRecord
	if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if rec.Domain != "valorant" {
		t.Errorf("Domain = %q, want valorant", rec.Domain)
	}
	if rec.PassID == "" {
		t.Error("PassID is empty")
	}
	if len(rec.Suggestions) == 0 || rec.Suggestions[0].ID != "exposed_warning" {
		t.Errorf("Suggestions = %v, want exposed_warning first", rec.Suggestions)
	}
}

func TestRun_ContextCancelGraceful(t *testing.T) {
	// A long interval keeps the loop parked in its select so cancellation
	// is observed before any cycle runs.
	var buf bytes.Buffer
	l, err := New(Options{
		Engine:   testEngine(t),
		Source:   source.NewJSONL(strings.NewReader(`{"combat": true}`+"\n"), discardLogger()),
		Domain:   "valorant",
		Interval: time.Hour,
		Output:   &buf,
		Logger:   discardLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after context cancellation")
	}
}
