// Package loop drives the advisor cycle: snapshot in, suggestions out.
package loop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/solatis/playcall/internal/core/recorder"
	"github.com/solatis/playcall/internal/core/source"
	"github.com/solatis/playcall/internal/rules"
	"github.com/solatis/playcall/internal/types"
)

/*
 * Advisor loop lifecycle.
 *
 * Fixed-interval ticker pulling one snapshot per tick from the source,
 * evaluating it through the engine, rendering the ranked suggestions to
 * the output writer, and handing the pass to the recorder when one is
 * configured.
 *
 * Fault policy mirrors the engine's: a cycle fault logs, renders an empty
 * suggestion list for that tick, and the loop self-heals on the next tick
 * since every pass is independent and stateless. Run returns when the
 * source is exhausted (io.EOF) or the context is cancelled.
 */

// Output formats for rendered passes.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures a Loop.
type Options struct {
	Engine   *rules.Engine
	Source   source.Source
	Recorder *recorder.Recorder // optional
	Domain   string
	Interval time.Duration
	Output   io.Writer
	Format   string // FormatText or FormatJSON
	Logger   *slog.Logger
}

// Loop runs the advisor cycle until its source drains.
type Loop struct {
	opts Options
}

// New validates options and creates a loop.
func New(opts Options) (*Loop, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if opts.Source == nil {
		return nil, fmt.Errorf("source cannot be nil")
	}
	if opts.Output == nil {
		return nil, fmt.Errorf("output cannot be nil")
	}
	if opts.Domain == "" {
		return nil, fmt.Errorf("domain cannot be empty")
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %v", opts.Interval)
	}
	switch opts.Format {
	case FormatText, FormatJSON:
	case "":
		opts.Format = FormatText
	default:
		return nil, fmt.Errorf("unknown output format: %s", opts.Format)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Loop{opts: opts}, nil
}

// Run executes advisor cycles on the configured interval.
// Blocks until the source returns io.EOF, the source fails, or ctx is
// cancelled (graceful stop, returns nil).
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.opts.Logger.Info("advisor loop stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			done, err := l.cycle()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// cycle runs one pass. Returns done=true when the feed is exhausted.
func (l *Loop) cycle() (bool, error) {
	snap, err := l.opts.Source.Next()
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot feed failed: %w", err)
	}

	rec := recorder.PassRecord{
		PassID:      types.NewPassID(),
		Timestamp:   time.Now().UTC(),
		Domain:      l.opts.Domain,
		State:       snap,
		Suggestions: l.opts.Engine.GetSuggestions(snap, l.opts.Domain),
	}

	if err := l.render(rec); err != nil {
		// Display faults cost one cycle, never the session.
		l.opts.Logger.Warn("failed to render pass", "pass_id", rec.PassID, "error", err)
	}

	if l.opts.Recorder != nil {
		l.opts.Recorder.Record(rec)
	}

	return false, nil
}

// render writes one pass to the output writer in the configured format.
func (l *Loop) render(rec recorder.PassRecord) error {
	if l.opts.Format == FormatJSON {
		return json.NewEncoder(l.opts.Output).Encode(rec)
	}

	ts := rec.Timestamp.Format("15:04:05.000")
	if len(rec.Suggestions) == 0 {
		_, err := fmt.Fprintf(l.opts.Output, "%s [%s] no suggestions\n", ts, rec.Domain)
		return err
	}

	if _, err := fmt.Fprintf(l.opts.Output, "%s [%s]\n", ts, rec.Domain); err != nil {
		return err
	}
	for i, s := range rec.Suggestions {
		if _, err := fmt.Fprintf(l.opts.Output, "  %d. [p%d] %s (%s)\n", i+1, s.Priority, s.Text, s.ID); err != nil {
			return err
		}
	}
	return nil
}
