// Package source supplies state snapshots to the advisor loop.
//
// Detection itself (screen capture, vision) is an external collaborator;
// this package is the boundary where its output enters the engine. The
// JSONL source stands in for a live detector: one JSON snapshot per line,
// from a file or stdin.
package source

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/solatis/playcall/internal/types"
)

// Source yields one StateSnapshot per advisor cycle.
// Next returns io.EOF when the feed is exhausted.
type Source interface {
	Next() (types.StateSnapshot, error)
	Close() error
}

// JSONLSource reads newline-delimited JSON snapshots from a reader.
// Undecodable lines are skipped with a warning rather than ending the
// feed; a detector glitch should cost one cycle, not the session.
type JSONLSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	logger  *slog.Logger
	line    int
}

// Snapshot lines stay small (tens of keys), but enemy position lists can
// stretch a line; 1MB leaves ample headroom.
const maxLineBytes = 1024 * 1024

// OpenJSONL opens a snapshot feed from a file path, or stdin for "-".
func OpenJSONL(path string, logger *slog.Logger) (*JSONLSource, error) {
	if path == "-" {
		return NewJSONL(os.Stdin, logger), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot feed: %w", err)
	}
	s := NewJSONL(f, logger)
	s.closer = f
	return s, nil
}

// NewJSONL wraps a reader as a snapshot feed.
func NewJSONL(r io.Reader, logger *slog.Logger) *JSONLSource {
	if logger == nil {
		logger = slog.Default()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &JSONLSource{scanner: scanner, logger: logger}
}

// Next returns the next decodable snapshot, or io.EOF when the feed ends.
func (s *JSONLSource) Next() (types.StateSnapshot, error) {
	for s.scanner.Scan() {
		s.line++
		raw := s.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		snap, err := types.ParseSnapshot(raw)
		if err != nil {
			s.logger.Warn("skipping undecodable snapshot line", "line", s.line, "error", err)
			continue
		}
		return snap, nil
	}

	if err := s.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Close releases the underlying file, if any.
func (s *JSONLSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
