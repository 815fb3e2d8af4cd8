// internal/rules/engine.go
package rules

import (
	"log/slog"

	"github.com/solatis/playcall/internal/types"
)

/*
 * Match pass orchestration.
 *
 * The Engine composes catalog lookup, per-rule matching, and ranking into
 * one request/response call. It is a pure function of (state, domain,
 * catalog): no I/O, no shared mutable state, no suspension point. Safe for
 * concurrent callers since the injected catalog is read-only and each
 * snapshot is a freshly-constructed value.
 *
 * Containment policy: nothing escapes to the caller as a fault. A
 * malformed rule is logged and treated as non-matching for that rule only;
 * a whole-pass panic is recovered and degrades to an empty suggestion
 * list. The overlay always receives a (possibly empty) list and self-heals
 * on the next cycle.
 */

// Engine evaluates snapshots against an injected catalog and produces
// ranked, bounded suggestion lists.
type Engine struct {
	catalog *Catalog
	topK    int
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTopK overrides the suggestion bound (default types.DefaultTopK).
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithLogger sets the diagnostic logger for rule-by-rule match decisions.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine over an immutable catalog.
func NewEngine(catalog *Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		topK:    types.DefaultTopK,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetSuggestions evaluates every rule in the domain's catalog entry against
// state, retains full matches, and returns at most topK suggestions sorted
// by ascending priority (catalog order among ties). Unknown domains yield
// an empty list. Never panics and never returns an error to the caller.
func (e *Engine) GetSuggestions(state types.StateSnapshot, domain string) (out []types.Suggestion) {
	// Total-failure containment: degrade to empty rather than interrupt
	// the caller's display loop.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("match pass panicked", "domain", domain, "panic", r)
			out = []types.Suggestion{}
		}
	}()

	catalogRules := e.catalog.RulesFor(domain)

	var matched []types.Rule
	for _, rule := range catalogRules {
		outcome, err := Match(rule, state)
		if err != nil {
			// Malformed rule: visible branch, contained per-rule.
			e.logger.Warn("rule evaluation failed",
				"domain", domain,
				"rule", rule.ID,
				"error", err,
			)
			continue
		}
		if !outcome.Matched {
			e.logger.Debug("rule did not match",
				"domain", domain,
				"rule", rule.ID,
				"failed_key", outcome.FailedKey,
			)
			continue
		}
		e.logger.Debug("rule matched", "domain", domain, "rule", rule.ID, "priority", rule.Priority)
		matched = append(matched, rule)
	}

	return Rank(matched, e.topK)
}
