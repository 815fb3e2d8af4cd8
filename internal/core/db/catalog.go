package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/solatis/playcall/internal/rules"
	"github.com/solatis/playcall/internal/types"
)

/*
 * Catalog persistence.
 *
 * The rules table is the deploy-time override path: a catalog imported into
 * the database beats the embedded builtin at process start. Rows keep the
 * catalog's ordering in an explicit position column; conditions serialize
 * as a JSON document per row, schema-agnostic like the rest of the value
 * model.
 *
 * SaveCatalog replaces the stored catalog wholesale inside one
 * delete-then-insert sequence; partial imports are worse than stale ones.
 */

// ruleRow mirrors one rules table row.
type ruleRow struct {
	Domain     string `db:"domain"`
	RuleID     string `db:"rule_id"`
	Position   int    `db:"position"`
	Text       string `db:"text"`
	Priority   int    `db:"priority"`
	Conditions string `db:"conditions"`
}

// SaveCatalog replaces the stored catalog with c.
func SaveCatalog(q *Queries, c *rules.Catalog) error {
	if _, err := q.Exec("delete-all-rules"); err != nil {
		return fmt.Errorf("failed to clear rules: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	for _, domain := range c.Domains() {
		for position, r := range c.RulesFor(domain) {
			conditions, err := json.Marshal(r.Conditions)
			if err != nil {
				return fmt.Errorf("domain %q rule %q: failed to encode conditions: %w", domain, r.ID, err)
			}
			if _, err := q.Exec("insert-rule", domain, r.ID, position, r.Text, r.Priority, string(conditions), now); err != nil {
				return fmt.Errorf("domain %q rule %q: %w", domain, r.ID, err)
			}
		}
	}

	return nil
}

// LoadCatalog reconstructs a validated catalog from the rules table.
// Returns types.ErrNoCatalog when no rows exist so callers can fall back to
// the builtin.
func LoadCatalog(q *Queries) (*rules.Catalog, error) {
	var stored []ruleRow
	if err := q.Select("list-rules", &stored); err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	if len(stored) == 0 {
		return nil, types.ErrNoCatalog
	}

	domains := make(map[string][]types.Rule)
	for _, row := range stored {
		var conditions types.Conditions
		if row.Conditions != "" {
			if err := json.Unmarshal([]byte(row.Conditions), &conditions); err != nil {
				// Skip malformed row - continue processing others
				continue
			}
		}
		domains[row.Domain] = append(domains[row.Domain], types.Rule{
			ID:         row.RuleID,
			Text:       row.Text,
			Priority:   row.Priority,
			Conditions: conditions,
		})
	}

	return rules.NewCatalog(domains)
}
