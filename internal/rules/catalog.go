// internal/rules/catalog.go
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/solatis/playcall/internal/types"
)

/*
 * Rule catalog: the static, per-domain ordered rule sets.
 *
 * A Catalog is constructed once, validated eagerly, and immutable
 * thereafter. Construction-time validation moves malformed-rule detection
 * to load time rather than evaluation time: unique non-empty ids per
 * domain, expressible condition values, bounded rule counts.
 *
 * Catalogs come from three places, all converging on NewCatalog:
 *   - Builtin(): embedded default rule sets (builtin.go)
 *   - ParseCatalog/LoadCatalogFile: deployment-provided JSON documents
 *   - db.LoadCatalog: rows synced from the rules table
 *
 * Unknown domains are not an error: RulesFor returns an empty sequence and
 * the engine yields no suggestions for that pass.
 */

// Catalog maps domain keys to their ordered rule sequences. Immutable after
// construction; safe for concurrent readers without locking.
type Catalog struct {
	domains map[string][]types.Rule
}

// NewCatalog validates and constructs a catalog from per-domain rule
// sequences. Input slices are copied; callers may reuse them afterwards.
func NewCatalog(domains map[string][]types.Rule) (*Catalog, error) {
	out := make(map[string][]types.Rule, len(domains))

	for domain, rs := range domains {
		if len(rs) > types.MaxRulesPerDomain {
			return nil, fmt.Errorf("domain %q: %w (%d rules, max %d)", domain, types.ErrTooManyRules, len(rs), types.MaxRulesPerDomain)
		}

		seen := make(map[string]struct{}, len(rs))
		copied := make([]types.Rule, len(rs))
		for i, r := range rs {
			if r.ID == "" {
				return nil, fmt.Errorf("domain %q rule %d: %w", domain, i, types.ErrEmptyRuleID)
			}
			if _, dup := seen[r.ID]; dup {
				return nil, fmt.Errorf("domain %q: %w: %q", domain, types.ErrDuplicateRuleID, r.ID)
			}
			seen[r.ID] = struct{}{}

			if err := r.Conditions.Validate(); err != nil {
				return nil, fmt.Errorf("domain %q rule %q: %w", domain, r.ID, err)
			}
			copied[i] = r
		}
		out[domain] = copied
	}

	return &Catalog{domains: out}, nil
}

// RulesFor returns the ordered rule sequence for a domain, or an empty
// sequence for an unknown domain. Never fails. The returned slice is shared
// catalog state; callers must not modify it.
func (c *Catalog) RulesFor(domain string) []types.Rule {
	return c.domains[domain]
}

// Domains returns the catalog's domain keys in sorted order.
func (c *Catalog) Domains() []string {
	keys := make([]string, 0, len(c.domains))
	for d := range c.domains {
		keys = append(keys, d)
	}
	sort.Strings(keys)
	return keys
}

// ParseCatalog decodes a JSON catalog document (domain key to ordered rule
// array) and validates it.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc map[string][]types.Rule
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(doc)
}

// LoadCatalogFile reads and parses a catalog JSON file.
// The deployment override path: rule sets change without code changes.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// MarshalJSON serializes the catalog back to the document format accepted
// by ParseCatalog. Round-trips through catalog export/import.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.domains)
}
