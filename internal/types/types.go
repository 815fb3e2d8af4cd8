// Package types provides domain models shared across playcall components.
//
// Zero-dependency design: types.go, value.go, rules.go and errors.go use only
// encoding/json so the matching engine stays free of transport and storage
// concerns. ID utilities in ids.go import uuid but are isolated for selective
// inclusion.
package types

import "encoding/json"

// StateSnapshot is the per-cycle mapping of observed game facts, produced by
// an external detector once per capture cycle. Any key may be absent; the
// matcher only inspects keys named by rule conditions. Treated as immutable
// for the duration of one match pass.
type StateSnapshot map[string]Value

// Suggestion is the ranked output projection of a matched rule.
type Suggestion struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Priority int    `json:"priority"`
}

// Resource limits enforced by catalog validation to keep a match pass small
// and bounded (cost is linear in rules x condition keys).
const (
	// DefaultTopK bounds the number of suggestions presented per pass.
	// Three items fit the overlay panel without occluding gameplay.
	DefaultTopK = 3

	// MaxRulesPerDomain limits catalog size per domain.
	// 1024 rules keeps a full pass well under a capture interval.
	MaxRulesPerDomain = 1024

	// MaxConditionKeys limits condition fan-out per rule.
	MaxConditionKeys = 32

	// MaxNestedKeys limits sub-keys in a nested condition expectation.
	MaxNestedKeys = 32
)

// ParseSnapshot decodes a JSON object into a StateSnapshot.
// Rejects top-level non-objects; nested structure becomes Value variants.
func ParseSnapshot(data []byte) (StateSnapshot, error) {
	var snap StateSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}
