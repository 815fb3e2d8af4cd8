package types

/*
 * Domain types for suggestion matching.
 *
 * Provides Rule and Conditions used by internal/rules for catalog
 * construction and evaluation. These types are storage-format agnostic;
 * JSON catalog documents and database rows both convert to them at the
 * loading boundary.
 *
 * Key types:
 *   - Rule: one declarative suggestion with matching conditions
 *   - Conditions: partial expectation over snapshot fields
 *
 * Dependencies: None (encoding/json via Value only)
 */

import "fmt"

// Conditions is a partial mapping from field name to expected value. An
// expected value is a scalar requiring exact equality, or a nested mapping
// requiring every listed sub-key to exist with an exactly equal scalar
// value. An empty mapping matches every snapshot.
type Conditions map[string]Value

// Validate checks that every expectation is representable by the matching
// contract: scalars and one-level nested objects of scalars only. Lists and
// nulls cannot be required and are rejected as malformed.
func (c Conditions) Validate() error {
	if len(c) > MaxConditionKeys {
		return fmt.Errorf("%w: %d condition keys (max %d)", ErrBadConditionValue, len(c), MaxConditionKeys)
	}
	for key, expected := range c {
		switch expected.Kind() {
		case KindBool, KindNumber, KindString:
			// scalar expectation
		case KindNested:
			sub := expected.NestedVal()
			if len(sub) > MaxNestedKeys {
				return fmt.Errorf("%w: %q has %d sub-keys (max %d)", ErrBadConditionValue, key, len(sub), MaxNestedKeys)
			}
			for subkey, subval := range sub {
				if !subval.Scalar() {
					return fmt.Errorf("%w: %q.%q is %s, want scalar", ErrBadConditionValue, key, subkey, subval.Kind())
				}
			}
		default:
			return fmt.Errorf("%w: %q is %s, want scalar or nested", ErrBadConditionValue, key, expected.Kind())
		}
	}
	return nil
}

// Rule is a complete declarative suggestion: a display text guarded by a
// condition predicate, ranked by priority (lower is more urgent, not
// required to be unique). ID is stable across evaluations and unique within
// a domain; it feeds logging and telemetry, never matching.
type Rule struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Priority   int        `json:"priority"`
	Conditions Conditions `json:"conditions"`
}

// Suggestion projects the rule fields shown to the consumer.
func (r Rule) Suggestion() Suggestion {
	return Suggestion{ID: r.ID, Text: r.Text, Priority: r.Priority}
}
