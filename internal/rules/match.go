package rules

import (
	"fmt"
	"sort"

	"github.com/solatis/playcall/internal/types"
)

/*
 * Per-rule condition matching.
 *
 * Evaluates one rule's condition predicate against a snapshot with AND
 * semantics: every named key must hold. Short-circuits on the first failing
 * key; an optimization only, the outcome is identical without it.
 *
 * Matching contract:
 *   - Absent key: no match, regardless of other satisfied conditions
 *   - Scalar expectation: exact kind-and-value equality (no coercion)
 *   - Nested expectation vs nested field: every listed sub-key must exist
 *     with an exactly equal value; unlisted sub-keys are ignored
 *   - Nested expectation vs non-nested field: no match
 *   - Empty conditions: always matches (catch-all rules)
 *
 * Condition keys are visited in sorted order so the reported failing key is
 * deterministic across identical inputs (evaluation order stability).
 *
 * Malformed expectations (list or null condition values) are an error, not
 * a silent no-match: the caller decides the degradation, keeping the
 * failure mode a visible, testable branch.
 */

// Outcome reports one rule evaluation. FailedKey names the first condition
// key (sorted order) that did not hold; empty on match.
type Outcome struct {
	Matched   bool
	FailedKey string
}

// Match evaluates rule conditions against state.
// Returns an error only for expectations outside the matching contract;
// every well-formed rule yields a definite Outcome.
func Match(rule types.Rule, state types.StateSnapshot) (Outcome, error) {
	keys := make([]string, 0, len(rule.Conditions))
	for key := range rule.Conditions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		expected := rule.Conditions[key]

		holds, err := conditionHolds(key, expected, state)
		if err != nil {
			return Outcome{}, err
		}
		if !holds {
			return Outcome{FailedKey: key}, nil
		}
	}

	return Outcome{Matched: true}, nil
}

// conditionHolds checks a single (key, expected) pair against the snapshot.
func conditionHolds(key string, expected types.Value, state types.StateSnapshot) (bool, error) {
	actual, present := state[key]

	switch expected.Kind() {
	case types.KindBool, types.KindNumber, types.KindString:
		if !present {
			return false, nil
		}
		return actual.Equal(expected), nil

	case types.KindNested:
		if !present || actual.Kind() != types.KindNested {
			return false, nil
		}
		return nestedHolds(key, expected.NestedVal(), actual.NestedVal())

	default:
		return false, fmt.Errorf("%w: %q is %s", types.ErrBadConditionValue, key, expected.Kind())
	}
}

// nestedHolds requires every expected sub-key to exist in the field with an
// exactly equal scalar value. Sorted iteration for deterministic failure
// reporting.
func nestedHolds(key string, expected, actual map[string]types.Value) (bool, error) {
	subkeys := make([]string, 0, len(expected))
	for subkey := range expected {
		subkeys = append(subkeys, subkey)
	}
	sort.Strings(subkeys)

	for _, subkey := range subkeys {
		subval := expected[subkey]
		if !subval.Scalar() {
			return false, fmt.Errorf("%w: %q.%q is %s, want scalar", types.ErrBadConditionValue, key, subkey, subval.Kind())
		}
		got, ok := actual[subkey]
		if !ok || !got.Equal(subval) {
			return false, nil
		}
	}
	return true, nil
}
