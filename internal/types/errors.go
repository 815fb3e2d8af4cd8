package types

import "errors"

// Sentinel errors for playcall operations.
var (
	// ErrUnknownValueKind indicates a value outside the variant's range.
	ErrUnknownValueKind = errors.New("unknown value kind")

	// ErrBadConditionValue indicates a condition expectation the matching
	// contract cannot express (list, null, or over-limit fan-out).
	ErrBadConditionValue = errors.New("malformed condition value")

	// ErrEmptyRuleID indicates a catalog rule without an identifier.
	ErrEmptyRuleID = errors.New("rule id is empty")

	// ErrDuplicateRuleID indicates two rules sharing an id within a domain.
	ErrDuplicateRuleID = errors.New("duplicate rule id in domain")

	// ErrTooManyRules indicates a domain exceeding MaxRulesPerDomain.
	ErrTooManyRules = errors.New("too many rules in domain")

	// ErrNoCatalog indicates no catalog rows exist in the database.
	ErrNoCatalog = errors.New("no catalog stored")
)
