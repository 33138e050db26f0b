package dialect

import "errors"

// Policy loading errors.
// These are returned by Parse and LoadPolicy and support errors.Is()
// so the CLI can distinguish a malformed policy from a missing file.
var (
	// ErrUnknownDialect is returned when a token does not name a known
	// SMB dialect. The wrapped message carries the offending token.
	ErrUnknownDialect = errors.New("unknown SMB dialect")

	// ErrEmptyPolicy is returned when a policy file parses cleanly but
	// lists no dialects. An empty matrix would probe nothing and render
	// a misleading "no issues found" verdict.
	ErrEmptyPolicy = errors.New("policy file defines no dialects")

	// ErrDuplicateDialect is returned when a policy file lists the same
	// dialect twice. Every dialect must be probed exactly once.
	ErrDuplicateDialect = errors.New("policy file lists a dialect twice")

	// ErrPolicyNotFound is returned when an explicitly requested policy
	// file does not exist.
	ErrPolicyNotFound = errors.New("policy file not found")
)
