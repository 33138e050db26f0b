package dialect

// Entry pairs a dialect with the outcome a securely configured server
// should produce when a client offers exactly that dialect.
type Entry struct {
	// Dialect is the protocol dialect under test.
	Dialect Dialect

	// ExpectSupported is true when a secure server should accept the
	// dialect and false when it should refuse it.
	ExpectSupported bool
}

// Matrix is the ordered list of dialects the audit probes. Order is
// oldest to newest and affects report readability only; classification
// never inspects position.
type Matrix []Entry

// DefaultMatrix returns the built-in policy baseline: every dialect
// before SMB 2.1 should be refused, everything from SMB 2.1 on should
// be supported.
//
// Design decision: The baseline is data, not control flow. Extending or
// reshaping the policy means editing this table or supplying a policy
// file; the runner and the classifier never change.
func DefaultMatrix() Matrix {
	return Matrix{
		{Dialect: Core, ExpectSupported: false},
		{Dialect: CorePlus, ExpectSupported: false},
		{Dialect: LANMAN1, ExpectSupported: false},
		{Dialect: LANMAN2, ExpectSupported: false},
		{Dialect: NT1, ExpectSupported: false},
		{Dialect: SMB202, ExpectSupported: false},
		{Dialect: SMB210, ExpectSupported: true},
		{Dialect: SMB222, ExpectSupported: true},
		{Dialect: SMB224, ExpectSupported: true},
		{Dialect: SMB300, ExpectSupported: true},
		{Dialect: SMB302, ExpectSupported: true},
		{Dialect: SMB310, ExpectSupported: true},
		{Dialect: SMB311, ExpectSupported: true},
	}
}
