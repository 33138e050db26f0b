package dialect

import "fmt"

// Dialect identifies one SMB protocol dialect. The underlying value is
// the token smbclient understands for "client min protocol" and
// "client max protocol", so a Dialect can be written into configuration
// and command-line options without translation.
//
// Design decision: We use a string-backed type rather than iota-based
// constants because:
//  1. The values double as the wire-level configuration tokens
//  2. YAML policy files can name dialects directly
//  3. Report output uses the same spelling operators know from smb.conf
type Dialect string

// Known SMB dialects, ordered oldest to newest.
const (
	Core     Dialect = "CORE"
	CorePlus Dialect = "COREPLUS"
	LANMAN1  Dialect = "LANMAN1"
	LANMAN2  Dialect = "LANMAN2"
	NT1      Dialect = "NT1"
	SMB202   Dialect = "SMB2_02"
	SMB210   Dialect = "SMB2_10"
	SMB222   Dialect = "SMB2_22"
	SMB224   Dialect = "SMB2_24"
	SMB300   Dialect = "SMB3_00"
	SMB302   Dialect = "SMB3_02"
	SMB310   Dialect = "SMB3_10"
	SMB311   Dialect = "SMB3_11"
)

// Any is the zero Dialect. A probe issued with Any does not pin the
// negotiated protocol, leaving negotiation to the posture's own bounds.
// It is used for the guest-access and credential-validation probes.
const Any Dialect = ""

// ordered lists every known dialect from oldest to newest.
// Matrix order and the posture protocol bounds both derive from it.
var ordered = []Dialect{
	Core, CorePlus, LANMAN1, LANMAN2, NT1,
	SMB202, SMB210, SMB222, SMB224,
	SMB300, SMB302, SMB310, SMB311,
}

// All returns every known dialect, ordered oldest to newest.
// The returned slice is a copy; callers may modify it freely.
func All() []Dialect {
	out := make([]Dialect, len(ordered))
	copy(out, ordered)
	return out
}

// Oldest returns the oldest known dialect.
func Oldest() Dialect {
	return ordered[0]
}

// Newest returns the newest known dialect.
func Newest() Dialect {
	return ordered[len(ordered)-1]
}

// String returns the smbclient configuration token for the dialect.
func (d Dialect) String() string {
	return string(d)
}

// Parse converts a configuration token into a Dialect.
// It returns ErrUnknownDialect wrapped with the offending token when the
// token does not name a known dialect.
func Parse(s string) (Dialect, error) {
	for _, d := range ordered {
		if string(d) == s {
			return d, nil
		}
	}
	return Any, fmt.Errorf("%w: %q", ErrUnknownDialect, s)
}
