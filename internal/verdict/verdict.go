package verdict

import "github.com/smbaudit/smbaudit/internal/dialect"

// Judgment is the line-level classification of one probe outcome.
//
// Design decision: We use a closed iota-based enum rather than strings
// so that the report layer switches over a fixed set of values and a
// new judgment kind cannot appear without the compiler noticing.
type Judgment int

const (
	// JudgeOK indicates the server behaved as the policy expects.
	JudgeOK Judgment = iota

	// JudgeInfo indicates the server refused a dialect the policy
	// expects it to support. This is surfaced to the operator but is
	// not a security warning and never raises the run-level flag.
	JudgeInfo

	// JudgeWarn indicates a security warning: the server accepted a
	// dialect it should refuse, or accepted any connection under the
	// weakened posture.
	JudgeWarn
)

// String returns a short human-readable name for the judgment.
func (j Judgment) String() string {
	switch j {
	case JudgeOK:
		return "ok"
	case JudgeInfo:
		return "info"
	case JudgeWarn:
		return "warning"
	default:
		return "unknown"
	}
}

// State accumulates the run-level warning flag. The flag is monotonic:
// once a warning judgment or guest access sets it, nothing clears it for
// the lifetime of the run.
//
// Design decision: The flag is an explicit value owned by the run and
// threaded through the classifier, not package-level state, so two runs
// in one process (or in one test) cannot observe each other.
type State struct {
	hadWarnings bool
}

// NewState returns a State with no warnings recorded.
func NewState() *State {
	return &State{}
}

// HadWarnings reports whether any warning has been recorded.
func (s *State) HadWarnings() bool {
	return s.hadWarnings
}

// RecordGuestAccess records that the server accepted a session without
// credentials under the hardened posture. Guest access is always a
// warning.
func (s *State) RecordGuestAccess() {
	s.hadWarnings = true
}

// ClassifyHardened classifies a hardened-posture outcome against the
// entry's policy expectation. Accepting a dialect marked
// should-not-support is a warning and raises the run-level flag;
// refusing a dialect marked should-support is informational only.
func (s *State) ClassifyHardened(e dialect.Entry, connected bool) Judgment {
	if connected == e.ExpectSupported {
		return JudgeOK
	}
	if connected {
		s.hadWarnings = true
		return JudgeWarn
	}
	return JudgeInfo
}

// ClassifyWeakened classifies a weakened-posture outcome. Any successful
// connection is a warning regardless of the dialect's policy tag: the
// weakened posture only ever connects when the server accepts legacy
// authentication.
func (s *State) ClassifyWeakened(connected bool) Judgment {
	if connected {
		s.hadWarnings = true
		return JudgeWarn
	}
	return JudgeOK
}
