package probe

import (
	"context"

	"github.com/smbaudit/smbaudit/internal/dialect"
	"github.com/smbaudit/smbaudit/internal/posture"
)

// Connector attempts one SMB session against a target host.
//
// Design decision: We use an interface rather than calling smbclient
// directly from the runner because:
//  1. The credential resolver issues the same probe for guest and
//     validation checks
//  2. Tests drive the full matrix with a deterministic fake
//  3. The external client can be swapped without touching matrix logic
type Connector interface {
	// Connect attempts to fully establish a session with host.
	//
	// conf carries the posture under which to negotiate. When d is a
	// concrete dialect, both the minimum and the maximum acceptable
	// protocol are pinned to exactly d, so a nil return means the
	// server accepted precisely that dialect. dialect.Any leaves
	// negotiation to the posture's own protocol bounds.
	//
	// authFile is the path to a credential artifact, or empty for an
	// anonymous (guest) attempt.
	//
	// A nil return means a session was fully established. Any error
	// means failure; callers must not distinguish transport errors
	// from protocol refusals.
	Connect(ctx context.Context, host string, d dialect.Dialect, conf *posture.Artifact, authFile string) error
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context, host string, d dialect.Dialect, conf *posture.Artifact, authFile string) error

// Connect calls f.
func (f ConnectorFunc) Connect(ctx context.Context, host string, d dialect.Dialect, conf *posture.Artifact, authFile string) error {
	return f(ctx, host, d, conf, authFile)
}
