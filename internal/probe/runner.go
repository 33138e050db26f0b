package probe

import (
	"context"
	"log/slog"

	"github.com/smbaudit/smbaudit/internal/dialect"
	"github.com/smbaudit/smbaudit/internal/posture"
)

// Outcome records one session attempt: which dialect was pinned, under
// which posture, and whether a session was established.
type Outcome struct {
	// Dialect is the dialect that was pinned for this attempt.
	Dialect dialect.Dialect

	// Posture is the posture the attempt ran under.
	Posture posture.Posture

	// Connected is true when a session was fully established.
	Connected bool
}

// Result holds both outcomes for one matrix entry.
type Result struct {
	// Entry is the matrix entry that was probed.
	Entry dialect.Entry

	// Hardened is the outcome under the hardened posture.
	Hardened Outcome

	// Weakened is the outcome under the weakened posture.
	Weakened Outcome
}

// Runner walks the policy matrix against a target host. Probing is
// strictly sequential: one probe finishes before the next starts, so
// results arrive in matrix order.
type Runner struct {
	connector Connector
	logger    *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets the logger for matrix progress output.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner that probes through the given connector.
func NewRunner(connector Connector, opts ...RunnerOption) *Runner {
	r := &Runner{connector: connector}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Run probes every matrix entry under the hardened posture and then the
// weakened posture, in matrix order. Connector errors never abort the
// matrix; they collapse to Connected=false.
//
// When onResult is non-nil it is invoked with each Result as soon as
// both probes for the entry finish, so the caller can render findings
// immediately instead of waiting for the full matrix. The full result
// sequence is also returned.
func (r *Runner) Run(ctx context.Context, host string, matrix dialect.Matrix, hardened, weakened *posture.Artifact, authFile string, onResult func(Result)) []Result {
	results := make([]Result, 0, len(matrix))

	for _, entry := range matrix {
		res := Result{
			Entry:    entry,
			Hardened: r.attempt(ctx, host, entry.Dialect, hardened, authFile),
			Weakened: r.attempt(ctx, host, entry.Dialect, weakened, authFile),
		}
		results = append(results, res)
		if onResult != nil {
			onResult(res)
		}
	}

	return results
}

// attempt runs a single probe and collapses any failure to a negative
// outcome. No distinction is made between "server unreachable" and
// "server refused this dialect".
func (r *Runner) attempt(ctx context.Context, host string, d dialect.Dialect, conf *posture.Artifact, authFile string) Outcome {
	err := r.connector.Connect(ctx, host, d, conf, authFile)
	if err != nil {
		r.logger.Debug("probe did not establish a session",
			"dialect", d.String(),
			"posture", conf.Posture().Label(),
			"reason", err)
	}
	return Outcome{
		Dialect:   d,
		Posture:   conf.Posture(),
		Connected: err == nil,
	}
}
