package probe

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/smbaudit/smbaudit/internal/dialect"
	"github.com/smbaudit/smbaudit/internal/posture"
)

// Default smbclient invocation settings.
const (
	// DefaultBinary is the smbclient executable resolved via PATH.
	DefaultBinary = "smbclient"

	// DefaultShare is the share used for session probes. IPC$ exists on
	// every SMB server and needs no share-level permissions.
	DefaultShare = "IPC$"

	// DefaultProbeTimeout bounds a single session attempt. SMB servers
	// on a LAN answer well within this; a hung connection must not
	// stall the whole matrix.
	DefaultProbeTimeout = 20 * time.Second
)

// SmbclientConnector probes a server by spawning the system smbclient
// binary once per attempt. The posture artifact is passed as the client
// configuration file and the dialect under test overrides the protocol
// bounds on the command line, pinning min and max to the same value.
//
// A probe succeeds only when smbclient exits zero, which it does only
// after a full session setup and tree connect. Every non-zero exit,
// including "server unreachable", collapses to failure: the probing
// method cannot tell a refused dialect from a dead host, and the runner
// does not pretend otherwise.
type SmbclientConnector struct {
	binary  string
	share   string
	timeout time.Duration
	logger  *slog.Logger
}

// SmbclientOption configures an SmbclientConnector.
type SmbclientOption func(*SmbclientConnector)

// WithBinary overrides the smbclient executable path.
func WithBinary(path string) SmbclientOption {
	return func(c *SmbclientConnector) {
		c.binary = path
	}
}

// WithShare overrides the share used for session probes.
func WithShare(share string) SmbclientOption {
	return func(c *SmbclientConnector) {
		c.share = share
	}
}

// WithProbeTimeout overrides the per-probe timeout.
func WithProbeTimeout(d time.Duration) SmbclientOption {
	return func(c *SmbclientConnector) {
		c.timeout = d
	}
}

// WithLogger sets the logger for probe-level debug output.
func WithLogger(logger *slog.Logger) SmbclientOption {
	return func(c *SmbclientConnector) {
		c.logger = logger
	}
}

// NewSmbclientConnector creates a Connector backed by the smbclient
// binary.
func NewSmbclientConnector(opts ...SmbclientOption) *SmbclientConnector {
	c := &SmbclientConnector{
		binary:  DefaultBinary,
		share:   DefaultShare,
		timeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Check verifies that the configured smbclient binary can be found.
// It is called once before the run so a missing binary fails fast
// instead of producing thirteen pairs of identical failures.
func (c *SmbclientConnector) Check() error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return fmt.Errorf("%w: %s", ErrConnectorUnavailable, c.binary)
	}
	return nil
}

// Connect implements Connector by running one smbclient session attempt.
func (c *SmbclientConnector) Connect(ctx context.Context, host string, d dialect.Dialect, conf *posture.Artifact, authFile string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{
		fmt.Sprintf("//%s/%s", host, c.share),
		"-s", conf.Path(),
	}
	if d != dialect.Any {
		args = append(args,
			"--option=client min protocol="+d.String(),
			"--option=client max protocol="+d.String(),
		)
	}
	if authFile == "" {
		args = append(args, "-N")
	} else {
		args = append(args, "--authentication-file", authFile)
	}
	// Exit immediately after session setup and tree connect.
	args = append(args, "-c", "exit")

	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec // Binary and arguments are operator-controlled
	err := cmd.Run()

	c.logger.Debug("session probe finished",
		"host", host,
		"dialect", d.String(),
		"posture", conf.Posture().Label(),
		"guest", authFile == "",
		"connected", err == nil,
	)
	return err
}
