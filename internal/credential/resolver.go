package credential

import (
	"context"
	"fmt"
	"log/slog"
	"os/user"

	"github.com/smbaudit/smbaudit/internal/dialect"
	"github.com/smbaudit/smbaudit/internal/posture"
	"github.com/smbaudit/smbaudit/internal/probe"
	"github.com/smbaudit/smbaudit/internal/verdict"
)

// DefaultDomain is the workgroup offered as the prompt default when the
// operator has no domain to name.
const DefaultDomain = "WORKGROUP"

// Resolver determines the access mode for a run.
type Resolver struct {
	connector probe.Connector
	prompter  Prompter
	state     *verdict.State
	logger    *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger for resolution progress output.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver. Guest acceptance is recorded on state
// because it is a warning finding in its own right.
func NewResolver(connector probe.Connector, prompter Prompter, state *verdict.State, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		connector: connector,
		prompter:  prompter,
		state:     state,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// ResolveAccess determines how the run authenticates to host.
//
// It first probes the host anonymously under the hardened posture. If
// the server accepts, guest access is the access mode, the guest
// warning is recorded, and no credentials are collected. Otherwise the
// operator is prompted exactly once; the collected credentials are
// validated with a single hardened-posture probe and a rejection
// returns ErrInvalidCredentials with no artifact left behind.
func (r *Resolver) ResolveAccess(ctx context.Context, host string, hardened *posture.Artifact) (*Access, error) {
	if err := r.connector.Connect(ctx, host, dialect.Any, hardened, ""); err == nil {
		r.logger.Debug("server accepted an anonymous session", "host", host)
		r.state.RecordGuestAccess()
		return &Access{mode: ModeGuest}, nil
	}

	cred, err := r.collect()
	if err != nil {
		return nil, err
	}

	authFile, err := writeAuthFile(cred)
	if err != nil {
		return nil, fmt.Errorf("write credential artifact: %w", err)
	}

	access := &Access{mode: ModeExplicit, authFile: authFile}
	if err := r.connector.Connect(ctx, host, dialect.Any, hardened, authFile); err != nil {
		// The artifact must not outlive the failed validation.
		if cerr := access.Cleanup(); cerr != nil {
			r.logger.Warn("failed to remove credential artifact", "reason", cerr)
		}
		return nil, ErrInvalidCredentials
	}

	return access, nil
}

// collect runs the one-shot credential dialogue.
func (r *Resolver) collect() (Credential, error) {
	domain, err := r.prompter.Line("Workgroup/domain", DefaultDomain)
	if err != nil {
		return Credential{}, err
	}

	username, err := r.prompter.Line("Username", currentUsername())
	if err != nil {
		return Credential{}, err
	}
	if username == "" {
		return Credential{}, ErrEmptyUsername
	}

	password, err := r.prompter.Secret("Password")
	if err != nil {
		return Credential{}, err
	}

	return Credential{Domain: domain, Username: username, Password: password}, nil
}

// currentUsername returns the invoking user's name as the prompt
// default, or empty when it cannot be determined.
func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}
