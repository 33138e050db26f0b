package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Credential holds explicit authentication material collected from the
// operator. It is owned by the resolver, referenced by path in connector
// calls, and must never be logged or persisted beyond the run.
type Credential struct {
	// Domain is the workgroup or domain to authenticate against.
	Domain string

	// Username is the account name.
	Username string

	// Password is the account secret.
	Password string
}

// render serializes the credential in smbclient authentication-file
// format: one key/value pair per line.
func (c Credential) render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "username = %s\n", c.Username)
	fmt.Fprintf(&sb, "password = %s\n", c.Password)
	fmt.Fprintf(&sb, "domain = %s\n", c.Domain)
	return sb.String()
}

// Mode says how the run authenticates to the target.
type Mode int

const (
	// ModeGuest means the server accepts sessions without credentials.
	ModeGuest Mode = iota

	// ModeExplicit means the run authenticates with operator-supplied
	// credentials.
	ModeExplicit
)

// String returns a human-readable name for the access mode.
func (m Mode) String() string {
	switch m {
	case ModeGuest:
		return "guest"
	case ModeExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Access is the resolved authentication handle for one run. For
// explicit access it owns the ephemeral credential artifact; callers
// must defer Cleanup immediately after a successful resolve.
type Access struct {
	mode     Mode
	authFile string
}

// Mode returns the resolved access mode.
func (a *Access) Mode() Mode {
	return a.mode
}

// AuthFile returns the path of the credential artifact, or the empty
// string for guest access. The empty string tells the connector to
// attempt an anonymous session.
func (a *Access) AuthFile() string {
	return a.authFile
}

// Cleanup removes the credential artifact if one exists. Like the
// posture artifact removal it is idempotent and safe on every exit path.
func (a *Access) Cleanup() error {
	if a.authFile == "" {
		return nil
	}
	err := os.Remove(a.authFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// writeAuthFile writes the credential into a private temp file and
// returns its path. os.CreateTemp creates the file with 0600
// permissions, so the secret is not discoverable by other users.
func writeAuthFile(c Credential) (string, error) {
	f, err := os.CreateTemp("", "smbaudit-auth-*")
	if err != nil {
		return "", err
	}

	if _, err := f.WriteString(c.render()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}
