package posture

import (
	"fmt"
	"strings"

	"github.com/smbaudit/smbaudit/internal/dialect"
)

// Posture is an immutable description of one client connection posture:
// the protocol range the client may negotiate and whether legacy
// authentication (plaintext, LANMAN, NTLMv1) is permitted.
//
// The two postures of a run differ only in authentication strength.
// Which dialect is actually attempted is controlled per probe, so both
// postures span the full dialect range.
type Posture struct {
	// MinProtocol is the oldest dialect the client may negotiate.
	MinProtocol dialect.Dialect

	// MaxProtocol is the newest dialect the client may negotiate.
	MaxProtocol dialect.Dialect

	// AllowLegacyAuth permits plaintext, LANMAN and NTLMv1
	// authentication when true. When false the client requires
	// NTLMv2 or better.
	AllowLegacyAuth bool
}

// Hardened returns the posture with legacy authentication disabled.
func Hardened() Posture {
	return Posture{
		MinProtocol:     dialect.Oldest(),
		MaxProtocol:     dialect.Newest(),
		AllowLegacyAuth: false,
	}
}

// Weakened returns the posture with legacy authentication forced on.
// Any server that accepts a connection under this posture will downgrade
// to legacy authentication.
func Weakened() Posture {
	return Posture{
		MinProtocol:     dialect.Oldest(),
		MaxProtocol:     dialect.Newest(),
		AllowLegacyAuth: true,
	}
}

// Label returns the short human-readable name of the posture, used in
// report lines and log attributes.
func (p Posture) Label() string {
	if p.AllowLegacyAuth {
		return "weakened"
	}
	return "hardened"
}

// Render serializes the posture as an smb.conf [global] block suitable
// for smbclient's -s option. Legacy authentication maps to the lanman,
// plaintext and ntlmv2 auth client options.
func (p Posture) Render() string {
	var sb strings.Builder
	sb.WriteString("[global]\n")
	fmt.Fprintf(&sb, "\tclient min protocol = %s\n", p.MinProtocol)
	fmt.Fprintf(&sb, "\tclient max protocol = %s\n", p.MaxProtocol)
	fmt.Fprintf(&sb, "\tclient lanman auth = %s\n", yesNo(p.AllowLegacyAuth))
	fmt.Fprintf(&sb, "\tclient plaintext auth = %s\n", yesNo(p.AllowLegacyAuth))
	fmt.Fprintf(&sb, "\tclient ntlmv2 auth = %s\n", yesNo(!p.AllowLegacyAuth))
	return sb.String()
}

// yesNo renders a bool in smb.conf syntax.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
