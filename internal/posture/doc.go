// Package posture defines the two client connection postures the audit
// probes with, and the ephemeral smb.conf-style configuration artifacts
// that carry them to the external SMB client.
//
// Exactly two postures exist per run: a hardened posture that requires
// NTLMv2-or-better authentication, and a weakened posture that forces
// legacy authentication on. Both span the full dialect range; per-probe
// dialect pinning happens on the command line, not in the posture.
package posture
