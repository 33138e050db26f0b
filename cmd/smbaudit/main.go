// Package main provides the entry point for the smbaudit CLI.
//
// smbaudit probes a live SMB server to determine which protocol
// dialects and authentication mechanisms it accepts, and renders a
// pass/fail verdict against a fixed security policy.
//
// Usage:
//
//	smbaudit audit [host]
//
// See --help for all available options.
package main

// main is the entry point for smbaudit.
func main() {
	Execute()
}
