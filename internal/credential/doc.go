// Package credential determines how the audit authenticates to the
// target server.
//
// The resolver first checks whether the server accepts a session
// without credentials under the hardened posture. Guest acceptance is
// itself a security warning and skips credential collection entirely.
// Otherwise the operator is prompted exactly once for domain, username
// and password; the credentials are validated with a single probe and
// an invalid set aborts the whole run before any matrix entry is
// probed.
//
// Secret material lives in a 0600 temp file in smbclient
// authentication-file format for the duration of the run, is passed to
// the connector by path only, and is never logged.
package credential
