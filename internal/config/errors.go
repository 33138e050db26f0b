package config

import "errors"

// Configuration validation errors.
// Sentinel values support errors.Is() in the CLI while keeping the
// messages human-readable.
var (
	// ErrNoSmbclientPath is returned when the connector binary path is
	// empty. Without a connector no probe can run.
	ErrNoSmbclientPath = errors.New("smbclient path must not be empty")

	// ErrInvalidProbeTimeout is returned when the per-probe timeout is
	// not positive. A zero timeout would fail every probe immediately
	// and render a misleading all-refused matrix.
	ErrInvalidProbeTimeout = errors.New("invalid probe timeout: must be positive")
)
