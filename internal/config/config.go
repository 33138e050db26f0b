package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "smbaudit"

	// DefaultHost is the prompt default for the target host.
	DefaultHost = "localhost"

	// DefaultSmbclientPath resolves the SMB client binary via PATH.
	DefaultSmbclientPath = "smbclient"

	// DefaultProbeTimeout bounds one session attempt. Generous enough
	// for slow WAN targets while keeping a full 13-dialect matrix
	// (26 probes) under ten minutes even against a dead host.
	DefaultProbeTimeout = 20 * time.Second

	// PolicyFileName is the policy file looked up in the current
	// directory.
	PolicyFileName = ".smbaudit.yaml"
)

// Config holds all settings for one audit run.
type Config struct {
	// Host is the target to probe. When empty the operator is
	// prompted, defaulting to DefaultHost.
	Host string

	// PolicyPath is an explicit dialect policy file. When empty,
	// FindPolicyFile searches the standard locations and the built-in
	// matrix is used if nothing is found.
	PolicyPath string

	// OutputPath, when set, receives a Markdown copy of the report.
	OutputPath string

	// SmbclientPath is the SMB client binary used by the connector.
	SmbclientPath string

	// ProbeTimeout bounds each individual session attempt.
	ProbeTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a Config with defaults. Callers override fields
// from CLI flags after creation.
func NewConfig() *Config {
	return &Config{
		SmbclientPath: DefaultSmbclientPath,
		ProbeTimeout:  DefaultProbeTimeout,
	}
}

// Validate checks the configuration and returns the first problem
// found. It runs once after flag parsing, before any prompting or
// probing.
func (c *Config) Validate() error {
	if c.SmbclientPath == "" {
		return ErrNoSmbclientPath
	}
	if c.ProbeTimeout <= 0 {
		return ErrInvalidProbeTimeout
	}
	return nil
}

// XDGConfigDir returns the XDG config directory for smbaudit.
// On Linux: ~/.config/smbaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FindPolicyFile locates the dialect policy file.
//
// Search order:
//  1. explicit path, used as-is (existence is checked by the loader so
//     a typo surfaces as an error instead of a silent fallback)
//  2. .smbaudit.yaml in the current directory
//  3. policy.yaml in the XDG config directory
//
// Returns the empty string when no implicit file exists, which callers
// treat as "use the built-in matrix".
func FindPolicyFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, PolicyFileName)
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}

	global := filepath.Join(XDGConfigDir(), "policy.yaml")
	if _, err := os.Stat(global); err == nil {
		return global
	}

	return ""
}
