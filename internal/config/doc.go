// Package config provides the run configuration for smbaudit: target
// host, connector settings, policy file discovery and output options.
package config
