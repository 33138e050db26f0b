package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for smbaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smbaudit",
		Short: "Security posture prober for SMB file servers",
		Long: `smbaudit probes a live SMB server to determine which protocol dialects
and which authentication mechanisms it accepts.

Each dialect is tested twice: once with a hardened client configuration
that requires NTLMv2-or-better authentication, and once with a
deliberately weakened configuration that forces legacy authentication.
Every outcome is judged against a security policy and the run ends with
a single aggregate verdict.

The run is interactive: smbaudit prompts for the target host and, when
the server refuses guest access, for credentials.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
