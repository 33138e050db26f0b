package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smbaudit/smbaudit/internal/config"
	"github.com/smbaudit/smbaudit/internal/credential"
	"github.com/smbaudit/smbaudit/internal/dialect"
	"github.com/smbaudit/smbaudit/internal/log"
	"github.com/smbaudit/smbaudit/internal/posture"
	"github.com/smbaudit/smbaudit/internal/probe"
	"github.com/smbaudit/smbaudit/internal/report"
	"github.com/smbaudit/smbaudit/internal/verdict"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [host]",
		Short: "Probe an SMB server's dialect and authentication posture",
		Long: `Audit probes an SMB server with every dialect of the policy matrix,
once under a hardened client configuration and once under a weakened one
that forces legacy authentication, then judges each outcome.

The run is interactive. When no host argument is given the target is
prompted for (default localhost). If the server refuses guest access,
workgroup/domain, username and password are prompted for; the password
is not echoed. Invalid credentials abort the run before any dialect is
probed.

Warnings are reported on standard output and never affect the exit
code; only fatal errors (invalid credentials, missing smbclient) do.

Examples:
  # Interactive audit of a host
  smbaudit audit

  # Pre-seed the host, skip the host prompt
  smbaudit audit fileserver.example.com

  # Use a custom dialect policy and keep a markdown copy
  smbaudit audit -p policy.yaml -o report.md fileserver`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAuditCmd,
	}

	cmd.Flags().StringP("policy", "p", "",
		"Dialect policy file (default: .smbaudit.yaml in current dir, then XDG config dir)")
	cmd.Flags().StringP("output", "o", "",
		"Write a Markdown copy of the report to this path")
	cmd.Flags().String("smbclient", config.DefaultSmbclientPath,
		"Path to the smbclient binary used for probing")
	cmd.Flags().DurationP("timeout", "t", config.DefaultProbeTimeout,
		"Timeout for each individual session probe")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	matrix, err := loadMatrix(cfg)
	if err != nil {
		return err
	}

	connector := probe.NewSmbclientConnector(
		probe.WithBinary(cfg.SmbclientPath),
		probe.WithProbeTimeout(cfg.ProbeTimeout),
		probe.WithLogger(logger),
	)
	if err := connector.Check(); err != nil {
		return err
	}

	deps := auditDeps{
		connector: connector,
		prompter:  credential.NewTerminalPrompter(),
		out:       cmd.OutOrStdout(),
		logger:    logger,
	}
	return runAudit(cmd.Context(), cfg, matrix, deps)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	if len(args) == 1 {
		cfg.Host = args[0]
	}

	var err error
	cfg.PolicyPath, err = cmd.Flags().GetString("policy")
	if err != nil {
		return nil, err
	}
	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.SmbclientPath, err = cmd.Flags().GetString("smbclient")
	if err != nil {
		return nil, err
	}
	cfg.ProbeTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadMatrix resolves the dialect policy matrix: an explicit or
// discovered policy file, or the built-in baseline.
func loadMatrix(cfg *config.Config) (dialect.Matrix, error) {
	path := config.FindPolicyFile(cfg.PolicyPath)
	if path == "" {
		return dialect.DefaultMatrix(), nil
	}
	matrix, err := dialect.LoadPolicy(path)
	if err != nil {
		return nil, err
	}
	return matrix, nil
}

// auditDeps bundles the collaborators of one run so tests can swap in
// fakes for the connector and the prompts.
type auditDeps struct {
	connector probe.Connector
	prompter  credential.Prompter
	out       io.Writer
	logger    *slog.Logger
}

// runAudit executes the audit: resolve access, walk the matrix, render
// the verdicts. Both posture artifacts and the credential artifact are
// removed on every exit path via defers registered as soon as the
// artifact exists.
func runAudit(ctx context.Context, cfg *config.Config, matrix dialect.Matrix, deps auditDeps) error {
	host := cfg.Host
	if host == "" {
		var err error
		host, err = deps.prompter.Line("Target host", config.DefaultHost)
		if err != nil {
			return fmt.Errorf("read target host: %w", err)
		}
	}

	hardened, err := posture.WriteArtifact(posture.Hardened())
	if err != nil {
		return fmt.Errorf("write hardened configuration artifact: %w", err)
	}
	defer removeArtifact(hardened, deps.logger)

	weakened, err := posture.WriteArtifact(posture.Weakened())
	if err != nil {
		return fmt.Errorf("write weakened configuration artifact: %w", err)
	}
	defer removeArtifact(weakened, deps.logger)

	printer := report.NewPrinter(deps.out)
	printer.Header(host)

	state := verdict.NewState()
	resolver := credential.NewResolver(deps.connector, deps.prompter, state,
		credential.WithLogger(deps.logger))

	access, err := resolver.ResolveAccess(ctx, host, hardened)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := access.Cleanup(); cerr != nil {
			deps.logger.Warn("failed to remove credential artifact", "reason", cerr)
		}
	}()

	guestAccepted := access.Mode() == credential.ModeGuest
	printer.GuestAccess(guestAccepted)

	runner := probe.NewRunner(deps.connector, probe.WithRunnerLogger(deps.logger))
	rows := make([]report.Row, 0, len(matrix))
	runner.Run(ctx, host, matrix, hardened, weakened, access.AuthFile(), func(res probe.Result) {
		row := report.Row{
			Result:   res,
			Hardened: state.ClassifyHardened(res.Entry, res.Hardened.Connected),
			Weakened: state.ClassifyWeakened(res.Weakened.Connected),
		}
		printer.Row(row)
		rows = append(rows, row)
	})

	printer.Summary(state.HadWarnings())

	if cfg.OutputPath != "" {
		if err := writeMarkdownReport(cfg.OutputPath, host, guestAccepted, rows, state.HadWarnings()); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
	}
	return nil
}

// removeArtifact removes a posture artifact, logging instead of failing:
// cleanup problems must not mask the run's own result.
func removeArtifact(a *posture.Artifact, logger *slog.Logger) {
	if err := a.Remove(); err != nil {
		logger.Warn("failed to remove configuration artifact", "path", a.Path(), "reason", err)
	}
}

// writeMarkdownReport writes the markdown copy of the report, creating
// parent directories as needed.
func writeMarkdownReport(path, host string, guestAccepted bool, rows []report.Row, hadWarnings bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return err
	}

	if err := report.WriteMarkdown(f, host, guestAccepted, rows, hadWarnings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
