package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/smbaudit/smbaudit/internal/config"
	"github.com/smbaudit/smbaudit/internal/credential"
	"github.com/smbaudit/smbaudit/internal/dialect"
	"github.com/smbaudit/smbaudit/internal/log"
	"github.com/smbaudit/smbaudit/internal/posture"
	"github.com/smbaudit/smbaudit/internal/probe"
)

// chdir changes the working directory for the duration of the test,
// matching the behavior of testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
}

// Color codes would make substring assertions brittle.
func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// fakePrompter answers the interactive dialogue from canned values.
type fakePrompter struct {
	host       string
	domain     string
	username   string
	password   string
	credsAsked bool
}

func (p *fakePrompter) Line(prompt, def string) (string, error) {
	switch prompt {
	case "Target host":
		if p.host == "" {
			return def, nil
		}
		return p.host, nil
	case "Workgroup/domain":
		p.credsAsked = true
		if p.domain == "" {
			return def, nil
		}
		return p.domain, nil
	case "Username":
		p.credsAsked = true
		return p.username, nil
	}
	return def, nil
}

func (p *fakePrompter) Secret(string) (string, error) {
	p.credsAsked = true
	return p.password, nil
}

// matrixConnector scripts a server: guest acceptance, credential
// validity, and per-(dialect, posture) session outcomes. Resolution
// probes arrive with dialect.Any; matrix probes with a pinned dialect.
type matrixConnector struct {
	guestAccepted    bool
	credentialsValid bool

	// connects decides matrix probes. Keys are "<dialect>/<posture label>".
	connects map[string]bool

	matrixProbes int
}

func (c *matrixConnector) Connect(_ context.Context, _ string, d dialect.Dialect, conf *posture.Artifact, authFile string) error {
	if d == dialect.Any {
		if authFile == "" {
			if c.guestAccepted {
				return nil
			}
			return errors.New("NT_STATUS_ACCESS_DENIED")
		}
		if c.credentialsValid {
			return nil
		}
		return errors.New("NT_STATUS_LOGON_FAILURE")
	}

	c.matrixProbes++
	if c.connects[d.String()+"/"+conf.Posture().Label()] {
		return nil
	}
	return errors.New("protocol negotiation failed")
}

// policyCompliant scripts a server that accepts exactly the dialects
// the policy expects, only under the hardened posture.
func policyCompliant() map[string]bool {
	connects := make(map[string]bool)
	for _, e := range dialect.DefaultMatrix() {
		if e.ExpectSupported {
			connects[e.Dialect.String()+"/hardened"] = true
		}
	}
	return connects
}

// testDeps builds the run dependencies around a fake connector and
// prompter, collecting output into the returned builder.
func testDeps(connector probe.Connector, prompter credential.Prompter) (auditDeps, *strings.Builder) {
	var sb strings.Builder
	return auditDeps{
		connector: connector,
		prompter:  prompter,
		out:       &sb,
		logger:    log.NewLogger(os.Stderr, false),
	}, &sb
}

// TestRunAudit tests the full audit flow against scripted servers.
func TestRunAudit(t *testing.T) {
	t.Run("policy-compliant server yields no issues", func(t *testing.T) {
		connector := &matrixConnector{credentialsValid: true, connects: policyCompliant()}
		prompter := &fakePrompter{username: "auditor", password: "pw"}
		deps, out := testDeps(connector, prompter)

		cfg := config.NewConfig()
		cfg.Host = "fileserver"

		if err := runAudit(context.Background(), cfg, dialect.DefaultMatrix(), deps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(out.String(), "no issues found") {
			t.Errorf("expected clean verdict:\n%s", out.String())
		}
		if strings.Contains(out.String(), "WARNING") {
			t.Errorf("expected no warnings:\n%s", out.String())
		}
		if want := 2 * len(dialect.DefaultMatrix()); connector.matrixProbes != want {
			t.Errorf("expected %d matrix probes, got %d", want, connector.matrixProbes)
		}
	})

	t.Run("legacy auth downgrade on NT1 raises the aggregate", func(t *testing.T) {
		connects := policyCompliant()
		connects["NT1/weakened"] = true

		connector := &matrixConnector{credentialsValid: true, connects: connects}
		prompter := &fakePrompter{username: "auditor", password: "pw"}
		deps, out := testDeps(connector, prompter)

		cfg := config.NewConfig()
		cfg.Host = "fileserver"

		if err := runAudit(context.Background(), cfg, dialect.DefaultMatrix(), deps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(out.String(), "NT1       weakened  WARNING: server accepts legacy authentication") {
			t.Errorf("expected NT1 downgrade warning:\n%s", out.String())
		}
		if !strings.Contains(out.String(), "WARNING: issues found") {
			t.Errorf("expected aggregate warning:\n%s", out.String())
		}
	})

	t.Run("guest acceptance skips credential prompts", func(t *testing.T) {
		connector := &matrixConnector{guestAccepted: true, connects: policyCompliant()}
		prompter := &fakePrompter{}
		deps, out := testDeps(connector, prompter)

		cfg := config.NewConfig()
		cfg.Host = "fileserver"

		if err := runAudit(context.Background(), cfg, dialect.DefaultMatrix(), deps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if prompter.credsAsked {
			t.Error("guest access must not prompt for credentials")
		}
		if !strings.Contains(out.String(), "WARNING: server accepts guest access") {
			t.Errorf("expected guest warning:\n%s", out.String())
		}
		// Guest access alone raises the aggregate even on an otherwise
		// compliant server.
		if !strings.Contains(out.String(), "WARNING: issues found") {
			t.Errorf("expected aggregate warning:\n%s", out.String())
		}
	})

	t.Run("invalid credentials abort before any matrix probe", func(t *testing.T) {
		// A private TMPDIR makes artifact leftovers observable.
		tmp := t.TempDir()
		t.Setenv("TMPDIR", tmp)

		connector := &matrixConnector{credentialsValid: false}
		prompter := &fakePrompter{username: "auditor", password: "wrong"}
		deps, out := testDeps(connector, prompter)

		cfg := config.NewConfig()
		cfg.Host = "fileserver"

		err := runAudit(context.Background(), cfg, dialect.DefaultMatrix(), deps)
		if !errors.Is(err, credential.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}

		if connector.matrixProbes != 0 {
			t.Errorf("expected no matrix probes after fatal credential failure, got %d", connector.matrixProbes)
		}
		if strings.Contains(out.String(), "issues found") {
			t.Errorf("expected no verdict output after fatal failure:\n%s", out.String())
		}

		entries, readErr := os.ReadDir(tmp)
		if readErr != nil {
			t.Fatalf("failed to read temp dir: %v", readErr)
		}
		if len(entries) != 0 {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("ephemeral artifacts survived the fatal path: %v", names)
		}
	})

	t.Run("empty host falls back to the prompt default", func(t *testing.T) {
		connector := &matrixConnector{guestAccepted: true, connects: policyCompliant()}
		deps, out := testDeps(connector, &fakePrompter{})

		cfg := config.NewConfig()

		if err := runAudit(context.Background(), cfg, dialect.DefaultMatrix(), deps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "Probing SMB dialects on localhost") {
			t.Errorf("expected the default host in the header:\n%s", out.String())
		}
	})

	t.Run("markdown report is written when requested", func(t *testing.T) {
		connector := &matrixConnector{credentialsValid: true, connects: policyCompliant()}
		prompter := &fakePrompter{username: "auditor", password: "pw"}
		deps, _ := testDeps(connector, prompter)

		cfg := config.NewConfig()
		cfg.Host = "fileserver"
		cfg.OutputPath = filepath.Join(t.TempDir(), "reports", "audit.md")

		if err := runAudit(context.Background(), cfg, dialect.DefaultMatrix(), deps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(cfg.OutputPath)
		if err != nil {
			t.Fatalf("markdown report missing: %v", err)
		}
		md := string(data)
		if !strings.Contains(md, "# SMB Security Posture Audit") {
			t.Errorf("unexpected markdown content:\n%s", md)
		}
		if !strings.Contains(md, "no issues found") {
			t.Errorf("markdown verdict missing:\n%s", md)
		}
	})
}

// TestLoadMatrix tests policy matrix resolution.
func TestLoadMatrix(t *testing.T) {
	t.Run("falls back to the built-in matrix", func(t *testing.T) {
		chdir(t, t.TempDir())

		cfg := config.NewConfig()
		matrix, err := loadMatrix(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(matrix) != len(dialect.DefaultMatrix()) {
			t.Errorf("expected the default matrix, got %d entries", len(matrix))
		}
	})

	t.Run("explicit missing policy file is an error", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.PolicyPath = filepath.Join(t.TempDir(), "absent.yaml")

		if _, err := loadMatrix(cfg); !errors.Is(err, dialect.ErrPolicyNotFound) {
			t.Errorf("expected ErrPolicyNotFound, got %v", err)
		}
	})

	t.Run("explicit policy file replaces the matrix", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		content := "dialects:\n  - name: NT1\n    expect_supported: false\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write policy: %v", err)
		}

		cfg := config.NewConfig()
		cfg.PolicyPath = path

		matrix, err := loadMatrix(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(matrix) != 1 || matrix[0].Dialect != dialect.NT1 {
			t.Errorf("unexpected matrix: %+v", matrix)
		}
	})
}
