package probe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/smbaudit/smbaudit/internal/dialect"
	"github.com/smbaudit/smbaudit/internal/posture"
)

// fakeSmbclient writes an executable shell script that records its
// arguments and exits with the given status. Returns the script path.
func fakeSmbclient(t *testing.T, exitCode int) (binary, argsFile string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake connector script requires a POSIX shell")
	}

	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args")
	binary = filepath.Join(dir, "smbclient")

	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > " + argsFile + "\nexit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(binary, []byte(script), 0o700); err != nil { //nolint:gosec // Test script must be executable
		t.Fatalf("failed to write fake smbclient: %v", err)
	}
	return binary, argsFile
}

// TestSmbclientConnector tests the subprocess-backed connector.
func TestSmbclientConnector(t *testing.T) {
	t.Parallel()

	t.Run("zero exit means connected", func(t *testing.T) {
		t.Parallel()

		binary, _ := fakeSmbclient(t, 0)
		conf, err := posture.WriteArtifact(posture.Hardened())
		if err != nil {
			t.Fatalf("failed to write artifact: %v", err)
		}
		t.Cleanup(func() { conf.Remove() }) //nolint:errcheck

		c := NewSmbclientConnector(WithBinary(binary))
		if err := c.Connect(context.Background(), "localhost", dialect.SMB311, conf, ""); err != nil {
			t.Errorf("expected success, got %v", err)
		}
	})

	t.Run("non-zero exit means not connected", func(t *testing.T) {
		t.Parallel()

		binary, _ := fakeSmbclient(t, 1)
		conf, err := posture.WriteArtifact(posture.Hardened())
		if err != nil {
			t.Fatalf("failed to write artifact: %v", err)
		}
		t.Cleanup(func() { conf.Remove() }) //nolint:errcheck

		c := NewSmbclientConnector(WithBinary(binary))
		if err := c.Connect(context.Background(), "localhost", dialect.NT1, conf, ""); err == nil {
			t.Error("expected an error for non-zero exit")
		}
	})

	t.Run("pins min and max protocol to the dialect under test", func(t *testing.T) {
		t.Parallel()

		binary, argsFile := fakeSmbclient(t, 0)
		conf, err := posture.WriteArtifact(posture.Hardened())
		if err != nil {
			t.Fatalf("failed to write artifact: %v", err)
		}
		t.Cleanup(func() { conf.Remove() }) //nolint:errcheck

		c := NewSmbclientConnector(WithBinary(binary), WithShare("IPC$"))
		if err := c.Connect(context.Background(), "fileserver", dialect.NT1, conf, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(argsFile)
		if err != nil {
			t.Fatalf("fake smbclient recorded no arguments: %v", err)
		}
		args := string(data)

		for _, want := range []string{
			"//fileserver/IPC$",
			"-s\n" + conf.Path(),
			"client min protocol=NT1",
			"client max protocol=NT1",
			"-N",
			"-c\nexit",
		} {
			if !strings.Contains(args, want) {
				t.Errorf("arguments missing %q:\n%s", want, args)
			}
		}
	})

	t.Run("guest and explicit credentials select different flags", func(t *testing.T) {
		t.Parallel()

		binary, argsFile := fakeSmbclient(t, 0)
		conf, err := posture.WriteArtifact(posture.Hardened())
		if err != nil {
			t.Fatalf("failed to write artifact: %v", err)
		}
		t.Cleanup(func() { conf.Remove() }) //nolint:errcheck

		c := NewSmbclientConnector(WithBinary(binary))
		if err := c.Connect(context.Background(), "localhost", dialect.Any, conf, "/tmp/creds"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(argsFile)
		if err != nil {
			t.Fatalf("fake smbclient recorded no arguments: %v", err)
		}
		args := string(data)

		if !strings.Contains(args, "--authentication-file\n/tmp/creds") {
			t.Errorf("expected authentication file flag:\n%s", args)
		}
		if strings.Contains(args, "-N") {
			t.Errorf("guest flag must be absent with explicit credentials:\n%s", args)
		}
		// dialect.Any must not pin the protocol.
		if strings.Contains(args, "min protocol") {
			t.Errorf("dialect.Any must not pin the protocol:\n%s", args)
		}
	})

	t.Run("Check reports a missing binary", func(t *testing.T) {
		t.Parallel()

		c := NewSmbclientConnector(WithBinary(filepath.Join(t.TempDir(), "no-such-smbclient")))
		if err := c.Check(); !errors.Is(err, ErrConnectorUnavailable) {
			t.Errorf("expected ErrConnectorUnavailable, got %v", err)
		}
	})
}
