package posture

import (
	"errors"
	"io/fs"
	"os"
)

// Artifact is an ephemeral configuration file holding one rendered
// posture. It exists for the lifetime of a single run and must be
// removed on every exit path; callers are expected to defer Remove
// immediately after WriteArtifact succeeds.
type Artifact struct {
	posture Posture
	path    string
}

// WriteArtifact renders the posture into a private temp file and
// returns the artifact handle. The file is created with 0600 permissions
// by os.CreateTemp, so no other user can read the configuration.
func WriteArtifact(p Posture) (*Artifact, error) {
	f, err := os.CreateTemp("", "smbaudit-"+p.Label()+"-*.conf")
	if err != nil {
		return nil, err
	}

	if _, err := f.WriteString(p.Render()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}

	return &Artifact{posture: p, path: f.Name()}, nil
}

// Posture returns the posture the artifact was rendered from.
func (a *Artifact) Posture() Posture {
	return a.posture
}

// Path returns the filesystem path of the artifact.
func (a *Artifact) Path() string {
	return a.path
}

// Remove deletes the artifact file. It is idempotent: removing an
// already-removed artifact is not an error, so it can sit in a defer on
// every exit path without guarding.
func (a *Artifact) Remove() error {
	err := os.Remove(a.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
