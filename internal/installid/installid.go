// Package installid manages the per-installation identifier: a UUID
// generated on first run and persisted in the application data
// directory. The identifier is stable across runs and regenerated only
// when its file is missing, emptied, or corrupted.
package installid

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/lodestar-app/hostkit/internal/fspath"
)

const fileName = "install_id"

// Load returns the installation identifier for the application,
// creating and persisting a fresh one on first run.
func Load(appName string) (string, error) {
	p, err := fspath.DataFilePath(appName, fileName)
	if err != nil {
		return "", err
	}
	return loadFrom(p)
}

// loadFrom provisions the identifier file and returns its UUID,
// rewriting the file when the stored value is unusable.
func loadFrom(p fspath.Path) (string, error) {
	p, err := p.Ensure()
	if err != nil {
		return "", errors.Wrap(err, "provisioning install id file")
	}

	data, err := os.ReadFile(p.Filepath())
	if err != nil {
		return "", errors.Wrap(err, "reading install id")
	}

	id := strings.TrimSpace(string(data))
	if _, parseErr := uuid.Parse(id); parseErr == nil {
		return id, nil
	}

	id = uuid.NewString()
	if err := os.WriteFile(p.Filepath(), []byte(id+"\n"), 0o644); err != nil {
		return "", errors.Wrap(err, "writing install id")
	}
	return id, nil
}
