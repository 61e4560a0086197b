//go:build linux

package autolaunch

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/lodestar-app/hostkit/internal/identity"
)

// desktopEntryMechanism manages an XDG autostart entry under the
// user's config directory (~/.config/autostart by default).
type desktopEntryMechanism struct {
	name      string
	appPath   string
	entryPath string
}

func newPlatformMechanism(id identity.Identity) (Mechanism, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, errors.Wrap(err, "locating config directory")
	}
	return &desktopEntryMechanism{
		name:      id.Name,
		appPath:   id.Path,
		entryPath: filepath.Join(configDir, "autostart", entryFileName(id.Name)),
	}, nil
}

func (m *desktopEntryMechanism) Enable() error {
	if err := os.MkdirAll(filepath.Dir(m.entryPath), 0o755); err != nil {
		return errors.Wrap(err, "creating autostart directory")
	}
	content := buildDesktopEntry(m.name, m.appPath)
	if err := os.WriteFile(m.entryPath, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, "writing desktop entry")
	}
	return nil
}

func (m *desktopEntryMechanism) Disable() error {
	if err := os.Remove(m.entryPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing desktop entry")
	}
	return nil
}

func (m *desktopEntryMechanism) IsEnabled() (bool, error) {
	_, err := os.Stat(m.entryPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "checking desktop entry")
	}
	return true, nil
}
