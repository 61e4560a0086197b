//go:build windows

package autolaunch

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows/registry"

	"github.com/lodestar-app/hostkit/internal/identity"
)

// runKeyPath is the per-user Run key consulted by Windows at login.
const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// runKeyMechanism registers a value under HKCU\...\Run. The value name
// is the application name and the data is the quoted launch command.
type runKeyMechanism struct {
	name    string
	command string
}

func newPlatformMechanism(id identity.Identity) (Mechanism, error) {
	return &runKeyMechanism{name: id.Name, command: id.Path}, nil
}

func (m *runKeyMechanism) Enable() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return errors.Wrap(err, "opening run key")
	}
	defer k.Close()

	if err := k.SetStringValue(m.name, m.command); err != nil {
		return errors.Wrapf(err, "writing run value %q", m.name)
	}
	return nil
}

func (m *runKeyMechanism) Disable() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return errors.Wrap(err, "opening run key")
	}
	defer k.Close()

	if err := k.DeleteValue(m.name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return errors.Wrapf(err, "deleting run value %q", m.name)
	}
	return nil
}

func (m *runKeyMechanism) IsEnabled() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, errors.Wrap(err, "opening run key")
	}
	defer k.Close()

	if _, _, err := k.GetStringValue(m.name); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, "reading run value %q", m.name)
	}
	return true, nil
}
