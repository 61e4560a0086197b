//go:build darwin

package autolaunch

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/lodestar-app/hostkit/internal/identity"
)

// launchAgentMechanism manages a per-user launch agent plist under
// ~/Library/LaunchAgents.
type launchAgentMechanism struct {
	label     string
	plistPath string
	args      []string
}

func newPlatformMechanism(id identity.Identity) (Mechanism, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "locating home directory")
	}
	label := agentLabel(id.Name)
	return &launchAgentMechanism{
		label:     label,
		plistPath: filepath.Join(home, "Library", "LaunchAgents", label+".plist"),
		args:      launchArguments(id.Path),
	}, nil
}

func (m *launchAgentMechanism) Enable() error {
	if err := os.MkdirAll(filepath.Dir(m.plistPath), 0o755); err != nil {
		return errors.Wrap(err, "creating LaunchAgents directory")
	}
	content := buildLaunchAgentPlist(m.label, m.args)
	if err := os.WriteFile(m.plistPath, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, "writing launch agent plist")
	}
	return nil
}

func (m *launchAgentMechanism) Disable() error {
	if err := os.Remove(m.plistPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing launch agent plist")
	}
	return nil
}

func (m *launchAgentMechanism) IsEnabled() (bool, error) {
	_, err := os.Stat(m.plistPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "checking launch agent plist")
	}
	return true, nil
}
