//go:build windows

package identity

// appPath returns the launch path recorded in the registry run key.
// Paths under directories like "C:\Program Files" contain spaces and
// must be quoted to survive command-line splitting.
func appPath(execPath string, _ Env) string {
	return quotePath(execPath)
}
