//go:build darwin

package identity

// appPath prefers the enclosing .app bundle over the inner Mach-O
// binary: login items must reference the bundle for LaunchServices to
// treat the entry as the application. A binary outside any bundle is
// registered as-is.
func appPath(execPath string, _ Env) string {
	if root, ok := bundleRoot(execPath); ok {
		return root
	}
	return execPath
}
