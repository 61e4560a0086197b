//go:build linux

package identity

// appPath registers the AppImage mount path when the host application
// reports one; the extracted binary underneath it lives in a transient
// mount that is gone by the next login.
func appPath(execPath string, env Env) string {
	if env != nil {
		if image := env.AppImagePath(); image != "" {
			return image
		}
	}
	return execPath
}
