package identity

import "os"

// Env supplies launch-context facts only the host application knows.
// On Linux the AppImage runtime mounts the image and runs the inner
// binary from a transient location; the image path is the stable one
// to register.
type Env interface {
	// AppImagePath returns the AppImage the process was launched from,
	// or "" for an ordinary launch.
	AppImagePath() string
}

// ProcessEnv reads launch context from the process environment.
type ProcessEnv struct{}

// AppImagePath returns the APPIMAGE variable exported by the AppImage
// runtime, empty outside an AppImage launch.
func (ProcessEnv) AppImagePath() string {
	return os.Getenv("APPIMAGE")
}
