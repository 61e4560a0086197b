// Package identity derives the stable (name, path) pair that names the
// running executable to OS launch facilities. The name is the
// executable's base name without extension; the path is normalized per
// platform so that the recorded launch entry keeps working: quoted on
// Windows, lifted to the enclosing .app bundle on macOS, redirected to
// the AppImage on Linux.
package identity

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for identity resolution.
var (
	// ErrNoFileStem indicates the executable path has no extractable
	// base name.
	ErrNoFileStem = errors.New("executable path has no file stem")

	// ErrInvalidEncoding indicates the executable path is not
	// representable as text.
	ErrInvalidEncoding = errors.New("executable path is not valid UTF-8")
)

// Identity names the running application for launch registration.
// Once computed for a process it never changes; callers cache it.
type Identity struct {
	// Name is the executable's base name without extension.
	Name string

	// Path is the platform-normalized launch path recorded with the OS.
	Path string
}

// Resolve derives the Identity of the current process from its
// executable location.
func Resolve(env Env) (Identity, error) {
	exe, err := os.Executable()
	if err != nil {
		return Identity{}, errors.Wrap(err, "locating executable")
	}
	return ResolveFrom(exe, env)
}

// ResolveFrom derives an Identity from an explicit executable path.
// The path should be absolute. env may be nil when no host launch
// context is available.
func ResolveFrom(execPath string, env Env) (Identity, error) {
	name, ok := fileStem(filepath.Base(execPath))
	if !ok {
		return Identity{}, errors.Wrapf(ErrNoFileStem, "executable %q", execPath)
	}
	if !utf8.ValidString(execPath) {
		return Identity{}, errors.Wrapf(ErrInvalidEncoding, "executable %q", execPath)
	}
	return Identity{Name: name, Path: appPath(execPath, env)}, nil
}

// fileStem extracts the base name without its final extension.
// Dotfiles such as ".profile" keep their full name. Reports false when
// the name has no usable stem.
func fileStem(base string) (string, bool) {
	switch base {
	case "", ".", "..", "/", `\`:
		return "", false
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	if !utf8.ValidString(stem) {
		return "", false
	}
	return stem, true
}

// bundleRoot walks three ancestors up from the executable and reports
// the enclosing .app bundle root, if any. A bundled binary sits at
// <Bundle>.app/Contents/MacOS/<binary>; nested helper bundles resolve
// to the helper, not the outer application.
func bundleRoot(execPath string) (string, bool) {
	root := filepath.Dir(filepath.Dir(filepath.Dir(execPath)))
	if filepath.Ext(root) != ".app" {
		return "", false
	}
	return root, true
}

// quotePath wraps a path in exactly one pair of double quotes so that
// launch command lines containing spaces survive registry parsing.
// Pre-quoted input is normalized, never double-wrapped.
func quotePath(path string) string {
	return `"` + strings.Trim(path, `"`) + `"`
}
