// Package fspath builds and provisions filesystem paths for application
// data. A Path is a small value annotated with the kind of node it
// names — directory or file. Joins are legal only on directory paths,
// and Ensure creates whatever is missing while verifying the kind of
// whatever already exists. Chains read left to right:
//
//	p, err := fspath.NewDir(root).JoinDir("Lodestar")
//	p, err = p.JoinFile("config.yaml")
//	p, err = p.Ensure()
package fspath

import (
	"os"
	"path/filepath"
	"syscall"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for path building and provisioning.
var (
	// ErrJoinOnFile indicates a join was attempted on a file path.
	// A file name is a leaf, not a prefix.
	ErrJoinOnFile = errors.New("cannot join onto a file path")

	// ErrNotADirectory indicates a path that must be a directory is
	// occupied by something else.
	ErrNotADirectory = errors.New("path exists but is not a directory")

	// ErrNotAFile indicates a path that must be a regular file is
	// occupied by something else.
	ErrNotAFile = errors.New("path exists but is not a regular file")

	// ErrNonUTF8Path indicates the path cannot be represented as text.
	ErrNonUTF8Path = errors.New("path is not valid UTF-8")
)

// Kind tags a Path as naming a directory or a file.
type Kind int

const (
	Directory Kind = iota
	File
)

// String returns the kind name for error messages and logs.
func (k Kind) String() string {
	if k == File {
		return "file"
	}
	return "directory"
}

// Path is a filesystem path annotated with its kind. The zero value is
// an empty directory path; construct with NewDir or NewFile.
type Path struct {
	path string
	kind Kind
}

// NewDir creates a directory-kind path. No I/O happens.
func NewDir(path string) Path {
	return Path{path: path, kind: Directory}
}

// NewFile creates a file-kind path. No I/O happens.
func NewFile(path string) Path {
	return Path{path: path, kind: File}
}

// Kind reports whether the path names a directory or a file.
func (p Path) Kind() Kind {
	return p.kind
}

// JoinDir appends a directory segment. The result stays directory-kind.
func (p Path) JoinDir(segment string) (Path, error) {
	if p.kind == File {
		return Path{}, errors.Wrapf(ErrJoinOnFile, "joining %q onto %q", segment, p.path)
	}
	return Path{path: filepath.Join(p.path, segment), kind: Directory}, nil
}

// JoinFile appends a file segment, switching the path to file-kind.
// No further joins are legal on the result.
func (p Path) JoinFile(segment string) (Path, error) {
	if p.kind == File {
		return Path{}, errors.Wrapf(ErrJoinOnFile, "joining %q onto %q", segment, p.path)
	}
	return Path{path: filepath.Join(p.path, segment), kind: File}, nil
}

// Ensure provisions the path: a directory gets its full chain created,
// a file additionally gets an empty file when absent. Idempotent, and
// tolerant of concurrent provisioning — a path that already exists with
// the correct kind is success no matter who created it.
func (p Path) Ensure() (Path, error) {
	var err error
	if p.kind == Directory {
		err = ensureDir(p.path)
	} else {
		err = ensureFile(p.path)
	}
	if err != nil {
		return Path{}, err
	}
	return p, nil
}

// Filepath returns the accumulated path.
func (p Path) Filepath() string {
	return p.path
}

// Text returns the path as text, failing on non-UTF-8 bytes.
func (p Path) Text() (string, error) {
	if !utf8.ValidString(p.path) {
		return "", errors.Wrapf(ErrNonUTF8Path, "%q", p.path)
	}
	return p.path, nil
}

func ensureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return errors.Wrapf(ErrNotADirectory, "%q", path)
	}
	// Stat reports ENOTDIR, not ENOENT, when an ancestor is occupied
	// by a regular file; MkdirAll below names the conflicting ancestor.
	if !os.IsNotExist(err) && !errors.Is(err, syscall.ENOTDIR) {
		return errors.Wrapf(err, "stat %q", path)
	}
	if mkErr := os.MkdirAll(path, 0o755); mkErr != nil {
		// A concurrent provisioner may have won the race.
		if info, statErr := os.Stat(path); statErr == nil {
			if info.IsDir() {
				return nil
			}
			return errors.Wrapf(ErrNotADirectory, "%q", path)
		}
		if errors.Is(mkErr, syscall.ENOTDIR) {
			conflict := path
			var pathErr *os.PathError
			if errors.As(mkErr, &pathErr) {
				conflict = pathErr.Path
			}
			return errors.Wrapf(ErrNotADirectory, "%q", conflict)
		}
		return errors.Wrap(mkErr, "creating directory chain")
	}
	return nil
}

func ensureFile(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.Mode().IsRegular() {
			return nil
		}
		return errors.Wrapf(ErrNotAFile, "%q", path)
	}
	// ENOTDIR means the parent chain runs through a regular file; the
	// ensureDir call below reports it as ErrNotADirectory.
	if !os.IsNotExist(err) && !errors.Is(err, syscall.ENOTDIR) {
		return errors.Wrapf(err, "stat %q", path)
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			// Lost the creation race; accept the winner's file.
			if info, statErr := os.Stat(path); statErr == nil && info.Mode().IsRegular() {
				return nil
			}
			return errors.Wrapf(ErrNotAFile, "%q", path)
		}
		return errors.Wrap(err, "creating file")
	}
	return f.Close()
}
