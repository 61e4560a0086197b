package fspath

import (
	"github.com/adrg/xdg"
)

// DataRoot returns the platform user-data base directory (XDG data
// home, ~/Library/Application Support, %LOCALAPPDATA%) as an
// unprovisioned directory path.
func DataRoot() Path {
	return NewDir(xdg.DataHome)
}

// DataFilePath builds the path of a file directly under the
// application's data directory. Nothing is created; callers provision
// explicitly with Ensure.
func DataFilePath(appName, fileName string) (Path, error) {
	dir, err := DataRoot().JoinDir(appName)
	if err != nil {
		return Path{}, err
	}
	return dir.JoinFile(fileName)
}

// DataChildDirPath builds the path of the application's data
// directory, descending one more level when childDir is non-empty.
// Nothing is created.
func DataChildDirPath(appName, childDir string) (Path, error) {
	dir, err := DataRoot().JoinDir(appName)
	if err != nil {
		return Path{}, err
	}
	if childDir == "" {
		return dir, nil
	}
	return dir.JoinDir(childDir)
}
