package identity

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestResolveFrom_Name(t *testing.T) {
	tests := []struct {
		name     string
		execPath string
		want     string
	}{
		{"plain binary", "/usr/local/bin/myapp", "myapp"},
		{"extension stripped", "/opt/tools/flasher.bin", "flasher"},
		{"exe extension", "/opt/lodestar/lodestar.exe", "lodestar"},
		{"multiple dots", "/opt/files/archive.tar.gz", "archive.tar"},
		{"dotfile keeps name", "/home/user/.lodestar", ".lodestar"},
		{"trailing dot", "/usr/bin/app.", "app"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ResolveFrom(tt.execPath, nil)
			if err != nil {
				t.Fatalf("ResolveFrom(%q) error = %v", tt.execPath, err)
			}
			if id.Name != tt.want {
				t.Errorf("Name = %q, want %q", id.Name, tt.want)
			}
			if id.Path == "" {
				t.Error("Path is empty")
			}
		})
	}
}

func TestResolveFrom_NoFileStem(t *testing.T) {
	for _, execPath := range []string{"", ".", "..", "/"} {
		t.Run("path_"+execPath, func(t *testing.T) {
			_, err := ResolveFrom(execPath, nil)
			if !errors.Is(err, ErrNoFileStem) {
				t.Errorf("ResolveFrom(%q) error = %v, want ErrNoFileStem", execPath, err)
			}
		})
	}
}

func TestResolveFrom_InvalidEncoding(t *testing.T) {
	// The base name is clean UTF-8 but an ancestor directory is not.
	execPath := "/tmp/b\xffad/app"
	_, err := ResolveFrom(execPath, nil)
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("error = %v, want ErrInvalidEncoding", err)
	}
}

func TestResolveFrom_NonUTF8Stem(t *testing.T) {
	// A garbled stem is a missing name, not an encoding failure of the
	// whole path.
	_, err := ResolveFrom("/usr/bin/\xff\xfe", nil)
	if !errors.Is(err, ErrNoFileStem) {
		t.Errorf("error = %v, want ErrNoFileStem", err)
	}
}

func TestResolve_RunningProcess(t *testing.T) {
	id, err := Resolve(ProcessEnv{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if id.Name == "" {
		t.Error("Name is empty")
	}
	if id.Path == "" {
		t.Error("Path is empty")
	}
}

func TestBundleRoot(t *testing.T) {
	tests := []struct {
		execPath string
		want     string
		found    bool
	}{
		{"/Applications/MyApp.app/Contents/MacOS/binary", "/Applications/MyApp.app", true},
		{"/usr/local/bin/myapp", "", false},
		{
			"/Applications/MyApp.app/Contents/Frameworks/Helper.app/Contents/MacOS/binary",
			"/Applications/MyApp.app/Contents/Frameworks/Helper.app",
			true,
		},
		{"/Applications/MyApp.app", "", false},
		{"/a/b", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.execPath, func(t *testing.T) {
			got, ok := bundleRoot(tt.execPath)
			if ok != tt.found {
				t.Fatalf("bundleRoot(%q) found = %v, want %v", tt.execPath, ok, tt.found)
			}
			if filepath.ToSlash(got) != tt.want {
				t.Errorf("bundleRoot(%q) = %q, want %q", tt.execPath, got, tt.want)
			}
		})
	}
}

func TestQuotePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`C:\Program Files\Lodestar\lodestar.exe`, `"C:\Program Files\Lodestar\lodestar.exe"`},
		{`"C:\already\quoted.exe"`, `"C:\already\quoted.exe"`},
		{`C:\plain.exe`, `"C:\plain.exe"`},
		{"", `""`},
	}
	for _, tt := range tests {
		got := quotePath(tt.input)
		if got != tt.want {
			t.Errorf("quotePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
