//go:build linux

package identity

import "testing"

type staticEnv struct {
	image string
}

func (e staticEnv) AppImagePath() string { return e.image }

func TestAppPath_AppImage(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want string
	}{
		{"appimage launch", staticEnv{image: "/home/user/Apps/Lodestar.AppImage"}, "/home/user/Apps/Lodestar.AppImage"},
		{"ordinary launch", staticEnv{}, "/usr/local/bin/lodestar"},
		{"no environment", nil, "/usr/local/bin/lodestar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ResolveFrom("/usr/local/bin/lodestar", tt.env)
			if err != nil {
				t.Fatalf("ResolveFrom() error = %v", err)
			}
			if id.Path != tt.want {
				t.Errorf("Path = %q, want %q", id.Path, tt.want)
			}
			if id.Name != "lodestar" {
				t.Errorf("Name = %q, want %q", id.Name, "lodestar")
			}
		})
	}
}

func TestProcessEnv_AppImagePath(t *testing.T) {
	t.Setenv("APPIMAGE", "/mnt/img/Lodestar.AppImage")
	if got := (ProcessEnv{}).AppImagePath(); got != "/mnt/img/Lodestar.AppImage" {
		t.Errorf("AppImagePath() = %q", got)
	}

	t.Setenv("APPIMAGE", "")
	if got := (ProcessEnv{}).AppImagePath(); got != "" {
		t.Errorf("AppImagePath() = %q, want empty", got)
	}
}
