package installid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/uuid"

	"github.com/lodestar-app/hostkit/internal/fspath"
)

func tempPath(t *testing.T) fspath.Path {
	t.Helper()
	p, err := fspath.NewDir(t.TempDir()).JoinFile("install_id")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadFrom_GeneratesOnFirstRun(t *testing.T) {
	p := tempPath(t)

	id, err := loadFrom(p)
	if err != nil {
		t.Fatalf("loadFrom: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", id, err)
	}

	data, err := os.ReadFile(p.Filepath())
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != id+"\n" {
		t.Errorf("persisted %q, want %q", got, id+"\n")
	}
}

func TestLoadFrom_StableAcrossRuns(t *testing.T) {
	p := tempPath(t)

	first, err := loadFrom(p)
	if err != nil {
		t.Fatal(err)
	}
	second, err := loadFrom(p)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("id changed across runs: %q then %q", first, second)
	}
}

func TestLoadFrom_RegeneratesCorruptedID(t *testing.T) {
	p := tempPath(t)

	if _, err := p.Ensure(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p.Filepath(), []byte("not-a-uuid\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	id, err := loadFrom(p)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("regenerated id %q is not a UUID: %v", id, err)
	}
}

func TestLoad_CreatesUnderDataRoot(t *testing.T) {
	t.Cleanup(xdg.Reload)
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	xdg.Reload()

	id, err := Load("Lodestar")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("id %q is not a UUID: %v", id, err)
	}
	if _, err := os.Stat(filepath.Join(dataHome, "Lodestar", "install_id")); err != nil {
		t.Errorf("install_id not where expected: %v", err)
	}
}
