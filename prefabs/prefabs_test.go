package prefabs

import (
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff0000", want: color.NRGBA{R: 255, A: 255}},
		{in: "00ff0080", want: color.NRGBA{G: 255, A: 128}},
		{in: " #0000FF ", want: color.NRGBA{B: 255, A: 255}},
		{in: "#12345", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "notacolor", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if c, err := ParseColor("Crimson"); err != nil || c == nil {
		t.Fatalf("expected named color to resolve, got %v %v", c, err)
	}
}

func TestCleanPaths(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"prefab_bare", cleanPrefabPath, "wall", "wall.yaml"},
		{"prefab_dir", cleanPrefabPath, "prefabs/wall.yaml", "wall.yaml"},
		{"prefab_empty", cleanPrefabPath, "", ""},
		{"script_bare", cleanScriptPath, "patrol", "scripts/patrol.tengo"},
		{"script_dir", cleanScriptPath, "scripts/patrol.tengo", "scripts/patrol.tengo"},
		{"script_full", cleanScriptPath, "prefabs/scripts/gravity.tengo", "scripts/gravity.tengo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEmbeddedPrefabsDecode(t *testing.T) {
	names, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil || len(names) == 0 {
		t.Fatalf("expected embedded prefabs, got %v (%v)", names, err)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name == "" || len(spec.Components) == 0 {
				t.Fatalf("expected a named prefab with components, got %+v", spec)
			}
			if raw, ok := spec.Components["body"]; ok {
				body, err := DecodeComponentSpec[BodyComponentSpec](raw)
				if err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body.Width <= 0 || body.Height <= 0 {
					t.Fatalf("expected a sized body, got %+v", body)
				}
			}
			if raw, ok := spec.Components["sprite"]; ok {
				sprite, err := DecodeComponentSpec[SpriteComponentSpec](raw)
				if err != nil {
					t.Fatalf("decode sprite: %v", err)
				}
				if sprite.Color.Color == nil {
					t.Fatalf("expected sprite color in %s", name)
				}
			}
		})
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	if err := os.WriteFile(filepath.Join(dir, "wall.yaml"), []byte("name: disk_wall\ncomponents:\n  body: {width: 1, height: 1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadEntityBuildSpec("wall")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Name != "disk_wall" {
		t.Fatalf("expected the on-disk copy, got %q", spec.Name)
	}

	if _, err := LoadScript("patrol"); err != nil {
		t.Fatalf("expected embedded fallback for scripts, got %v", err)
	}
	if _, err := Load("does_not_exist"); err == nil {
		t.Fatalf("expected error for a missing prefab")
	}
}

func TestChangeName(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
		name string
	}{
		{"prefabs/wall.yaml", ChangePrefab, true, "wall.yaml"},
		{"prefabs/scripts/patrol.tengo", ChangeScript, true, "scripts/patrol.tengo"},
		{"prefabs/README.md", 0, false, ""},
	}
	for _, tt := range tests {
		kind, ok := classify(tt.path)
		if ok != tt.ok {
			t.Fatalf("%s: expected ok=%v", tt.path, tt.ok)
		}
		if !ok {
			continue
		}
		if kind != tt.kind {
			t.Fatalf("%s: expected kind %v, got %v", tt.path, tt.kind, kind)
		}
		if got := (Change{Path: tt.path, Kind: kind}).Name(); got != tt.name {
			t.Fatalf("%s: expected name %q, got %q", tt.path, tt.name, got)
		}
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "crate.yaml")
	if err := os.WriteFile(path, []byte("name: crate\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Events:
		if change.Kind != ChangePrefab || change.Name() != "crate.yaml" {
			t.Fatalf("unexpected change %+v", change)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for change event")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error watching a missing directory")
	}
}
