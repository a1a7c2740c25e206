package bundle

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/milk9111/hudcompass/prefabs"
)

func packFS(t *testing.T, fsys fstest.MapFS) *Bundle {
	t.Helper()
	var buf bytes.Buffer
	if err := Pack(&buf, fsys); err != nil {
		t.Fatalf("pack: %v", err)
	}
	b, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return b
}

func TestEmbeddedCompassSourcesPackAndLoad(t *testing.T) {
	var buf bytes.Buffer
	if err := Pack(&buf, prefabs.CompassBundleFS()); err != nil {
		t.Fatalf("pack: %v", err)
	}

	path := filepath.Join(t.TempDir(), "compass.bundle")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if b.Source() != path {
		t.Fatalf("expected source %q, got %q", path, b.Source())
	}

	prefab, err := b.LoadPrefab("Compass Mod HUD")
	if err != nil {
		t.Fatalf("load prefab: %v", err)
	}
	if prefab.Root.Name != "Compass Mod HUD" {
		t.Fatalf("unexpected root %q", prefab.Root.Name)
	}
	if _, ok := prefab.Root.Child("Compass Needle"); !ok {
		t.Fatalf("needle must be a direct child of the prefab root")
	}
}

func TestLoadPrefabErrors(t *testing.T) {
	manifest := []byte("name: test\nprefabs:\n  - name: Widget\n    file: widget.yaml\n")

	tests := []struct {
		name    string
		files   fstest.MapFS
		prefab  string
		wantErr error
		check   func(t *testing.T, err error)
	}{
		{
			name: "unknown_prefab",
			files: fstest.MapFS{
				ManifestName:  {Data: manifest},
				"widget.yaml": {Data: []byte("name: Widget\n")},
			},
			prefab:  "Other",
			wantErr: ErrPrefabNotFound,
		},
		{
			name: "schema_rejects_unknown_shape",
			files: fstest.MapFS{
				ManifestName: {Data: manifest},
				"widget.yaml": {Data: []byte("name: Widget\ncomponents:\n  mesh_renderer:\n    shape: teapot\n")},
			},
			prefab: "Widget",
			check: func(t *testing.T, err error) {
				if err == nil {
					t.Fatalf("expected schema error")
				}
			},
		},
		{
			name: "schema_rejects_missing_name",
			files: fstest.MapFS{
				ManifestName:  {Data: manifest},
				"widget.yaml": {Data: []byte("children:\n  - name: a\n")},
			},
			prefab: "Widget",
			check: func(t *testing.T, err error) {
				if err == nil {
					t.Fatalf("expected schema error")
				}
			},
		},
		{
			name: "missing_file",
			files: fstest.MapFS{
				ManifestName: {Data: manifest},
			},
			prefab: "Widget",
			check: func(t *testing.T, err error) {
				if err == nil {
					t.Fatalf("expected missing file error")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := packFS(t, tc.files)
			_, err := b.LoadPrefab(tc.prefab)
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.check != nil {
				tc.check(t, err)
			}
		})
	}
}

func TestPackRequiresManifest(t *testing.T) {
	var buf bytes.Buffer
	err := Pack(&buf, fstest.MapFS{"widget.yaml": {Data: []byte("name: Widget\n")}})
	if !errors.Is(err, ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
}

func TestUnloadKeepsNothing(t *testing.T) {
	b, err := FromFS(prefabs.CompassBundleFS())
	if err != nil {
		t.Fatalf("from fs: %v", err)
	}
	prefab, err := b.LoadPrefab("Compass Mod HUD")
	if err != nil {
		t.Fatalf("load prefab: %v", err)
	}

	b.Unload()

	if _, err := b.LoadPrefab("Compass Mod HUD"); !errors.Is(err, ErrUnloaded) {
		t.Fatalf("expected ErrUnloaded, got %v", err)
	}
	if _, err := prefab.Assets.ReadFile(ManifestName); !errors.Is(err, ErrUnloaded) {
		t.Fatalf("prefab assets should be gone after unload, got %v", err)
	}
	if prefab.Root.Name != "Compass Mod HUD" {
		t.Fatalf("decoded prefab must survive unload")
	}
}
