package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmbeddedPrefabs(t *testing.T) {
	for _, name := range []string{"crate.yaml", "shelf.yaml", "toolbox.yaml", "lockbox.yaml", "bolt.yaml", "lift.yaml", "floor.yaml", "wrench.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name == "" {
				t.Errorf("prefab has no name")
			}
			if len(spec.Components) == 0 {
				t.Errorf("prefab has no components")
			}
		})
	}
}

func TestDecodeContainerSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("toolbox.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c, err := DecodeComponentSpec[ContainerComponentSpec](spec.Components["container"])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Capacity != 3 || c.Rotation != 15 || !c.AutoInteract {
		t.Errorf("unexpected container spec %+v", c)
	}
	if c.Depth == nil || *c.Depth != 0.4 {
		t.Errorf("depth = %v, want 0.4", c.Depth)
	}

	crate, err := LoadEntityBuildSpec("crate.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cc, err := DecodeComponentSpec[ContainerComponentSpec](crate.Components["container"])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cc.Depth != nil {
		t.Errorf("crate depth should be unset, got %v", *cc.Depth)
	}
}

func TestLoadSceneSpec(t *testing.T) {
	tests := []string{"demo", "demo.yaml", "scenes/demo.yaml"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			scene, err := LoadSceneSpec(name)
			if err != nil {
				t.Fatalf("load scene: %v", err)
			}
			if scene.Name != "demo" {
				t.Errorf("name = %q", scene.Name)
			}
			ids := map[string]bool{}
			for _, item := range scene.Items {
				if ids[item.ID] {
					t.Errorf("duplicate id %q", item.ID)
				}
				ids[item.ID] = true
			}
			for _, item := range scene.Items {
				if item.In != "" && !ids[item.In] {
					t.Errorf("%q is in unknown item %q", item.ID, item.In)
				}
			}
		})
	}

	found := false
	for _, s := range Scenes() {
		if s == "demo" {
			found = true
		}
	}
	if !found {
		t.Errorf("Scenes() = %v, want demo listed", Scenes())
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff8000", want: color.NRGBA{R: 255, G: 128, A: 255}},
		{in: "00000080", want: color.NRGBA{A: 128}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := map[string]string{
		"/home/me/game/prefabs/crate.yaml":     "crate.yaml",
		"prefabs/scenes/demo.yaml":             "scenes/demo.yaml",
		filepath.Join("prefabs", "shelf.yaml"): "shelf.yaml",
		"bolt.yaml":                            "bolt.yaml",
	}
	for in, want := range tests {
		if got := Name(in); got != want {
			t.Errorf("Name(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "scenes")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(sub, "demo.yaml")
	if err := os.WriteFile(target, []byte("name: demo\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != target {
			t.Errorf("event for %q, want %q", got, target)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}
