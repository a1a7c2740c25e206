package system

import (
	"testing"

	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
	"github.com/milk9111/hudcompass/prefabs"
	"github.com/milk9111/hudcompass/scene"
)

func TestCullerSystem(t *testing.T) {
	g := scene.NewGraph(nil)
	rect := map[string]any{"mesh_renderer": map[string]any{"shape": "rect", "width": 4, "height": 4}}
	hud, err := g.Build(prefabs.NodeSpec{
		Name: "HUD",
		Components: map[string]any{
			"culler": map[string]any{"enabled": []any{"A"}, "disabled": []any{"B"}},
		},
		Children: []prefabs.NodeSpec{
			{Name: "A", Components: rect},
			{Name: "B", Components: rect},
			{Name: "Loose", Components: rect},
		},
	}, 0, nil, "test")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	w := g.World()
	renderer := func(name string) *component.MeshRenderer {
		e, _ := g.FindChild(hud, name)
		mr, _ := ecs.Get(w, e, component.MeshRendererComponent.Kind())
		return mr
	}

	sys := NewCullerSystem()
	sys.Update(w)
	if renderer("A").Enabled || renderer("B").Enabled {
		t.Fatal("expected both bucketed renderers off while the culler is hidden")
	}
	if !renderer("Loose").Enabled {
		t.Fatal("expected unlisted renderers untouched")
	}

	c, _ := ecs.Get(w, hud, component.CullerComponent.Kind())
	c.Visible = true
	sys.Update(w)
	if !renderer("A").Enabled {
		t.Fatal("expected the enabled bucket to follow visibility")
	}
	if renderer("B").Enabled {
		t.Fatal("expected the disabled bucket to stay off")
	}

	// Destroyed renderers stay listed and are skipped.
	a, _ := g.FindChild(hud, "A")
	g.Destroy(a)
	sys.Update(w)
}
