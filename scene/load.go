package scene

import (
	"fmt"

	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/prefabs"
)

// Load replaces the graph contents with spec's roots and announces the load
// on the world event queue. Scene assets are read from the prefabs package.
func (g *Graph) Load(spec prefabs.SceneSpec) error {
	g.Clear()
	for _, root := range spec.Roots {
		if _, err := g.Build(root, 0, diskAssets{}, spec.Name); err != nil {
			g.Clear()
			return fmt.Errorf("load scene %q: %w", spec.Name, err)
		}
	}
	g.w.Events().Push(ecs.Event{Type: ecs.EventSceneLoaded, Data: spec.Name})
	return nil
}

// LoadFile reads a scene spec by name and loads it.
func (g *Graph) LoadFile(name string) error {
	spec, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return g.Load(spec)
}

// Reenter asks scene-load listeners to run again on the current contents.
func (g *Graph) Reenter() {
	g.w.Events().Push(ecs.Event{Type: ecs.EventSceneReentered})
}

type diskAssets struct{}

func (diskAssets) ReadFile(name string) ([]byte, error) {
	return prefabs.Load(name)
}
