package system

import (
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
)

// CullerSystem applies each culler's buckets to its renderers: enabled ones
// follow the culler's visibility, disabled ones stay off. Renderers the
// culler does not list are left alone.
type CullerSystem struct{}

func NewCullerSystem() *CullerSystem {
	return &CullerSystem{}
}

func (c *CullerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CullerComponent.Kind(), func(_ ecs.Entity, culler *component.Culler) {
		apply := func(list []uint64, enabled bool) {
			for _, id := range list {
				if mr, ok := ecs.Get(w, ecs.Entity(id), component.MeshRendererComponent.Kind()); ok {
					mr.Enabled = enabled
				}
			}
		}
		apply(culler.Enabled, culler.Visible)
		apply(culler.Disabled, false)
	})
}
