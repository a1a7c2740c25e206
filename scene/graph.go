// Package scene keeps a node hierarchy on top of the ECS world: names,
// parent/child links, active flags and local transforms.
package scene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
)

// Graph is the scene hierarchy of one world. Roots keep load order.
type Graph struct {
	w     *ecs.World
	roots []ecs.Entity
}

func NewGraph(w *ecs.World) *Graph {
	if w == nil {
		w = ecs.NewWorld()
	}
	return &Graph{w: w}
}

func (g *Graph) World() *ecs.World {
	return g.w
}

// NewNode creates an active node with an identity transform. A zero parent
// makes it a root.
func (g *Graph) NewNode(name string, parent ecs.Entity) ecs.Entity {
	e := ecs.CreateEntity(g.w)
	_ = ecs.Add(g.w, e, component.NameComponent.Kind(), &component.Name{Value: name})
	_ = ecs.Add(g.w, e, component.ActiveComponent.Kind(), &component.Active{Self: true})
	_ = ecs.Add(g.w, e, component.HierarchyComponent.Kind(), &component.Hierarchy{})
	t := component.IdentityTransform()
	_ = ecs.Add(g.w, e, component.TransformComponent.Kind(), &t)
	g.attach(e, parent)
	return e
}

func (g *Graph) Alive(e ecs.Entity) bool {
	return ecs.IsAlive(g.w, e)
}

func (g *Graph) Name(e ecs.Entity) string {
	if n, ok := ecs.Get(g.w, e, component.NameComponent.Kind()); ok {
		return n.Value
	}
	return ""
}

// Roots returns the live root nodes in load order.
func (g *Graph) Roots() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(g.roots))
	for _, r := range g.roots {
		if g.Alive(r) {
			out = append(out, r)
		}
	}
	return out
}

func (g *Graph) Parent(e ecs.Entity) (ecs.Entity, bool) {
	h, ok := ecs.Get(g.w, e, component.HierarchyComponent.Kind())
	if !ok || h.Parent == 0 {
		return 0, false
	}
	p := ecs.Entity(h.Parent)
	return p, g.Alive(p)
}

func (g *Graph) Children(e ecs.Entity) []ecs.Entity {
	h, ok := ecs.Get(g.w, e, component.HierarchyComponent.Kind())
	if !ok {
		return nil
	}
	out := make([]ecs.Entity, 0, len(h.Children))
	for _, c := range h.Children {
		if child := ecs.Entity(c); g.Alive(child) {
			out = append(out, child)
		}
	}
	return out
}

// SetParent moves e under parent, appending it to the parent's children. A
// zero parent makes e a root.
func (g *Graph) SetParent(e, parent ecs.Entity) {
	if !g.Alive(e) || e == parent {
		return
	}
	g.detach(e)
	g.attach(e, parent)
}

// Descendants returns e followed by its whole subtree in depth-first order.
func (g *Graph) Descendants(e ecs.Entity) []ecs.Entity {
	if !g.Alive(e) {
		return nil
	}
	out := []ecs.Entity{e}
	for _, c := range g.Children(e) {
		out = append(out, g.Descendants(c)...)
	}
	return out
}

// FindChild resolves a slash-separated path below e. Inactive nodes are
// found too.
func (g *Graph) FindChild(e ecs.Entity, path string) (ecs.Entity, bool) {
	if !g.Alive(e) {
		return 0, false
	}
	cur := e
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		next, ok := g.child(cur, part)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// Find resolves an absolute path from a root. Only nodes active in the
// hierarchy are returned.
func (g *Graph) Find(path string) (ecs.Entity, bool) {
	root, rest, _ := strings.Cut(strings.Trim(path, "/"), "/")
	for _, r := range g.Roots() {
		if g.Name(r) != root {
			continue
		}
		e := r
		if rest != "" {
			var ok bool
			if e, ok = g.FindChild(r, rest); !ok {
				continue
			}
		}
		if g.ActiveInHierarchy(e) {
			return e, true
		}
	}
	return 0, false
}

func (g *Graph) ActiveSelf(e ecs.Entity) bool {
	a, ok := ecs.Get(g.w, e, component.ActiveComponent.Kind())
	return ok && a.Self
}

func (g *Graph) ActiveInHierarchy(e ecs.Entity) bool {
	if !g.Alive(e) {
		return false
	}
	for cur, ok := e, true; ok; cur, ok = g.Parent(cur) {
		if !g.ActiveSelf(cur) {
			return false
		}
	}
	return true
}

func (g *Graph) SetActive(e ecs.Entity, active bool) {
	if a, ok := ecs.Get(g.w, e, component.ActiveComponent.Kind()); ok {
		a.Self = active
	}
}

// Destroy removes e and its subtree from the world.
func (g *Graph) Destroy(e ecs.Entity) {
	if !g.Alive(e) {
		return
	}
	g.detach(e)
	nodes := g.Descendants(e)
	for i := len(nodes) - 1; i >= 0; i-- {
		ecs.DestroyEntity(g.w, nodes[i])
	}
}

// Clear destroys every node.
func (g *Graph) Clear() {
	ecs.Clear(g.w)
	g.roots = nil
}

func (g *Graph) Layer(e ecs.Entity) int {
	if l, ok := ecs.Get(g.w, e, component.LayerComponent.Kind()); ok {
		return l.Index
	}
	return 0
}

func (g *Graph) SetLayer(e ecs.Entity, layer int) {
	if !g.Alive(e) {
		return
	}
	if l, ok := ecs.Get(g.w, e, component.LayerComponent.Kind()); ok {
		l.Index = layer
		return
	}
	_ = ecs.Add(g.w, e, component.LayerComponent.Kind(), &component.Layer{Index: layer})
}

// Transform returns e's local transform, adding an identity one if missing.
func (g *Graph) Transform(e ecs.Entity) *component.Transform {
	if t, ok := ecs.Get(g.w, e, component.TransformComponent.Kind()); ok {
		return t
	}
	if !g.Alive(e) {
		return nil
	}
	t := component.IdentityTransform()
	_ = ecs.Add(g.w, e, component.TransformComponent.Kind(), &t)
	return &t
}

// WorldMatrix composes the local transforms from the root down to e.
func (g *Graph) WorldMatrix(e ecs.Entity) mgl64.Mat4 {
	m := mgl64.Ident4()
	for cur, ok := e, g.Alive(e); ok; cur, ok = g.Parent(cur) {
		if t, has := ecs.Get(g.w, cur, component.TransformComponent.Kind()); has {
			m = t.Matrix().Mul4(m)
		}
	}
	return m
}

// WorldRotation composes the local rotations from the root down to e.
func (g *Graph) WorldRotation(e ecs.Entity) mgl64.Quat {
	q := mgl64.QuatIdent()
	for cur, ok := e, g.Alive(e); ok; cur, ok = g.Parent(cur) {
		if t, has := ecs.Get(g.w, cur, component.TransformComponent.Kind()); has {
			q = t.Rotation.Normalize().Mul(q)
		}
	}
	return q
}

// Forward is e's world-space +Z direction.
func (g *Graph) Forward(e ecs.Entity) mgl64.Vec3 {
	return g.WorldRotation(e).Rotate(mgl64.Vec3{0, 0, 1})
}

func (g *Graph) child(e ecs.Entity, name string) (ecs.Entity, bool) {
	for _, c := range g.Children(e) {
		if g.Name(c) == name {
			return c, true
		}
	}
	return 0, false
}

func (g *Graph) attach(e, parent ecs.Entity) {
	h, ok := ecs.Get(g.w, e, component.HierarchyComponent.Kind())
	if !ok {
		return
	}
	if !g.Alive(parent) {
		h.Parent = 0
		g.roots = append(g.roots, e)
		return
	}
	h.Parent = uint64(parent)
	if ph, ok := ecs.Get(g.w, parent, component.HierarchyComponent.Kind()); ok {
		ph.Children = append(ph.Children, uint64(e))
	}
}

func (g *Graph) detach(e ecs.Entity) {
	h, ok := ecs.Get(g.w, e, component.HierarchyComponent.Kind())
	if !ok {
		return
	}
	if h.Parent == 0 {
		g.roots = removeEntity(g.roots, e)
		return
	}
	if ph, ok := ecs.Get(g.w, ecs.Entity(h.Parent), component.HierarchyComponent.Kind()); ok {
		ph.Children = removeID(ph.Children, uint64(e))
	}
	h.Parent = 0
}

func removeEntity(list []ecs.Entity, e ecs.Entity) []ecs.Entity {
	for i, x := range list {
		if x == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func removeID(list []uint64, id uint64) []uint64 {
	for i, x := range list {
		if x == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
