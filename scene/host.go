package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hudcompass/compass"
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
	"github.com/milk9111/hudcompass/prefabs"
)

// Host exposes the graph to the compass add-on.
type Host struct {
	g *Graph
}

var _ compass.Scene = (*Host)(nil)

func NewHost(g *Graph) *Host {
	return &Host{g: g}
}

func (h *Host) Graph() *Graph {
	return h.g
}

// NodeOf wraps an entity as a compass node.
func (h *Host) NodeOf(e ecs.Entity) compass.Node {
	return &Node{g: h.g, e: e}
}

func (h *Host) Find(path string) (compass.Node, bool) {
	e, ok := h.g.Find(path)
	if !ok {
		return nil, false
	}
	return h.NodeOf(e), true
}

func (h *Host) Culler(n compass.Node) (compass.Culler, bool) {
	e, ok := h.entity(n)
	if !ok {
		return nil, false
	}
	if _, ok := ecs.Get(h.g.w, e, component.CullerComponent.Kind()); !ok {
		return nil, false
	}
	return &culler{g: h.g, e: e}, true
}

func (h *Host) Instantiate(prefab prefabs.Prefab, parent compass.Node) (compass.Node, error) {
	p, ok := h.entity(parent)
	if !ok {
		return nil, fmt.Errorf("instantiate %q: parent is not a live node of this scene", prefab.Root.Name)
	}
	e, err := h.g.Instantiate(prefab, p)
	if err != nil {
		return nil, err
	}
	return h.NodeOf(e), nil
}

func (h *Host) Destroy(n compass.Node) {
	if e, ok := h.entity(n); ok {
		h.g.Destroy(e)
	}
}

func (h *Host) entity(n compass.Node) (ecs.Entity, bool) {
	node, ok := n.(*Node)
	if !ok || node == nil || node.g != h.g || !node.Valid() {
		return 0, false
	}
	return node.e, true
}

// Node is a handle to one graph entity.
type Node struct {
	g *Graph
	e ecs.Entity
}

func (n *Node) Entity() ecs.Entity { return n.e }

func (n *Node) Name() string { return n.g.Name(n.e) }

func (n *Node) Valid() bool { return n.g.Alive(n.e) }

func (n *Node) Child(path string) (compass.Node, bool) {
	e, ok := n.g.FindChild(n.e, path)
	if !ok {
		return nil, false
	}
	return &Node{g: n.g, e: e}, true
}

func (n *Node) Descendants() []compass.Node {
	nodes := n.g.Descendants(n.e)
	out := make([]compass.Node, len(nodes))
	for i, e := range nodes {
		out[i] = &Node{g: n.g, e: e}
	}
	return out
}

func (n *Node) Layer() int { return n.g.Layer(n.e) }

func (n *Node) SetLayer(layer int) { n.g.SetLayer(n.e, layer) }

func (n *Node) ActiveInHierarchy() bool { return n.g.ActiveInHierarchy(n.e) }

func (n *Node) SetActive(active bool) { n.g.SetActive(n.e, active) }

func (n *Node) Forward() mgl64.Vec3 { return n.g.Forward(n.e) }

func (n *Node) SetLocalPosition(p mgl64.Vec3) {
	if t := n.g.Transform(n.e); t != nil {
		t.Position = p
	}
}

func (n *Node) SetLocalScale(s mgl64.Vec3) {
	if t := n.g.Transform(n.e); t != nil {
		t.Scale = s
	}
}

func (n *Node) SetLocalRotation(q mgl64.Quat) {
	if t := n.g.Transform(n.e); t != nil {
		t.Rotation = q
	}
}

func (n *Node) HasRenderer() bool {
	return ecs.Has(n.g.w, n.e, component.MeshRendererComponent.Kind())
}

// culler writes into a Culler component's membership lists.
type culler struct {
	g *Graph
	e ecs.Entity
}

func (c *culler) Contains(bucket compass.Bucket, renderer compass.Node) bool {
	r, ok := renderer.(*Node)
	if !ok || r == nil {
		return false
	}
	cc, ok := ecs.Get(c.g.w, c.e, component.CullerComponent.Kind())
	if !ok {
		return false
	}
	if bucket == compass.BucketEnabled {
		return cc.InEnabled(uint64(r.e))
	}
	return cc.InDisabled(uint64(r.e))
}

func (c *culler) Register(renderer compass.Node, bucket compass.Bucket) {
	r, ok := renderer.(*Node)
	if !ok || r == nil {
		return
	}
	if cc, ok := ecs.Get(c.g.w, c.e, component.CullerComponent.Kind()); ok {
		cc.Track(uint64(r.e), bucket == compass.BucketEnabled)
	}
}
