package compass

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hudcompass/config"
	"github.com/milk9111/hudcompass/prefabs"
)

type fakeNode struct {
	scene    *fakeScene
	name     string
	parent   *fakeNode
	children []*fakeNode
	active   bool
	dead     bool
	layer    int
	renderer bool
	forward  mgl64.Vec3
	pos      mgl64.Vec3
	scale    mgl64.Vec3
	rot      mgl64.Quat
	culler   *fakeCuller
}

func (n *fakeNode) Name() string { return n.name }
func (n *fakeNode) Valid() bool  { return !n.dead }

func (n *fakeNode) Child(path string) (Node, bool) {
	cur := n
	for _, part := range strings.Split(path, "/") {
		var next *fakeNode
		for _, c := range cur.children {
			if !c.dead && c.name == part {
				next = c
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (n *fakeNode) Descendants() []Node {
	out := []Node{n}
	for _, c := range n.children {
		out = append(out, c.Descendants()...)
	}
	return out
}

func (n *fakeNode) Layer() int { return n.layer }
func (n *fakeNode) SetLayer(layer int) {
	n.scene.mutations++
	n.layer = layer
}

func (n *fakeNode) ActiveInHierarchy() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if !cur.active {
			return false
		}
	}
	return true
}

func (n *fakeNode) SetActive(active bool) {
	n.scene.mutations++
	n.active = active
}

func (n *fakeNode) Forward() mgl64.Vec3 { return n.forward }

func (n *fakeNode) SetLocalPosition(p mgl64.Vec3) {
	n.scene.mutations++
	n.pos = p
}

func (n *fakeNode) SetLocalScale(s mgl64.Vec3) {
	n.scene.mutations++
	n.scale = s
}

func (n *fakeNode) SetLocalRotation(q mgl64.Quat) {
	n.scene.mutations++
	n.rot = q
}

func (n *fakeNode) HasRenderer() bool { return n.renderer }

func (n *fakeNode) add(child *fakeNode) *fakeNode {
	child.scene = n.scene
	child.parent = n
	n.children = append(n.children, child)
	return child
}

type fakeCuller struct {
	renderers []Node
	enabled   []Node
	disabled  []Node
}

func (c *fakeCuller) Contains(bucket Bucket, renderer Node) bool {
	list := c.enabled
	if bucket == BucketDisabled {
		list = c.disabled
	}
	for _, r := range list {
		if r == renderer {
			return true
		}
	}
	return false
}

func (c *fakeCuller) Register(renderer Node, bucket Bucket) {
	c.renderers = append(c.renderers, renderer)
	if bucket == BucketEnabled {
		c.enabled = append(c.enabled, renderer)
	} else {
		c.disabled = append(c.disabled, renderer)
	}
}

type fakeScene struct {
	roots        []*fakeNode
	mutations    int
	instantiated int
	destroyed    []Node
}

func newFakeScene() *fakeScene {
	return &fakeScene{}
}

func (s *fakeScene) root(name string) *fakeNode {
	n := &fakeNode{scene: s, name: name, active: true}
	s.roots = append(s.roots, n)
	return n
}

func (s *fakeScene) Find(path string) (Node, bool) {
	parts := strings.SplitN(path, "/", 2)
	for _, r := range s.roots {
		if r.dead || r.name != parts[0] || !r.active {
			continue
		}
		if len(parts) == 1 {
			return r, true
		}
		n, ok := r.Child(parts[1])
		if ok && n.ActiveInHierarchy() {
			return n, true
		}
	}
	return nil, false
}

func (s *fakeScene) Culler(node Node) (Culler, bool) {
	n, ok := node.(*fakeNode)
	if !ok || n.culler == nil {
		return nil, false
	}
	return n.culler, true
}

func (s *fakeScene) Instantiate(prefab prefabs.Prefab, parent Node) (Node, error) {
	p, ok := parent.(*fakeNode)
	if !ok {
		return nil, errors.New("foreign parent")
	}
	s.mutations++
	s.instantiated++
	return p.add(s.build(prefab.Root)), nil
}

func (s *fakeScene) build(spec prefabs.NodeSpec) *fakeNode {
	n := &fakeNode{scene: s, name: spec.Name, active: spec.IsActive(), scale: mgl64.Vec3{1, 1, 1}}
	_, n.renderer = spec.Components["mesh_renderer"]
	for _, c := range spec.Children {
		n.add(s.build(c))
	}
	return n
}

func (s *fakeScene) Destroy(node Node) {
	n := node.(*fakeNode)
	s.mutations++
	s.destroyed = append(s.destroyed, node)
	for _, d := range n.Descendants() {
		d.(*fakeNode).dead = true
	}
}

type fakeAssets struct {
	prefabs  map[string]prefabs.Prefab
	unloaded int
	loads    int
}

func (a *fakeAssets) LoadPrefab(name string) (prefabs.Prefab, error) {
	a.loads++
	p, ok := a.prefabs[name]
	if !ok {
		return prefabs.Prefab{}, fmt.Errorf("prefab %q not found", name)
	}
	return p, nil
}

func (a *fakeAssets) Unload() { a.unloaded++ }

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) errors() int {
	n := 0
	for _, line := range l.lines {
		if strings.HasPrefix(line, "error: ") {
			n++
		}
	}
	return n
}

func compassPrefab() prefabs.Prefab {
	renderer := map[string]any{"mesh_renderer": map[string]any{"shape": "ring"}}
	return prefabs.Prefab{Root: prefabs.NodeSpec{
		Name:       "Compass Mod HUD",
		Components: renderer,
		Children: []prefabs.NodeSpec{
			{Name: "Compass Face", Components: renderer},
			{Name: "Compass North Mark", Components: renderer},
			{Name: "Compass Needle", Components: renderer},
		},
	}}
}

// hostFixture is the host scene layout the add-on expects.
type hostFixture struct {
	scene  *fakeScene
	hud    *fakeNode
	player *fakeNode
	ref    *fakeNode
	culler *fakeCuller
	assets *fakeAssets
	log    *recordingLogger
	mod    *Mod
}

func newHostFixture() *hostFixture {
	f := &hostFixture{scene: newFakeScene(), log: &recordingLogger{}}
	system := f.scene.root("__SYSTEM")
	f.hud = system.add(&fakeNode{name: "HUD", active: true})
	f.culler = &fakeCuller{}
	f.hud.culler = f.culler
	steps := f.hud.add(&fakeNode{name: "Steps", active: true})
	f.ref = steps.add(&fakeNode{name: "Steps Icon", active: false, layer: 5, renderer: true})
	home := system.add(&fakeNode{name: "FPS Home", active: true})
	f.player = home.add(&fakeNode{name: "FPSController - Prince", active: true, forward: mgl64.Vec3{0, 0, 1}})

	f.assets = &fakeAssets{prefabs: map[string]prefabs.Prefab{"Compass Mod HUD": compassPrefab()}}
	f.mod = New(f.scene, config.Defaults(), func() (PrefabSource, error) { return f.assets, nil }, f.log)
	return f
}
