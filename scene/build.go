package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
	"github.com/milk9111/hudcompass/prefabs"
)

var errNoAssets = errors.New("no asset reader for image")

type buildContext struct {
	Source string
	Assets prefabs.AssetReader
	// cullers are resolved once the whole subtree exists.
	cullers []pendingCuller
}

type pendingCuller struct {
	node ecs.Entity
	spec prefabs.CullerComponentSpec
}

type componentBuildFn func(g *Graph, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":         addPlayerTag,
	"hud_tag":            addHUDTag,
	"reveal_after_intro": addRevealAfterIntro,
	"screen_space":       addScreenSpace,
	"transform":          addTransform,
	"layer":              addLayer,
	"render_layer":       addRenderLayer,
	"mesh_renderer":      addMeshRenderer,
	"camera":             addCamera,
	"culler":             addCuller,
	"look":               addLook,
	"intro_sequence":     addIntroSequence,
}

var componentBuildOrder = []string{
	"player_tag",
	"hud_tag",
	"reveal_after_intro",
	"screen_space",
	"transform",
	"layer",
	"render_layer",
	"mesh_renderer",
	"camera",
	"culler",
	"look",
	"intro_sequence",
}

// Build creates spec and its subtree under parent (zero for a root).
func (g *Graph) Build(spec prefabs.NodeSpec, parent ecs.Entity, assets prefabs.AssetReader, source string) (ecs.Entity, error) {
	ctx := &buildContext{Source: source, Assets: assets}
	e, err := g.buildNode(spec, parent, ctx)
	if err != nil {
		return 0, err
	}
	for _, pc := range ctx.cullers {
		if err := g.resolveCuller(pc); err != nil {
			g.Destroy(e)
			return 0, fmt.Errorf("build %q: %w", source, err)
		}
	}
	return e, nil
}

// Instantiate builds a prefab as a child of parent.
func (g *Graph) Instantiate(prefab prefabs.Prefab, parent ecs.Entity) (ecs.Entity, error) {
	return g.Build(prefab.Root, parent, prefab.Assets, prefab.Root.Name)
}

func (g *Graph) buildNode(spec prefabs.NodeSpec, parent ecs.Entity, ctx *buildContext) (ecs.Entity, error) {
	if spec.Name == "" {
		return 0, fmt.Errorf("build %q: node without a name", ctx.Source)
	}

	e := g.NewNode(spec.Name, parent)
	g.SetActive(e, spec.IsActive())

	if err := g.addComponents(e, spec, ctx); err != nil {
		g.Destroy(e)
		return 0, err
	}

	for _, child := range spec.Children {
		if _, err := g.buildNode(child, e, ctx); err != nil {
			g.Destroy(e)
			return 0, err
		}
	}
	return e, nil
}

func (g *Graph) addComponents(e ecs.Entity, spec prefabs.NodeSpec, ctx *buildContext) error {
	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](g, e, raw, ctx); err != nil {
			return fmt.Errorf("build %q: %q: add %q: %w", ctx.Source, spec.Name, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("build %q: %q: no builder for component %q", ctx.Source, spec.Name, names[0])
	}
	return nil
}

func addPlayerTag(g *Graph, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(g.w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addHUDTag(g *Graph, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(g.w, e, component.HUDTagComponent.Kind(), &component.HUDTag{})
}

func addRevealAfterIntro(g *Graph, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(g.w, e, component.RevealAfterIntroComponent.Kind(), &component.RevealAfterIntro{})
}

func addScreenSpace(g *Graph, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(g.w, e, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(g *Graph, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	if spec.ScaleZ == 0 {
		spec.ScaleZ = 1
	}
	return ecs.Add(g.w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: EulerRotation(spec.RotationX, spec.RotationY, spec.RotationZ),
		Scale:    mgl64.Vec3{spec.ScaleX, spec.ScaleY, spec.ScaleZ},
	})
}

// EulerRotation converts Euler degrees to a quaternion, applying z first,
// then x, then y.
func EulerRotation(x, y, z float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(y), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

func addLayer(g *Graph, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode layer spec: %w", err)
	}
	if spec.Index < 0 || spec.Index > 31 {
		return fmt.Errorf("layer %d out of range", spec.Index)
	}
	return ecs.Add(g.w, e, component.LayerComponent.Kind(), &component.Layer{Index: spec.Index})
}

func addRenderLayer(g *Graph, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(g.w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type meshRendererSpec = prefabs.MeshRendererComponentSpec

func addMeshRenderer(g *Graph, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[meshRendererSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh_renderer spec: %w", err)
	}

	mr := component.MeshRenderer{
		Shape:     component.MeshShape(spec.Shape),
		Color:     color.White,
		Width:     spec.Width,
		Height:    spec.Height,
		Thickness: spec.Thickness,
		Enabled:   spec.Enabled == nil || *spec.Enabled,
	}
	if spec.Color != nil && spec.Color.Color != nil {
		mr.Color = spec.Color.Color
	}

	switch mr.Shape {
	case component.MeshShapeImage:
		img, err := loadImage(ctx.Assets, spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		mr.Source = img
		if mr.Width == 0 && mr.Height == 0 {
			b := img.Bounds()
			mr.Width, mr.Height = float64(b.Dx()), float64(b.Dy())
		}
	case component.MeshShapeRect, component.MeshShapeRing, component.MeshShapeNeedle:
	default:
		return fmt.Errorf("unknown shape %q", spec.Shape)
	}

	return ecs.Add(g.w, e, component.MeshRendererComponent.Kind(), &mr)
}

func loadImage(assets prefabs.AssetReader, name string) (image.Image, error) {
	if assets == nil {
		return nil, errNoAssets
	}
	data, err := assets.ReadFile(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func addCamera(g *Graph, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	var mask uint32
	for _, l := range spec.Layers {
		if l < 0 || l > 31 {
			return fmt.Errorf("camera layer %d out of range", l)
		}
		mask |= 1 << uint(l)
	}
	return ecs.Add(g.w, e, component.CameraComponent.Kind(), &component.Camera{CullingMask: mask})
}

func addCuller(g *Graph, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CullerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode culler spec: %w", err)
	}
	if err := ecs.Add(g.w, e, component.CullerComponent.Kind(), &component.Culler{Visible: spec.Visible}); err != nil {
		return err
	}
	ctx.cullers = append(ctx.cullers, pendingCuller{node: e, spec: spec})
	return nil
}

func (g *Graph) resolveCuller(pc pendingCuller) error {
	c, ok := ecs.Get(g.w, pc.node, component.CullerComponent.Kind())
	if !ok {
		return fmt.Errorf("culler on %q vanished", g.Name(pc.node))
	}
	track := func(paths []string, enabled bool) error {
		for _, path := range paths {
			r, ok := g.FindChild(pc.node, path)
			if !ok {
				return fmt.Errorf("culler on %q: renderer %q not found", g.Name(pc.node), path)
			}
			if !ecs.Has(g.w, r, component.MeshRendererComponent.Kind()) {
				return fmt.Errorf("culler on %q: %q has no mesh_renderer", g.Name(pc.node), path)
			}
			c.Track(uint64(r), enabled)
		}
		return nil
	}
	if err := track(pc.spec.Enabled, true); err != nil {
		return err
	}
	return track(pc.spec.Disabled, false)
}

func addLook(g *Graph, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LookComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode look spec: %w", err)
	}
	if spec.Sensitivity == 0 {
		spec.Sensitivity = 0.15
	}
	if spec.TurnSpeed == 0 {
		spec.TurnSpeed = 2
	}
	return ecs.Add(g.w, e, component.LookComponent.Kind(), &component.Look{
		Yaw:         spec.Yaw,
		Pitch:       spec.Pitch,
		Sensitivity: spec.Sensitivity,
		TurnSpeed:   spec.TurnSpeed,
		PitchTarget: spec.PitchTarget,
	})
}

func addIntroSequence(g *Graph, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.IntroSequenceComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode intro_sequence spec: %w", err)
	}
	if spec.Script == "" {
		return errors.New("intro_sequence needs a script")
	}
	return ecs.Add(g.w, e, component.IntroSequenceComponent.Kind(), &component.IntroSequence{Script: spec.Script})
}
