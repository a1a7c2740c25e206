package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
	"github.com/milk9111/hudcompass/scene"
)

// RenderSystem draws screen-space mesh renderers through the first camera.
// HUD space is y-up with the origin at the screen centre.
type RenderSystem struct {
	graph     *scene.Graph
	camEntity ecs.Entity
	images    map[*component.MeshRenderer]*ebiten.Image
	whiteImg  *ebiten.Image
}

func NewRenderSystem(g *scene.Graph) *RenderSystem {
	return &RenderSystem{graph: g, images: map[*component.MeshRenderer]*ebiten.Image{}}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		r.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	entities := r.visible(w, *cam)
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := renderLayer(w, entities[i]), renderLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	seen := make(map[*component.MeshRenderer]bool, len(entities))
	bounds := screen.Bounds()
	cx, cy := float64(bounds.Dx())/2, float64(bounds.Dy())/2
	for _, e := range entities {
		mr, _ := ecs.Get(w, e, component.MeshRendererComponent.Kind())
		img := r.image(mr)
		if img == nil {
			continue
		}
		seen[mr] = true

		iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Translate(-iw/2, -ih/2)
		op.GeoM.Scale(mr.Width/iw, -mr.Height/ih)
		op.GeoM.Concat(geoM(r.graph.WorldMatrix(e)))
		op.GeoM.Scale(1, -1)
		op.GeoM.Translate(cx, cy)
		screen.DrawImage(img, op)
	}

	for mr, img := range r.images {
		if !seen[mr] {
			img.Deallocate()
			delete(r.images, mr)
		}
	}
}

func (r *RenderSystem) visible(w *ecs.World, cam component.Camera) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach2(w, component.ScreenSpaceComponent.Kind(), component.MeshRendererComponent.Kind(), func(e ecs.Entity, _ *component.ScreenSpace, mr *component.MeshRenderer) {
		if !mr.Enabled || mr.Width <= 0 || mr.Height <= 0 {
			return
		}
		if !cam.Renders(r.graph.Layer(e)) || !r.graph.ActiveInHierarchy(e) {
			return
		}
		out = append(out, e)
	})
	return out
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

// geoM keeps the x/y part of a world matrix.
func geoM(m mgl64.Mat4) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.At(0, 0))
	g.SetElement(0, 1, m.At(0, 1))
	g.SetElement(0, 2, m.At(0, 3))
	g.SetElement(1, 0, m.At(1, 0))
	g.SetElement(1, 1, m.At(1, 1))
	g.SetElement(1, 2, m.At(1, 3))
	return g
}

// image returns the cached texture for mr, rasterising it on first use.
func (r *RenderSystem) image(mr *component.MeshRenderer) *ebiten.Image {
	if img, ok := r.images[mr]; ok {
		return img
	}

	var img *ebiten.Image
	if mr.Shape == component.MeshShapeImage {
		if mr.Source == nil {
			return nil
		}
		img = ebiten.NewImageFromImage(mr.Source)
	} else {
		iw := int(math.Ceil(mr.Width))
		ih := int(math.Ceil(mr.Height))
		img = ebiten.NewImage(iw, ih)
		r.rasterise(img, mr)
	}
	r.images[mr] = img
	return img
}

func (r *RenderSystem) rasterise(img *ebiten.Image, mr *component.MeshRenderer) {
	w, h := float32(img.Bounds().Dx()), float32(img.Bounds().Dy())
	clr := mr.Color
	if clr == nil {
		clr = color.White
	}

	switch mr.Shape {
	case component.MeshShapeRect:
		vector.DrawFilledRect(img, 0, 0, w, h, clr, true)
	case component.MeshShapeRing:
		thickness := float32(mr.Thickness)
		if thickness <= 0 {
			thickness = 2
		}
		radius := float32(math.Min(float64(w), float64(h)))/2 - thickness/2
		vector.StrokeCircle(img, w/2, h/2, radius, thickness, clr, true)
	case component.MeshShapeNeedle:
		// Tip points up in image space, which is +Y once drawn.
		var path vector.Path
		path.MoveTo(w/2, 0)
		path.LineTo(w, h*0.55)
		path.LineTo(w/2, h)
		path.LineTo(0, h*0.55)
		path.Close()
		r.fillPath(img, &path, clr)
	}
}

func (r *RenderSystem) fillPath(dst *ebiten.Image, path *vector.Path, clr color.Color) {
	if r.whiteImg == nil {
		r.whiteImg = ebiten.NewImage(3, 3)
		r.whiteImg.Fill(color.White)
	}
	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := clr.RGBA()
	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = float32(cr) / 0xffff
		vertices[i].ColorG = float32(cg) / 0xffff
		vertices[i].ColorB = float32(cb) / 0xffff
		vertices[i].ColorA = float32(ca) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vertices, indices, r.whiteImg.SubImage(r.whiteImg.Bounds().Inset(1)).(*ebiten.Image), op)
}
