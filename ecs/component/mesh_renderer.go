package component

import (
	"image"
	"image/color"
)

type MeshShape string

const (
	MeshShapeImage  MeshShape = "image"
	MeshShapeRect   MeshShape = "rect"
	MeshShapeRing   MeshShape = "ring"
	MeshShapeNeedle MeshShape = "needle"
)

// MeshRenderer draws a quad in the node's local space, centred on the origin.
// Image-backed renderers keep the decoded source; GPU images are created
// lazily by the render system.
type MeshRenderer struct {
	Shape     MeshShape
	Source    image.Image
	Color     color.Color
	Width     float64
	Height    float64
	Thickness float64
	Enabled   bool
}

var MeshRendererComponent = NewComponent[MeshRenderer]()
