package component

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()

// Layer is the node's camera layer (0-31). A camera draws a node only when
// the layer bit is set in its culling mask.
type Layer struct {
	Index int
}

var LayerComponent = NewComponent[Layer]()
