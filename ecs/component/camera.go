package component

// Camera selects which layers are drawn.
type Camera struct {
	CullingMask uint32
}

// Renders reports whether layer is part of the culling mask.
func (c Camera) Renders(layer int) bool {
	if layer < 0 || layer > 31 {
		return false
	}
	return c.CullingMask&(1<<uint(layer)) != 0
}

var CameraComponent = NewComponent[Camera]()
