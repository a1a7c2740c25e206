package compass

// Registration records what the culling step did for one compass instance.
type Registration struct {
	Registered bool
	Bucket     Bucket
	// Layer is the propagated layer, or -1 when no reference was available.
	Layer     int
	Renderers int
}

// RegisterRenderers copies the reference's layer onto the compass subtree and
// adds every compass renderer to the culler, in the bucket the reference's
// renderer occupies right now. A missing reference counts as enabled.
func RegisterRenderers(c Culler, root, reference Node) Registration {
	reg := Registration{Registered: true, Bucket: BucketEnabled, Layer: -1}
	nodes := root.Descendants()

	if valid(reference) {
		layer := reference.Layer()
		for _, n := range nodes {
			n.SetLayer(layer)
		}
		reg.Layer = layer
		if !reference.HasRenderer() || !c.Contains(BucketEnabled, reference) {
			reg.Bucket = BucketDisabled
		}
	}

	for _, n := range nodes {
		if !n.HasRenderer() {
			continue
		}
		c.Register(n, reg.Bucket)
		reg.Renderers++
	}
	return reg
}

func (m *Mod) integrateCulling(root, hud, reference Node) Registration {
	culler, ok := m.Scene.Culler(hud)
	if !ok || culler == nil {
		m.errorf("HUD node %q has no culler, the compass will not be added to it", m.Layout.HUDPath)
		return Registration{Layer: -1}
	}
	if !valid(reference) {
		m.errorf("the culling reference is missing, so the render layer could not be determined")
	}

	reg := RegisterRenderers(culler, root, reference)
	m.logf("Registered %d compass renderers in the %s bucket.", reg.Renderers, reg.Bucket)
	return reg
}
