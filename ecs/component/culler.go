package component

// Culler switches a set of child renderers on and off as a group. Renderers
// are listed once in Renderers and at most once in one of the buckets:
// Enabled renderers follow Visible, Disabled renderers stay off.
type Culler struct {
	Visible   bool
	Renderers []uint64
	Enabled   []uint64
	Disabled  []uint64
}

func contains(list []uint64, v uint64) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// InEnabled reports whether e is in the enabled bucket.
func (c *Culler) InEnabled(e uint64) bool {
	return c != nil && contains(c.Enabled, e)
}

// InDisabled reports whether e is in the disabled bucket.
func (c *Culler) InDisabled(e uint64) bool {
	return c != nil && contains(c.Disabled, e)
}

// Track adds e to the master list and, when enabled is set, to the enabled
// bucket, otherwise to the disabled bucket. Repeated calls never duplicate.
func (c *Culler) Track(e uint64, enabled bool) {
	if c == nil || e == 0 {
		return
	}
	if !contains(c.Renderers, e) {
		c.Renderers = append(c.Renderers, e)
	}
	if enabled {
		if !contains(c.Enabled, e) {
			c.Enabled = append(c.Enabled, e)
		}
		return
	}
	if !contains(c.Disabled, e) {
		c.Disabled = append(c.Disabled, e)
	}
}

var CullerComponent = NewComponent[Culler]()
