package system

import (
	"github.com/milk9111/hudcompass/compass"
	"github.com/milk9111/hudcompass/ecs"
)

// CompassSystem drives the compass add-on: scene-load events start a new
// session, every frame updates it.
type CompassSystem struct {
	mod     *compass.Mod
	session *compass.Session
}

func NewCompassSystem(mod *compass.Mod) *CompassSystem {
	return &CompassSystem{mod: mod}
}

func (c *CompassSystem) Update(w *ecs.World) {
	if c == nil || c.mod == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventSceneLoaded, ecs.EventSceneReentered:
			c.session = c.mod.LoadScene(c.session)
		}
	}
	c.mod.Update(c.session)
}

// ApplyPreferences pushes changed preferences to the live compass.
func (c *CompassSystem) ApplyPreferences() {
	if c == nil || c.mod == nil {
		return
	}
	c.mod.ApplyPreferences(c.session)
}

func (c *CompassSystem) Session() *compass.Session {
	if c == nil {
		return nil
	}
	return c.session
}
