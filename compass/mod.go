package compass

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hudcompass/config"
)

// Mod wires the compass into a host scene. It keeps no per-scene state; all
// of that lives in the Session passed to LoadScene and Update.
type Mod struct {
	Scene      Scene
	Layout     Layout
	Prefs      PreferenceSource
	OpenAssets func() (PrefabSource, error)
	Log        Logger
}

func New(scene Scene, prefs PreferenceSource, openAssets func() (PrefabSource, error), logger Logger) *Mod {
	return &Mod{
		Scene:      scene,
		Layout:     DefaultLayout(),
		Prefs:      prefs,
		OpenAssets: openAssets,
		Log:        logger,
	}
}

// LoadScene runs on every scene load. A compass left alive by prev is
// destroyed first, then the handles are resolved from scratch and a new
// compass is built. Every failure only disables the dependent feature.
func (m *Mod) LoadScene(prev *Session) *Session {
	// Teardown precedes HUD resolution, so a scene without a HUD still loses
	// the previous compass.
	m.teardown(prev)

	s := &Session{Registration: Registration{Layer: -1}}
	hud, ok := m.resolveHUD()
	if !ok {
		return s
	}

	s.HUD = hud
	s.Player = m.resolvePlayer()
	s.CullingReference = m.resolveCullingReference(hud)
	s.Root, s.Registration = m.initCompass(hud, s.CullingReference)
	s.Needle = m.resolveNeedle(s.Root)
	return s
}

// Update runs once per frame.
func (m *Mod) Update(s *Session) {
	if !s.Active() {
		return
	}
	// The host's own activation of HUD elements after the intro is not
	// observable, so the compass follows the reference directly.
	s.Root.SetActive(Visible(s.CullingReference))
	m.align(s)
}

// ApplyPreferences re-applies position and scale to a live compass.
func (m *Mod) ApplyPreferences(s *Session) {
	if s == nil || !valid(s.Root) {
		return
	}
	m.place(s.Root)
}

func (m *Mod) teardown(prev *Session) {
	if prev == nil || !valid(prev.Root) {
		return
	}
	m.Scene.Destroy(prev.Root)
	m.logf("Destroyed the compass left over from the previous scene load.")
}

func (m *Mod) initCompass(hud, reference Node) (Node, Registration) {
	root := m.instantiate(hud)
	if root == nil {
		return nil, Registration{Layer: -1}
	}
	// Hidden until the per-frame rule shows it, so it stays out of the intro.
	root.SetActive(false)
	reg := m.integrateCulling(root, hud, reference)

	m.logf("Compass instantiated and parented to %q.", m.Layout.HUDPath)
	return root, reg
}

func (m *Mod) instantiate(hud Node) Node {
	if m.OpenAssets == nil {
		m.errorf("no asset bundle configured, cannot create the compass")
		return nil
	}
	src, err := m.OpenAssets()
	if err != nil {
		m.errorf("could not load the compass asset bundle: %v", err)
		return nil
	}
	defer src.Unload()

	prefab, err := src.LoadPrefab(m.Layout.PrefabName)
	if err != nil {
		m.errorf("failed to load prefab %q from the asset bundle: %v", m.Layout.PrefabName, err)
		return nil
	}
	root, err := m.Scene.Instantiate(prefab, hud)
	if err != nil {
		m.errorf("failed to instantiate prefab %q: %v", m.Layout.PrefabName, err)
		return nil
	}
	m.place(root)
	return root
}

func (m *Mod) place(root Node) {
	p := m.preferences()
	root.SetLocalPosition(mgl64.Vec3{p.CompassPositionX, p.CompassPositionY, m.Layout.CompassZ})
	root.SetLocalScale(mgl64.Vec3{p.CompassScale, p.CompassScale, 1})
}

func (m *Mod) preferences() config.Preferences {
	if m.Prefs == nil {
		return config.Defaults()
	}
	return m.Prefs.Preferences()
}

func (m *Mod) logf(format string, v ...any) {
	m.logger().Printf(format, v...)
}

func (m *Mod) errorf(format string, v ...any) {
	m.logger().Printf("error: %s", fmt.Sprintf(format, v...))
}

func (m *Mod) logger() Logger {
	if m.Log == nil {
		return log.Default()
	}
	return m.Log
}
