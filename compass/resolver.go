package compass

func (m *Mod) resolveHUD() (Node, bool) {
	hud, ok := m.Scene.Find(m.Layout.HUDPath)
	if !ok || !valid(hud) {
		m.logf("HUD node %q not found in the scene, skipping compass creation.", m.Layout.HUDPath)
		return nil, false
	}
	return hud, true
}

func (m *Mod) resolvePlayer() Node {
	player, ok := m.Scene.Find(m.Layout.PlayerPath)
	if !ok || !valid(player) {
		m.errorf("could not find the player node %q", m.Layout.PlayerPath)
		return nil
	}
	return player
}

func (m *Mod) resolveCullingReference(hud Node) Node {
	ref, ok := hud.Child(m.Layout.CullingReferencePath)
	if !ok || !valid(ref) {
		m.errorf("could not find culling reference %q", m.Layout.HUDPath+"/"+m.Layout.CullingReferencePath)
		return nil
	}
	return ref
}

func (m *Mod) resolveNeedle(root Node) Node {
	if !valid(root) {
		m.errorf("compass root is missing, cannot find the compass needle")
		return nil
	}
	needle, ok := root.Child(m.Layout.NeedleName)
	if !ok || !valid(needle) {
		m.errorf("could not find the compass needle %q in the compass root", m.Layout.NeedleName)
		return nil
	}
	return needle
}
