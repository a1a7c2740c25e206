package compass

// Handles are the scene nodes resolved for one scene load. Any of them may be
// nil when the node could not be resolved.
type Handles struct {
	HUD              Node
	Player           Node
	CullingReference Node
	Root             Node
	Needle           Node
}

// Session is the explicit per-scene-load record shared by LoadScene and
// Update. A new session replaces the previous one on every scene load.
type Session struct {
	Handles
	Registration Registration

	// angle is the last applied needle angle, reused when the heading is
	// degenerate.
	angle float64
}

// Angle returns the needle angle applied by the last Update, in degrees.
func (s *Session) Angle() float64 {
	if s == nil {
		return 0
	}
	return s.angle
}

// Active reports whether the session has everything the per-frame update
// needs.
func (s *Session) Active() bool {
	return s != nil && valid(s.Root) && valid(s.Needle) && valid(s.Player)
}
