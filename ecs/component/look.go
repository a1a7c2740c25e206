package component

// Look holds first-person yaw/pitch in degrees. Yaw rotates about +Y,
// positive pitch looks down.
type Look struct {
	Yaw         float64
	Pitch       float64
	Sensitivity float64
	TurnSpeed   float64
	// PitchTarget names a child node that carries the pitch; empty pitches
	// the node itself.
	PitchTarget string
}

var LookComponent = NewComponent[Look]()
