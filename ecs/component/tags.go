package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type HUDTag struct{}

var HUDTagComponent = NewComponent[HUDTag]()

// RevealAfterIntro marks nodes the intro sequence activates once it finishes.
type RevealAfterIntro struct{}

var RevealAfterIntroComponent = NewComponent[RevealAfterIntro]()
