package component

// ScreenSpace marks renderable entities that should be drawn in screen/UI space
// (HUD plane, y-up, origin at the screen centre).
type ScreenSpace struct{}

var ScreenSpaceComponent = NewComponent[ScreenSpace]()
