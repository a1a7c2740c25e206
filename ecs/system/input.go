package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hudcompass/common"
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
	"github.com/milk9111/hudcompass/scene"
)

const maxPitch = 90

// lookInput is one frame of look input. Turn and Tilt are in [-1, 1]; the
// mouse deltas are in pixels.
type lookInput struct {
	Turn    float64
	Tilt    float64
	MouseDX float64
	MouseDY float64
}

// LookSystem turns every Look node from keyboard, mouse (right button held)
// and gamepad right stick. Yaw goes on the node, pitch on its pitch target.
type LookSystem struct {
	graph    *scene.Graph
	read     func() lookInput
	lastX    int
	lastY    int
	dragging bool
}

func NewLookSystem(g *scene.Graph) *LookSystem {
	s := &LookSystem{graph: g}
	s.read = s.readInput
	return s
}

func (s *LookSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	in := lookInput{}
	if s.read != nil {
		in = s.read()
	}

	ecs.ForEach(w, component.LookComponent.Kind(), func(e ecs.Entity, look *component.Look) {
		applyLook(look, in)

		pitchNode := e
		if look.PitchTarget != "" {
			if child, ok := s.graph.FindChild(e, look.PitchTarget); ok {
				pitchNode = child
			}
		}
		if pitchNode == e {
			s.graph.Transform(e).Rotation = scene.EulerRotation(look.Pitch, look.Yaw, 0)
			return
		}
		s.graph.Transform(e).Rotation = scene.EulerRotation(0, look.Yaw, 0)
		s.graph.Transform(pitchNode).Rotation = scene.EulerRotation(look.Pitch, 0, 0)
	})
}

func applyLook(look *component.Look, in lookInput) {
	look.Yaw = common.WrapDegrees(look.Yaw + in.Turn*look.TurnSpeed + in.MouseDX*look.Sensitivity)
	look.Pitch = common.Clamp(look.Pitch+in.Tilt*look.TurnSpeed+in.MouseDY*look.Sensitivity, -maxPitch, maxPitch)
}

func (s *LookSystem) readInput() lookInput {
	const stickDeadzone = 0.2

	in := lookInput{}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.Turn -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyE) {
		in.Turn += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Tilt -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.Tilt += 1
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if s.dragging {
			in.MouseDX = float64(x - s.lastX)
			in.MouseDY = float64(y - s.lastY)
		}
		s.dragging = true
	} else {
		s.dragging = false
	}
	s.lastX, s.lastY = x, y

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Abs(rx) > stickDeadzone {
			in.Turn = rx
		}
		if math.Abs(ry) > stickDeadzone {
			in.Tilt = ry
		}
	}
	return in
}
