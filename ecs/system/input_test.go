package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
	"github.com/milk9111/hudcompass/prefabs"
	"github.com/milk9111/hudcompass/scene"
)

func TestApplyLook(t *testing.T) {
	tests := []struct {
		name      string
		start     component.Look
		in        lookInput
		wantYaw   float64
		wantPitch float64
	}{
		{
			name:    "keyboard turn",
			start:   component.Look{TurnSpeed: 2, Sensitivity: 0.1},
			in:      lookInput{Turn: 1},
			wantYaw: 2,
		},
		{
			name:    "wraps below zero",
			start:   component.Look{Yaw: 1, TurnSpeed: 2, Sensitivity: 0.1},
			in:      lookInput{Turn: -1},
			wantYaw: 359,
		},
		{
			name:      "mouse",
			start:     component.Look{TurnSpeed: 2, Sensitivity: 0.5},
			in:        lookInput{MouseDX: 10, MouseDY: -4},
			wantYaw:   5,
			wantPitch: -2,
		},
		{
			name:      "pitch clamps",
			start:     component.Look{Pitch: 89, TurnSpeed: 5, Sensitivity: 0.1},
			in:        lookInput{Tilt: 1},
			wantPitch: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			look := tt.start
			applyLook(&look, tt.in)
			if math.Abs(look.Yaw-tt.wantYaw) > 1e-9 {
				t.Fatalf("expected yaw %v, got %v", tt.wantYaw, look.Yaw)
			}
			if math.Abs(look.Pitch-tt.wantPitch) > 1e-9 {
				t.Fatalf("expected pitch %v, got %v", tt.wantPitch, look.Pitch)
			}
		})
	}
}

func TestLookSystemSplitsYawAndPitch(t *testing.T) {
	g := scene.NewGraph(nil)
	player, err := g.Build(prefabs.NodeSpec{
		Name: "Player",
		Components: map[string]any{
			"look": map[string]any{"turn_speed": 90, "pitch_target": "Head"},
		},
		Children: []prefabs.NodeSpec{{Name: "Head"}},
	}, 0, nil, "test")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	head, _ := g.FindChild(player, "Head")

	s := NewLookSystem(g)
	s.read = func() lookInput { return lookInput{Turn: 1} }
	s.Update(g.World())

	if f := g.Forward(player); !vecNear(f, mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("expected the body to face +X, got %v", f)
	}

	s.read = func() lookInput { return lookInput{Tilt: 1} }
	s.Update(g.World())

	if f := g.Forward(player); !vecNear(f, mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("expected pitch to leave the body level, got %v", f)
	}
	if f := g.Forward(head); f.Y() > -0.99 {
		t.Fatalf("expected the head to look down, got %v", f)
	}
	look, _ := ecs.Get(g.World(), player, component.LookComponent.Kind())
	if look.Pitch != 90 {
		t.Fatalf("expected pitch clamped to 90, got %v", look.Pitch)
	}
}

func vecNear(got, want mgl64.Vec3) bool {
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			return false
		}
	}
	return true
}
