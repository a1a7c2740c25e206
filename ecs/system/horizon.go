package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
)

const horizonFOV = 90.0

var (
	skyColor    = color.RGBA{R: 0x2b, G: 0x3a, B: 0x55, A: 0xff}
	groundColor = color.RGBA{R: 0x3d, G: 0x32, B: 0x28, A: 0xff}
	pillarColor = color.RGBA{R: 0x8a, G: 0x7a, B: 0x5c, A: 0xff}
)

var bearings = []struct {
	Label string
	Yaw   float64
}{
	{"N", 0},
	{"E", 90},
	{"S", 180},
	{"W", 270},
}

// HorizonRenderer paints a stand-in for the 3D world behind the HUD: a
// horizon that follows the player's pitch and a marker pillar per bearing.
type HorizonRenderer struct{}

func NewHorizonRenderer() *HorizonRenderer {
	return &HorizonRenderer{}
}

func (h *HorizonRenderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	screen.Fill(skyColor)

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	look, ok := ecs.Get(w, player, component.LookComponent.Kind())
	if !ok {
		return
	}

	bounds := screen.Bounds()
	sw, sh := float32(bounds.Dx()), float32(bounds.Dy())
	pxPerDeg := float64(sw) / horizonFOV

	horizonY := float32(float64(sh)/2 - look.Pitch*pxPerDeg)
	if horizonY < sh {
		vector.DrawFilledRect(screen, 0, max(horizonY, 0), sw, sh-max(horizonY, 0), groundColor, false)
	}

	for _, b := range bearings {
		rel := relativeBearing(b.Yaw, look.Yaw)
		if math.Abs(rel) > horizonFOV/2 {
			continue
		}
		x := float32(float64(sw)/2 + rel*pxPerDeg)
		vector.DrawFilledRect(screen, x-6, horizonY-120, 12, 120, pillarColor, false)
		ebitenutil.DebugPrintAt(screen, b.Label, int(x)-3, int(horizonY)-140)
	}
}

// relativeBearing is target minus yaw, in (-180, 180].
func relativeBearing(target, yaw float64) float64 {
	rel := math.Mod(target-yaw, 360)
	if rel <= -180 {
		rel += 360
	}
	if rel > 180 {
		rel -= 360
	}
	return rel
}
