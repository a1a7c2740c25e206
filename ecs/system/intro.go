package system

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/component"
	"github.com/milk9111/hudcompass/scene"
)

// IntroSystem plays the opening sequence. While it runs the HUD icons stay
// hidden; once the script says so they are revealed and every culler turns
// visible.
type IntroSystem struct {
	graph    *scene.Graph
	skip     func() bool
	runtimes map[string]*introScriptRuntime
	failed   map[string]bool
}

func NewIntroSystem(g *scene.Graph) *IntroSystem {
	return &IntroSystem{
		graph: g,
		skip: func() bool {
			return inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
		},
		runtimes: map[string]*introScriptRuntime{},
		failed:   map[string]bool{},
	}
}

// Invalidate drops compiled scripts so the next frame reloads them.
func (s *IntroSystem) Invalidate() {
	s.runtimes = map[string]*introScriptRuntime{}
	s.failed = map[string]bool{}
}

func (s *IntroSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	skip := s.skip != nil && s.skip()

	ecs.ForEach(w, component.IntroSequenceComponent.Kind(), func(e ecs.Entity, intro *component.IntroSequence) {
		if intro.Done {
			return
		}
		rt, ok := s.runtime(intro.Script)
		if !ok {
			// A broken script must not keep the HUD hidden forever.
			s.finish(w, intro)
			return
		}
		show, err := rt.showHUD(intro.Frame, skip)
		if err != nil {
			log.Printf("error: intro: entity=%v script %s: %v", e, intro.Script, err)
			s.finish(w, intro)
			return
		}
		intro.Frame++
		if show {
			s.finish(w, intro)
		}
	})
}

func (s *IntroSystem) runtime(path string) (*introScriptRuntime, bool) {
	if rt, ok := s.runtimes[path]; ok {
		return rt, true
	}
	if s.failed[path] {
		return nil, false
	}
	rt, err := loadIntroScriptRuntime(path)
	if err != nil {
		log.Printf("error: intro: load %s: %v", path, err)
		s.failed[path] = true
		return nil, false
	}
	s.runtimes[path] = rt
	return rt, true
}

func (s *IntroSystem) finish(w *ecs.World, intro *component.IntroSequence) {
	intro.Done = true
	ecs.ForEach(w, component.RevealAfterIntroComponent.Kind(), func(e ecs.Entity, _ *component.RevealAfterIntro) {
		s.graph.SetActive(e, true)
	})
	ecs.ForEach(w, component.CullerComponent.Kind(), func(_ ecs.Entity, c *component.Culler) {
		c.Visible = true
	})
}
