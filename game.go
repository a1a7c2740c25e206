package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hudcompass/bundle"
	"github.com/milk9111/hudcompass/common"
	"github.com/milk9111/hudcompass/compass"
	"github.com/milk9111/hudcompass/config"
	"github.com/milk9111/hudcompass/ecs"
	"github.com/milk9111/hudcompass/ecs/system"
	"github.com/milk9111/hudcompass/prefabs"
	"github.com/milk9111/hudcompass/scene"
)

type GameOptions struct {
	PrefsPath  string
	BundlePath string
	Scene      string
	Debug      bool
	Watch      bool
	Log        *log.Logger
}

// livePrefs is the preference source shared by the add-on and the pause menu.
type livePrefs struct {
	p config.Preferences
}

func (l *livePrefs) Preferences() config.Preferences {
	return l.p
}

type Game struct {
	opts   GameOptions
	frames int
	paused bool

	prefs   *livePrefs
	graph   *scene.Graph
	sched   *ecs.Scheduler
	intro   *system.IntroSystem
	compass *system.CompassSystem
	render  *system.RenderSystem
	horizon *system.HorizonRenderer
	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
}

func NewGame(opts GameOptions) (*Game, error) {
	if opts.Log == nil {
		opts.Log = log.Default()
	}

	prefs, err := config.Load(opts.PrefsPath)
	if err != nil {
		opts.Log.Printf("error: preferences: %v", err)
	}
	opts.Log.Printf("Preferences file: %s", opts.PrefsPath)

	g := &Game{
		opts:    opts,
		prefs:   &livePrefs{p: prefs},
		graph:   scene.NewGraph(ecs.NewWorld()),
		horizon: system.NewHorizonRenderer(),
	}

	mod := compass.New(scene.NewHost(g.graph), g.prefs, g.openBundle, opts.Log)
	g.intro = system.NewIntroSystem(g.graph)
	g.compass = system.NewCompassSystem(mod)
	g.render = system.NewRenderSystem(g.graph)
	g.sched = ecs.NewScheduler(
		system.NewLookSystem(g.graph),
		g.intro,
		g.compass,
		system.NewCullerSystem(),
	)

	if err := g.graph.LoadFile(opts.Scene); err != nil {
		return nil, err
	}

	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher(watchDirs(opts.PrefsPath)...)
		if err != nil {
			opts.Log.Printf("error: watch: %v", err)
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func watchDirs(prefsPath string) []string {
	dirs := []string{filepath.Dir(prefsPath)}
	if d, err := filepath.Abs("prefabs"); err == nil && dirExists(d) {
		dirs = append(dirs, d, filepath.Join(d, "scripts"))
	}
	return dirs
}

func (g *Game) openBundle() (compass.PrefabSource, error) {
	var (
		b   *bundle.Bundle
		err error
	)
	if g.opts.BundlePath != "" {
		b, err = bundle.Open(g.opts.BundlePath)
	} else {
		b, err = bundle.FromFS(prefabs.CompassBundleFS())
	}
	if err != nil {
		return nil, fmt.Errorf("expected the compass bundle at %s: %w", g.bundleLocation(), err)
	}
	g.opts.Log.Printf("Loading compass assets from %s.", b.Source())
	return b, nil
}

func (g *Game) bundleLocation() string {
	if g.opts.BundlePath != "" {
		return g.opts.BundlePath
	}
	return "the built-in bundle"
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.handleReloads()
	g.sched.Update(g.graph.World())
	return nil
}

func (g *Game) handleReloads() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reloadScene()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF6) {
		g.graph.Reenter()
	}

	for _, path := range g.watcher.Poll() {
		if samePath(path, g.opts.PrefsPath) {
			g.reloadPreferences()
			continue
		}
		if filepath.Base(path) == filepath.Base(g.opts.Scene) || filepath.Ext(path) == ".tengo" {
			g.reloadScene()
		}
	}
}

func (g *Game) reloadScene() {
	g.intro.Invalidate()
	if err := g.graph.LoadFile(g.opts.Scene); err != nil {
		g.opts.Log.Printf("error: reload scene %s: %v", g.opts.Scene, err)
	}
}

func (g *Game) reloadPreferences() {
	p, err := config.Reload(g.opts.PrefsPath, g.prefs.p)
	if err != nil {
		g.opts.Log.Printf("error: preferences: %v, keeping the current values", err)
		return
	}
	g.setPreferences(p)
}

func (g *Game) setPreferences(p config.Preferences) {
	g.prefs.p = p
	g.compass.ApplyPreferences()
}

func (g *Game) savePreferences() {
	if err := config.Save(g.opts.PrefsPath, g.prefs.p); err != nil {
		g.opts.Log.Printf("error: save preferences: %v", err)
		return
	}
	g.opts.Log.Printf("Saved preferences to %s.", g.opts.PrefsPath)
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.graph.World()
	g.horizon.Draw(w, screen)
	g.render.Draw(w, screen)

	if g.opts.Debug {
		msg := fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS())
		if s := g.compass.Session(); s.Active() {
			msg += fmt.Sprintf("\nNeedle: %.1f  Culling: %s", s.Angle(), s.Registration.Bucket)
		}
		ebitenutil.DebugPrint(screen, msg)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
