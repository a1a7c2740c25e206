package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hudcompass/common"
	"github.com/milk9111/hudcompass/config"
)

func main() {
	prefsPath := flag.String("prefs", config.DefaultPath(), "preferences file (created with defaults when missing)")
	bundlePath := flag.String("bundle", "", "compass asset bundle; empty uses the built-in one")
	sceneName := flag.String("scene", "scene.yaml", "host scene in prefabs/")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "reload preferences, scene and scripts when they change on disk")
	flag.Parse()

	logger := log.New(os.Stderr, "["+config.CategoryName+"] ", log.LstdFlags)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("hudcompass")

	game, err := NewGame(GameOptions{
		PrefsPath:  *prefsPath,
		BundlePath: *bundlePath,
		Scene:      *sceneName,
		Debug:      *debug,
		Watch:      *watch,
		Log:        logger,
	})
	if err != nil {
		logger.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal(err)
	}
}
