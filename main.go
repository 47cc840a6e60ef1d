package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stowage/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	sceneName := flag.String("scene", "demo", "scene name in prefabs/scenes (basename, .yaml optional)")
	watch := flag.Bool("watch", true, "reload container layout when prefabs on disk change")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "stowage",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)

	game, err := NewGame(Options{
		Scene:  *sceneName,
		Debug:  *debug,
		Watch:  *watch,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("start game", "err", err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth*2, common.BaseHeight*2)
	ebiten.SetWindowTitle("stowage")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", "err", err)
	}
}
