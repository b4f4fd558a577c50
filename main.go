package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/boxkit/config"
)

func main() {
	configPath := flag.String("config", "", "yaml file layered over the built-in defaults")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "draw bodies and contacts")
	tracePath := flag.String("trace", "", "write per-frame movement results to this CSV file")
	watch := flag.Bool("watch", false, "reload prefabs and scripts when they change on disk")
	dumpConfig := flag.String("dump-config", "", "write the effective configuration to this file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}
	if *debug {
		cfg.Debug.DrawBodies = true
		cfg.Debug.DrawContacts = true
	}
	if *tracePath != "" {
		cfg.TraceFile = *tracePath
	}
	if *dumpConfig != "" {
		if err := cfg.WriteYAML(*dumpConfig); err != nil {
			log.Fatal(err)
		}
		return
	}

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if *watch {
		if err := game.Watch("prefabs", "prefabs/scripts"); err != nil {
			log.Printf("%v; hot reload disabled", err)
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
