package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/cinematic/config"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults built in)")
	play := flag.String("play", "", "sequence name or JSON to play at start")
	projectPath := flag.String("project", "", "project file, overrides the config")
	flag.Parse()

	log := logrus.New()

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.WithError(err).Fatal("load config")
		}
		cfg = c
	}
	if *projectPath != "" {
		cfg.Project = *projectPath
	}
	if lvl, err := cfg.Level(); err == nil {
		log.SetLevel(lvl)
	}

	game, err := NewGame(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("start")
	}
	defer game.Close()

	if *play != "" {
		game.Play(*play)
	}

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("run")
	}
}
