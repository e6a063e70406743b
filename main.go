package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "level_sandbox.yaml", "level prefab in prefabs/")
	characterName := flag.String("character", "character.yaml", "character prefab in prefabs/")
	scriptName := flag.String("script", "", "drive the character from a script in prefabs/scripts/ instead of the keyboard")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	log := logrus.NewEntry(logger).WithField("cmd", "sandbox")

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("locomotion sandbox")

	game, err := NewGame(Options{
		Level:     *levelName,
		Character: *characterName,
		Script:    *scriptName,
		Debug:     *debug,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start sandbox")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("sandbox stopped")
	}
}
