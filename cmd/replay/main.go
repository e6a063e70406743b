// Command replay runs a scripted character through a level without a window
// and logs every movement transition.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/milk9111/locomotion/character"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/script"
	"github.com/milk9111/locomotion/system"
	"github.com/sirupsen/logrus"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	asJSON := flag.Bool("json", false, "write a snapshot per sampled tick to stdout as JSON lines")
	every := flag.Int("every", 1, "sample every n ticks with -json")
	scriptName := flag.String("script", "walk_jump.tengo", "input script in prefabs/scripts/")
	ticks := flag.Int("ticks", 600, "ticks to simulate")
	levelName := flag.String("level", "level_sandbox.yaml", "level prefab in prefabs/")
	characterName := flag.String("character", "character.yaml", "character prefab in prefabs/")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	log := logrus.NewEntry(logger).WithField("cmd", "replay")

	level, err := prefabs.LoadLevelSpec(*levelName)
	if err != nil {
		log.WithError(err).Fatal("failed to load level")
	}
	spec, err := prefabs.LoadCharacterSpec(*characterName)
	if err != nil {
		log.WithError(err).Fatal("failed to load character")
	}
	driver, err := script.Load(*scriptName, log)
	if err != nil {
		log.WithError(err).Fatal("failed to load script")
	}

	sim, err := character.NewSim(level, spec, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build sim")
	}
	sim.Driver = driver

	transitions := make(map[system.StateID]int)
	sim.Character.Movement.OnTransition = func(from, to system.StateID) {
		transitions[to]++
		log.WithFields(logrus.Fields{
			"tick": sim.Ticks(),
			"from": from,
			"to":   to,
			"x":    sim.Character.Body.Position().X(),
			"y":    sim.Character.Body.Position().Y(),
		}).Info("transition")
	}

	enc := json.NewEncoder(os.Stdout)
	if *every < 1 {
		*every = 1
	}
	for i := 0; i < *ticks; i++ {
		sim.Advance()
		if *asJSON && sim.Ticks()%*every == 0 {
			if err := enc.Encode(sim.Snapshot()); err != nil {
				log.WithError(err).Fatal("failed to write snapshot")
			}
		}
	}

	summary := logrus.Fields{
		"ticks":    sim.Ticks(),
		"state":    sim.Character.State(),
		"respawns": sim.Respawns(),
		"failures": driver.Failures(),
	}
	for _, id := range sim.Character.Movement.StateIDs() {
		summary[id.String()] = transitions[id]
	}
	log.WithFields(summary).Info("replay finished")
}
