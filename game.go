package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/locomotion/character"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/script"
	"github.com/milk9111/locomotion/system"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const statusTicks = 180

type Options struct {
	Level     string
	Character string
	Script    string
	Debug     bool
}

type Game struct {
	opts    Options
	sim     *character.Sim
	camera  mgl64.Vec2
	debug   bool
	paused  bool
	pauseUI *ebitenui.UI

	watcher   *prefabs.Watcher
	clipboard bool

	status      string
	statusTicks int

	log *logrus.Entry
}

func NewGame(opts Options, log *logrus.Entry) (*Game, error) {
	g := &Game{opts: opts, debug: opts.Debug, log: log}
	if err := g.load(); err != nil {
		return nil, err
	}
	g.camera = g.sim.Character.Body.Position().Vec2()
	g.pauseUI = NewPauseUI(g)

	if err := clipboard.Init(); err != nil {
		log.WithError(err).Warn("clipboard unavailable, snapshot export disabled")
	} else {
		g.clipboard = true
	}

	dirs := []string{"prefabs", filepath.Join("prefabs", "scripts")}
	if _, err := os.Stat(dirs[0]); err == nil {
		w, err := prefabs.NewWatcher(150*time.Millisecond, dirs...)
		if err != nil {
			log.WithError(err).Warn("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load builds the sim from the configured prefabs.
func (g *Game) load() error {
	level, err := prefabs.LoadLevelSpec(g.opts.Level)
	if err != nil {
		return err
	}
	spec, err := prefabs.LoadCharacterSpec(g.opts.Character)
	if err != nil {
		return err
	}
	sim, err := character.NewSim(level, spec, g.log)
	if err != nil {
		return err
	}
	if g.opts.Script != "" {
		driver, err := script.Load(g.opts.Script, g.log)
		if err != nil {
			return err
		}
		sim.Driver = driver
	}
	g.sim = sim
	g.observe()
	return nil
}

func (g *Game) observe() {
	g.sim.Character.Movement.OnTransition = func(from, to system.StateID) {
		g.log.WithFields(logrus.Fields{"tick": g.sim.Ticks(), "from": from, "to": to}).Debug("transition")
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.toggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.copySnapshot()
	}
	g.pollWatcher()

	if g.sim.Driver == nil {
		script.Apply(pollInput(), g.sim.Character.Input)
	}
	g.sim.Advance()

	pos := g.sim.Character.Body.Position()
	g.camera = mgl64.Vec2{
		common.Lerp(g.camera.X(), pos.X(), 0.1),
		common.Lerp(g.camera.Y(), pos.Y(), 0.1),
	}
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

func (g *Game) toggleDebug() {
	g.debug = !g.debug
}

func (g *Game) respawn() {
	g.sim.Character.Respawn(g.sim.Level.Spawn)
	g.setStatus("respawned")
}

func (g *Game) copySnapshot() {
	if !g.clipboard {
		g.setStatus("clipboard unavailable")
		return
	}
	data, err := json.MarshalIndent(g.sim.Snapshot(), "", "  ")
	if err != nil {
		g.log.WithError(err).Error("failed to encode snapshot")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus(fmt.Sprintf("snapshot of tick %d copied", g.sim.Ticks()))
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTicks = statusTicks
}

// pollWatcher applies at most one pending prefab change per frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case change, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		g.reload(change)
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.WithError(err).Warn("prefab watcher error")
		}
	default:
	}
}

func (g *Game) reload(change prefabs.Change) {
	log := g.log.WithField("file", change.Name())
	switch {
	case change.Kind == prefabs.ChangeScript && g.sim.Driver != nil && filepath.Base(g.sim.Driver.Name()) == filepath.Base(change.Path):
		driver, err := script.Load(g.sim.Driver.Name(), g.log)
		if err != nil {
			log.WithError(err).Warn("script reload failed")
			return
		}
		g.sim.Driver = driver
	case change.Kind == prefabs.ChangeSpec && change.Name() == filepath.Base(g.opts.Character):
		spec, err := prefabs.LoadCharacterSpec(g.opts.Character)
		if err != nil {
			log.WithError(err).Warn("character reload failed")
			return
		}
		if err := g.sim.Replace(spec); err != nil {
			log.WithError(err).Warn("character rebuild failed")
			return
		}
		g.observe()
	case change.Kind == prefabs.ChangeSpec && change.Name() == filepath.Base(g.opts.Level):
		prev := g.sim
		if err := g.load(); err != nil {
			log.WithError(err).Warn("level reload failed")
			return
		}
		prev.Character.Close()
	default:
		return
	}
	log.Info("prefab reloaded")
	g.setStatus("reloaded " + change.Name())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	v := view{camera: g.camera}
	v.drawLevel(screen, g.sim.Level)
	v.drawCharacter(screen, g.sim.Character)
	if g.debug {
		v.drawProbes(screen, g.sim.Character)
	}

	snap := g.sim.Snapshot()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  tick: %d  state: %s  respawns: %d\nvel: (%.2f, %.2f)  yaw: %.1f  jump: %v",
		ebiten.ActualFPS(), snap.Tick, snap.State, snap.Respawns,
		snap.Velocity.X(), snap.Velocity.Y(), snap.Yaw, snap.JumpEnabled))
	if g.statusTicks > 0 {
		drawLabel(screen, g.status, 8, common.BaseHeight-24, colornames.Khaki)
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
