package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/locomotion/character"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/prefabs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var labelFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// view maps side-view world meters to screen pixels, centered on the camera.
type view struct {
	camera mgl64.Vec2
}

func (v view) toScreen(p mgl64.Vec2) (float32, float32) {
	x := (p.X()-v.camera.X())*common.PixelsPerMeter + common.BaseWidth/2
	y := common.BaseHeight/2 - (p.Y()-v.camera.Y())*common.PixelsPerMeter
	return float32(x), float32(y)
}

func (v view) line(screen *ebiten.Image, a, b mgl64.Vec2, width float32, clr color.Color) {
	x0, y0 := v.toScreen(a)
	x1, y1 := v.toScreen(b)
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
}

// rect returns the screen rectangle for a world box given by its corners.
func (v view) rect(min, max mgl64.Vec2) (x, y, w, h float32) {
	x, y = v.toScreen(mgl64.Vec2{min.X(), max.Y()})
	w = float32((max.X() - min.X()) * common.PixelsPerMeter)
	h = float32((max.Y() - min.Y()) * common.PixelsPerMeter)
	return x, y, w, h
}

func (v view) drawLevel(screen *ebiten.Image, level *prefabs.LevelSpec) {
	if level == nil {
		return
	}
	for _, b := range level.Boxes {
		x, y, w, h := v.rect(b.Min, b.Max)
		if b.Trigger {
			vector.StrokeRect(screen, x, y, w, h, 1, b.Color.Or(colornames.Gold), false)
			continue
		}
		vector.FillRect(screen, x, y, w, h, b.Color.Or(colornames.Olivedrab), false)
	}
	for _, s := range level.Segments {
		width := float32(math.Max(2, 2*s.Radius*common.PixelsPerMeter))
		v.line(screen, s.From, s.To, width, s.Color.Or(colornames.Olivedrab))
	}
}

func (v view) drawCharacter(screen *ebiten.Image, c *character.Character) {
	if c == nil {
		return
	}
	pos, rot, scale := c.Body.Position(), c.Body.Rotation(), c.Body.Scale()
	center := c.Capsule.WorldCenter(pos, rot, scale)
	half := c.Capsule.WorldVerticalExtents(scale).Y()
	r := c.Capsule.Capsule.Radius * scale

	// the step gap below the capsule is drawn as an outline
	x, y, w, h := v.rect(mgl64.Vec2{pos.X() - r, pos.Y()}, mgl64.Vec2{pos.X() + r, center.Y() + half})
	vector.StrokeRect(screen, x, y, w, h, 1, colornames.Lightgrey, false)
	x, y, w, h = v.rect(mgl64.Vec2{center.X() - r, center.Y() - half}, mgl64.Vec2{center.X() + r, center.Y() + half})
	vector.FillRect(screen, x, y, w, h, c.Spec.Color.Or(colornames.Crimson), false)

	facing := common.YawToDirection(common.YawOf(rot))
	head := mgl64.Vec2{center.X(), center.Y() + half*0.6}
	v.line(screen, head, head.Add(mgl64.Vec2{facing.X() * 0.4, 0}), 2, colornames.White)

	lx, ly := v.toScreen(mgl64.Vec2{center.X(), center.Y() + half})
	drawLabel(screen, c.State().String(), float64(lx)-20, float64(ly)-18, colornames.White)
}

// drawProbes shows the ground-check box and the rays the grounded states cast.
func (v view) drawProbes(screen *ebiten.Image, c *character.Character) {
	if c == nil {
		return
	}
	pos, rot, scale := c.Body.Position(), c.Body.Rotation(), c.Body.Scale()
	cfg := c.Movement.Config()

	gc := c.Capsule.GroundCheckCenter(pos, rot, scale)
	ext := c.Capsule.GroundCheckHalfExtents(scale)
	x, y, w, h := v.rect(mgl64.Vec2{gc.X() - ext.X(), gc.Y() - ext.Y()}, mgl64.Vec2{gc.X() + ext.X(), gc.Y() + ext.Y()})
	probe := colornames.Yellow
	if c.State().Grounded() {
		probe = colornames.Lime
	}
	vector.StrokeRect(screen, x, y, w, h, 1, probe, false)

	center := c.Capsule.WorldCenter(pos, rot, scale).Vec2()
	v.line(screen, center, center.Sub(mgl64.Vec2{0, c.Capsule.Slope.FloatRayDistance}), 1, colornames.Deepskyblue)

	bottom := c.Capsule.WorldBottom(pos, rot, scale).Vec2()
	fall := cfg.Grounded.GroundToFallRayDistance
	if !c.State().Grounded() {
		fall = cfg.Airborne.JumpData.JumpToGroundRayDistance
	}
	v.line(screen, bottom.Add(mgl64.Vec2{0.05, 0}), bottom.Add(mgl64.Vec2{0.05, -fall}), 1, colornames.Orangered)
}

func drawLabel(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, labelFace, op)
}
