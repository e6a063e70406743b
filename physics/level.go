package physics

import (
	"github.com/milk9111/locomotion/component"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/sirupsen/logrus"
)

// NewLevelWorld creates a world holding the static geometry of level.
func NewLevelWorld(level *prefabs.LevelSpec, log *logrus.Entry) *World {
	gravity := DefaultGravity
	if level != nil && level.Gravity != 0 {
		gravity = level.Gravity
	}
	w := NewWorld(gravity, log)
	w.buildStaticShapes(level)
	return w
}

func (w *World) buildStaticShapes(level *prefabs.LevelSpec) {
	if w == nil || w.space == nil || level == nil {
		return
	}
	for _, s := range level.Segments {
		w.AddSegment(s.From, s.To, s.Radius, component.Collider{Name: s.Name, Layer: s.Layer})
	}
	for _, b := range level.Boxes {
		c := component.Collider{Name: b.Name, Layer: b.Layer}
		if b.Trigger {
			w.AddTrigger(b.Min, b.Max, c)
			continue
		}
		w.AddBox(b.Min, b.Max, c)
	}
	w.log.WithFields(logrus.Fields{
		"level":    level.Name,
		"segments": len(level.Segments),
		"boxes":    len(level.Boxes),
	}).Info("level geometry built")
}
