package character

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSnapshotTracksTheSim(t *testing.T) {
	s := newSim(t, flatLevel(50))
	s.Run(30)
	s.Character.Input.Move.SetValue(mgl64.Vec2{1, 0})
	s.Run(10)

	snap := s.Snapshot()
	if snap.Tick != 40 || snap.State != "walk" || !snap.Grounded {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.MovementInput != (mgl64.Vec2{1, 0}) || math.Abs(snap.TargetYaw-90) > 1e-9 {
		t.Fatalf("unexpected input data: %+v", snap)
	}
	if !snap.JumpEnabled {
		t.Fatalf("jump should be enabled while walking")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["state"] != "walk" {
		t.Fatalf("expected the state name in json, got %v", decoded["state"])
	}
	if pos, ok := decoded["position"].([]any); !ok || len(pos) != 3 {
		t.Fatalf("expected position as a 3 element array, got %v", decoded["position"])
	}
}
