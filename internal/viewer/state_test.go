package viewer

import (
	"strings"
	"testing"
)

func TestStateChanges_Identical(t *testing.T) {
	s := DefaultControlState()
	if changes := stateChanges(s, s); len(changes) != 0 {
		t.Errorf("identical states produced changes: %v", changes)
	}
}

func TestStateChanges_SingleField(t *testing.T) {
	prev := DefaultControlState()

	next := prev
	next.ShowWireframe = true

	changes := stateChanges(prev, next)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d: %v", len(changes), changes)
	}
	if !strings.Contains(changes[0], "wireframe") {
		t.Errorf("unexpected change entry: %s", changes[0])
	}
}

func TestStateChanges_AllFields(t *testing.T) {
	prev := DefaultControlState()

	next := ControlState{
		ShowWireframe:  true,
		ShowNormals:    true,
		ShowGrid:       false,
		ShowAxes:       false,
		Background:     [3]float32{1, 1, 1},
		ModelColor:     [3]float32{0, 0, 0},
		LightIntensity: 2.0,
		RotationSpeed:  1.0,
	}

	changes := stateChanges(prev, next)
	if len(changes) != 8 {
		t.Errorf("expected 8 changes, got %d: %v", len(changes), changes)
	}
}

func TestClamped(t *testing.T) {
	s := ControlState{
		Background:     [3]float32{-0.5, 2, 0.5},
		ModelColor:     [3]float32{1.5, -1, 0.2},
		LightIntensity: 99,
		RotationSpeed:  -3,
	}

	c := s.clamped()

	if c.Background != [3]float32{0, 1, 0.5} {
		t.Errorf("background = %v", c.Background)
	}
	if c.ModelColor != [3]float32{1, 0, 0.2} {
		t.Errorf("model color = %v", c.ModelColor)
	}
	if c.LightIntensity != maxLightIntensity {
		t.Errorf("light intensity = %f, expected %f", c.LightIntensity, float32(maxLightIntensity))
	}
	if c.RotationSpeed != 0 {
		t.Errorf("rotation speed = %f, expected 0", c.RotationSpeed)
	}
}

func TestClamped_InRangeUntouched(t *testing.T) {
	s := DefaultControlState()
	if s.clamped() != s {
		t.Error("clamping altered an in-range state")
	}
}

func TestDefaultControlState(t *testing.T) {
	s := DefaultControlState()

	if !s.ShowGrid || !s.ShowAxes {
		t.Error("grid and axes should start visible")
	}
	if s.ShowWireframe || s.ShowNormals {
		t.Error("wireframe and normals should start hidden")
	}
	if s.LightIntensity != 1.0 {
		t.Errorf("light intensity = %f, expected 1", s.LightIntensity)
	}
	if s.RotationSpeed != 0 {
		t.Errorf("rotation speed = %f, expected 0", s.RotationSpeed)
	}
}
