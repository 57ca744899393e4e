package viewer

import "fmt"

// Intensity and rotation speed limits for ControlState clamping.
const (
	maxLightIntensity = 2.0
	maxRotationSpeed  = 5.0
)

// ControlState holds every user-tunable rendering option. Apply diffs
// it against the active state, so re-submitting an identical struct is
// free.
type ControlState struct {
	ShowWireframe bool
	ShowNormals   bool
	ShowGrid      bool
	ShowAxes      bool

	Background [3]float32
	ModelColor [3]float32

	LightIntensity float32 // 0..2, 1 = neutral
	RotationSpeed  float32 // 0..5, turntable speed multiplier
}

// DefaultControlState returns the state a fresh viewer starts with.
func DefaultControlState() ControlState {
	return ControlState{
		ShowGrid:       true,
		ShowAxes:       true,
		Background:     [3]float32{0.06, 0.06, 0.08},
		ModelColor:     [3]float32{0.55, 0.65, 0.8},
		LightIntensity: 1.0,
		RotationSpeed:  0.0,
	}
}

// clamped returns a copy with all numeric fields forced into range.
func (s ControlState) clamped() ControlState {
	s.LightIntensity = clampf(s.LightIntensity, 0, maxLightIntensity)
	s.RotationSpeed = clampf(s.RotationSpeed, 0, maxRotationSpeed)
	for i := range s.Background {
		s.Background[i] = clampf(s.Background[i], 0, 1)
		s.ModelColor[i] = clampf(s.ModelColor[i], 0, 1)
	}
	return s
}

// stateChanges lists the fields that differ between two states.
func stateChanges(prev, next ControlState) []string {
	var changes []string

	if prev.ShowWireframe != next.ShowWireframe {
		changes = append(changes, fmt.Sprintf("wireframe=%v", next.ShowWireframe))
	}
	if prev.ShowNormals != next.ShowNormals {
		changes = append(changes, fmt.Sprintf("normals=%v", next.ShowNormals))
	}
	if prev.ShowGrid != next.ShowGrid {
		changes = append(changes, fmt.Sprintf("grid=%v", next.ShowGrid))
	}
	if prev.ShowAxes != next.ShowAxes {
		changes = append(changes, fmt.Sprintf("axes=%v", next.ShowAxes))
	}
	if prev.Background != next.Background {
		changes = append(changes, fmt.Sprintf("background=%v", next.Background))
	}
	if prev.ModelColor != next.ModelColor {
		changes = append(changes, fmt.Sprintf("model_color=%v", next.ModelColor))
	}
	if prev.LightIntensity != next.LightIntensity {
		changes = append(changes, fmt.Sprintf("light=%.2f", next.LightIntensity))
	}
	if prev.RotationSpeed != next.RotationSpeed {
		changes = append(changes, fmt.Sprintf("rotation=%.2f", next.RotationSpeed))
	}

	return changes
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
