package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/meshview/pkg/math"
)

func TestHandleDrag_ClampsPitch(t *testing.T) {
	c := NewOrbit()

	// Drag far past the vertical limit.
	c.HandleDrag(0, 100000)
	if c.TargetPitch > c.MaxPitch {
		t.Errorf("pitch %f exceeds max %f", c.TargetPitch, c.MaxPitch)
	}

	c.HandleDrag(0, -200000)
	if c.TargetPitch < c.MinPitch {
		t.Errorf("pitch %f below min %f", c.TargetPitch, c.MinPitch)
	}
}

func TestHandleZoom_ClampsDistance(t *testing.T) {
	c := NewOrbit()

	for i := 0; i < 200; i++ {
		c.HandleZoom(10)
	}
	if c.TargetDistance < c.MinDistance {
		t.Errorf("distance %f below min %f", c.TargetDistance, c.MinDistance)
	}

	for i := 0; i < 200; i++ {
		c.HandleZoom(-10)
	}
	if c.TargetDistance > c.MaxDistance {
		t.Errorf("distance %f above max %f", c.TargetDistance, c.MaxDistance)
	}
}

func TestUpdate_ApproachesTarget(t *testing.T) {
	c := NewOrbit()
	c.TargetYaw = c.Yaw + 1.0

	before := float32(gomath.Abs(float64(c.TargetYaw - c.Yaw)))
	c.Update(1.0 / 60.0)
	after := float32(gomath.Abs(float64(c.TargetYaw - c.Yaw)))

	if after >= before {
		t.Errorf("gap did not shrink: before %f, after %f", before, after)
	}

	// A few seconds of updates should converge.
	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60.0)
	}
	if gomath.Abs(float64(c.TargetYaw-c.Yaw)) > 1e-3 {
		t.Errorf("yaw %f did not converge to target %f", c.Yaw, c.TargetYaw)
	}
}

func TestUpdate_StableAtTarget(t *testing.T) {
	c := NewOrbit()
	yaw, pitch, dist := c.Yaw, c.Pitch, c.Distance

	c.Update(1.0 / 60.0)

	if c.Yaw != yaw || c.Pitch != pitch || c.Distance != dist {
		t.Error("camera moved with no pending input")
	}
}

func TestFitToSphere(t *testing.T) {
	c := NewOrbit()
	center := math.Vec3{X: 1, Y: 2, Z: 3}

	c.FitToSphere(center, 5)

	if c.Center != center {
		t.Errorf("center = %v, expected %v", c.Center, center)
	}
	if c.Distance != 12.5 {
		t.Errorf("distance = %f, expected 12.5", c.Distance)
	}
	if c.Distance != c.TargetDistance {
		t.Error("visible and target distance differ after fit")
	}

	// Degenerate radius falls back to a unit sphere.
	c.FitToSphere(math.Vec3{}, 0)
	if c.Distance != 2.5 {
		t.Errorf("distance for zero radius = %f, expected 2.5", c.Distance)
	}
}

func TestPosition_RespectsDistance(t *testing.T) {
	c := NewOrbit()
	c.Center = math.Vec3{}

	pos := c.Position()
	if d := pos.Length(); gomath.Abs(float64(d-c.Distance)) > 1e-3 {
		t.Errorf("position length = %f, expected %f", d, c.Distance)
	}
}
