// Package camera provides an orbit camera for model inspection.
package camera

import (
	gomath "math"

	"github.com/Faultbox/meshview/pkg/math"
)

// Orbit orbits around a center point using spherical coordinates.
// Drag and zoom input moves target values; Update eases the visible
// state toward them for smooth motion.
type Orbit struct {
	Center math.Vec3

	// Visible spherical coordinates
	Distance float32
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians

	// Eased-toward targets
	TargetDistance float32
	TargetPitch    float32
	TargetYaw      float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity and easing
	DragSensitivity float32
	ZoomSensitivity float32
	Damping         float32
}

// NewOrbit creates an orbit camera sized for normalized meshes.
func NewOrbit() *Orbit {
	c := &Orbit{
		Distance:        25.0,
		Pitch:           0.5,
		Yaw:             0.6,
		MinDistance:     2.0,
		MaxDistance:     500.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.008,
		ZoomSensitivity: 0.1,
		Damping:         8.0,
	}
	c.TargetDistance = c.Distance
	c.TargetPitch = c.Pitch
	c.TargetYaw = c.Yaw
	return c
}

// HandleDrag updates the target rotation from a mouse drag delta.
func (c *Orbit) HandleDrag(deltaX, deltaY float32) {
	c.TargetYaw -= deltaX * c.DragSensitivity
	c.TargetPitch += deltaY * c.DragSensitivity

	if c.TargetPitch < c.MinPitch {
		c.TargetPitch = c.MinPitch
	}
	if c.TargetPitch > c.MaxPitch {
		c.TargetPitch = c.MaxPitch
	}
}

// HandleZoom updates the target distance from a scroll wheel delta.
// Zoom steps scale with distance so the feel is constant.
func (c *Orbit) HandleZoom(delta float32) {
	c.TargetDistance -= delta * c.TargetDistance * c.ZoomSensitivity
	if c.TargetDistance < c.MinDistance {
		c.TargetDistance = c.MinDistance
	}
	if c.TargetDistance > c.MaxDistance {
		c.TargetDistance = c.MaxDistance
	}
}

// Update eases the visible state toward the targets. dt is in seconds.
func (c *Orbit) Update(dt float32) {
	t := 1.0 - float32(gomath.Exp(float64(-c.Damping*dt)))
	c.Distance += (c.TargetDistance - c.Distance) * t
	c.Pitch += (c.TargetPitch - c.Pitch) * t
	c.Yaw += (c.TargetYaw - c.Yaw) * t
}

// Position returns the camera position in world space.
func (c *Orbit) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *Orbit) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// FitToSphere frames a bounding sphere, snapping both visible and
// target state so a freshly loaded model appears without easing in.
func (c *Orbit) FitToSphere(center math.Vec3, radius float32) {
	if radius <= 0 {
		radius = 1
	}

	c.Center = center

	distance := radius * 2.5
	if distance < c.MinDistance {
		distance = c.MinDistance
	}
	if distance > c.MaxDistance {
		distance = c.MaxDistance
	}

	c.Distance = distance
	c.Pitch = 0.5
	c.Yaw = 0.6
	c.TargetDistance = c.Distance
	c.TargetPitch = c.Pitch
	c.TargetYaw = c.Yaw
}
