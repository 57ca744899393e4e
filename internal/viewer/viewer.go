// Package viewer renders STL meshes to an offscreen framebuffer and
// manages the scene lifecycle: mesh loading, control state
// reconciliation, camera input and resource disposal.
package viewer

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/framebuffer"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
	"github.com/Faultbox/meshview/pkg/stl"
)

// ErrViewerClosed is returned by LoadMesh and Apply after Close.
var ErrViewerClosed = errors.New("viewer is closed")

// rotationRate converts a RotationSpeed unit into radians per second.
const rotationRate = 0.5

// normalLength is the drawn length of facet normal markers, sized for
// normalized meshes.
const normalLength = stl.NormalizedSize * 0.05

// Overlay colors.
var (
	wireframeColor = [3]float32{0.08, 0.08, 0.08}
	normalsColor   = [3]float32{0.9, 0.78, 0.2}
	gridColor      = [3]float32{0.28, 0.28, 0.32}
	axisColors     = [3][3]float32{
		{0.85, 0.25, 0.25}, // X
		{0.3, 0.8, 0.3},    // Y
		{0.3, 0.45, 0.9},   // Z
	}
)

// drawSet is a VAO/VBO pair with a vertex count.
type drawSet struct {
	vao   uint32
	vbo   uint32
	count int32
}

func (d *drawSet) release() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
		d.vbo = 0
	}
	d.count = 0
}

// Viewer owns the GL resources for one scene. All methods must be
// called from the thread holding the GL context.
type Viewer struct {
	fb  *framebuffer.Framebuffer
	cam *camera.Orbit

	meshProgram   uint32
	locModel      int32
	locView       int32
	locProjection int32
	locLightDir   int32
	locAmbient    int32
	locDiffuse    int32
	locMeshColor  int32

	lineProgram  uint32
	locLineMVP   int32
	locLineColor int32

	// Model geometry, replaced wholesale on LoadMesh
	surface   drawSet
	wireframe drawSet
	normals   drawSet

	// World-fixed helpers, built once
	grid drawSet
	axes drawSet

	state   ControlState
	bounds  stl.Bounds
	hasMesh bool
	angle   float32
	closed  bool
}

// New creates a viewer rendering into a framebuffer of the given size.
// Requires a current GL context.
func New(width, height int32) (*Viewer, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("framebuffer: %w", err)
	}

	v := &Viewer{
		fb:    fb,
		cam:   camera.NewOrbit(),
		state: DefaultControlState(),
	}

	v.meshProgram, err = shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	v.locModel = shader.GetUniform(v.meshProgram, "uModel")
	v.locView = shader.GetUniform(v.meshProgram, "uView")
	v.locProjection = shader.GetUniform(v.meshProgram, "uProjection")
	v.locLightDir = shader.GetUniform(v.meshProgram, "uLightDir")
	v.locAmbient = shader.GetUniform(v.meshProgram, "uAmbient")
	v.locDiffuse = shader.GetUniform(v.meshProgram, "uDiffuse")
	v.locMeshColor = shader.GetUniform(v.meshProgram, "uColor")

	v.lineProgram, err = shader.CompileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("line shader: %w", err)
	}
	v.locLineMVP = shader.GetUniform(v.lineProgram, "uMVP")
	v.locLineColor = shader.GetUniform(v.lineProgram, "uColor")

	v.grid = uploadLines(gridVertices(stl.NormalizedSize*2, 20))
	v.axes = uploadLines(axisVertices(stl.NormalizedSize * 0.75))

	return v, nil
}

// LoadMesh replaces the displayed model. The previous model's GPU
// resources are released before the new ones take effect; on error the
// viewer keeps whatever it was showing.
func (v *Viewer) LoadMesh(mesh *stl.Mesh) error {
	if v.closed {
		return ErrViewerClosed
	}
	if mesh == nil || mesh.TriangleCount() == 0 {
		return stl.ErrNoGeometry
	}

	surface := uploadSurface(surfaceVertices(mesh))
	wireframe := uploadLines(wireframeVertices(mesh))
	normals := uploadLines(normalVertices(mesh, normalLength))

	v.surface.release()
	v.wireframe.release()
	v.normals.release()
	v.surface = surface
	v.wireframe = wireframe
	v.normals = normals

	v.bounds = mesh.Bounds
	v.hasMesh = true
	v.angle = 0
	v.cam.FitToSphere(mesh.Bounds.Center(), mesh.Bounds.Radius())

	logger.Debug("mesh loaded",
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float32("radius", mesh.Bounds.Radius()))

	return nil
}

// Apply reconciles the viewer against the requested control state.
// Values out of range are clamped; an unchanged state is a no-op.
func (v *Viewer) Apply(next ControlState) error {
	if v.closed {
		return ErrViewerClosed
	}

	next = next.clamped()
	changes := stateChanges(v.state, next)
	if len(changes) == 0 {
		return nil
	}

	logger.Debug("control state changed", zap.String("fields", strings.Join(changes, " ")))
	v.state = next
	return nil
}

// State returns the active (clamped) control state.
func (v *Viewer) State() ControlState {
	return v.state
}

// HasMesh reports whether a model is loaded.
func (v *Viewer) HasMesh() bool {
	return v.hasMesh
}

// Resize adjusts the render target. Safe to call every frame; no-op
// after Close.
func (v *Viewer) Resize(width, height int32) {
	if v.closed {
		return
	}
	v.fb.Resize(width, height)
}

// HandleDrag feeds a mouse drag delta to the orbit camera.
func (v *Viewer) HandleDrag(deltaX, deltaY float32) {
	v.cam.HandleDrag(deltaX, deltaY)
}

// HandleZoom feeds a scroll wheel delta to the orbit camera.
func (v *Viewer) HandleZoom(delta float32) {
	v.cam.HandleZoom(delta)
}

// ResetView reframes the camera on the loaded model and stops the
// accumulated turntable rotation.
func (v *Viewer) ResetView() {
	v.angle = 0
	if v.hasMesh {
		v.cam.FitToSphere(v.bounds.Center(), v.bounds.Radius())
	} else {
		v.cam.FitToSphere(math.Vec3{}, stl.NormalizedSize*0.5)
	}
}

// Frame advances animation by dt seconds, renders the scene and
// returns the color texture ID. Returns 0 after Close so a stale
// frame callback cannot touch released resources.
func (v *Viewer) Frame(dt float32) uint32 {
	if v.closed {
		return 0
	}

	v.angle += v.state.RotationSpeed * rotationRate * dt
	v.cam.Update(dt)
	v.render()

	return v.fb.ColorTexture()
}

// Close releases all GL resources. Idempotent; LoadMesh and Apply fail
// afterwards, Frame and Resize become no-ops.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.hasMesh = false

	v.surface.release()
	v.wireframe.release()
	v.normals.release()
	v.grid.release()
	v.axes.release()

	if v.meshProgram != 0 {
		gl.DeleteProgram(v.meshProgram)
		v.meshProgram = 0
	}
	if v.lineProgram != 0 {
		gl.DeleteProgram(v.lineProgram)
		v.lineProgram = 0
	}
	if v.fb != nil {
		v.fb.Destroy()
	}
}

func (v *Viewer) render() {
	restore := v.fb.BindWithViewport()
	defer restore()

	bg := v.state.Background
	v.fb.Clear(bg[0], bg[1], bg[2], 1.0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	width, height := v.fb.Size()
	aspect := float32(width) / float32(height)
	projection := math.Perspective(0.785398, aspect, 0.1, 2000.0)
	view := v.cam.ViewMatrix()
	model := math.RotateY(v.angle)

	if v.hasMesh && v.surface.count > 0 {
		gl.UseProgram(v.meshProgram)
		gl.UniformMatrix4fv(v.locProjection, 1, false, projection.Ptr())
		gl.UniformMatrix4fv(v.locView, 1, false, view.Ptr())
		gl.UniformMatrix4fv(v.locModel, 1, false, model.Ptr())

		intensity := v.state.LightIntensity
		gl.Uniform3f(v.locLightDir, 0.5, 1.0, 0.6)
		gl.Uniform3f(v.locAmbient, 0.35*intensity, 0.35*intensity, 0.35*intensity)
		gl.Uniform3f(v.locDiffuse, 0.65*intensity, 0.65*intensity, 0.65*intensity)
		mc := v.state.ModelColor
		gl.Uniform3f(v.locMeshColor, mc[0], mc[1], mc[2])

		// Push the surface back slightly so line overlays win the
		// depth fight.
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		gl.PolygonOffset(1.0, 1.0)
		gl.BindVertexArray(v.surface.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, v.surface.count)
		gl.Disable(gl.POLYGON_OFFSET_FILL)
	}

	gl.UseProgram(v.lineProgram)

	mvp := projection.Mul(view).Mul(model)
	if v.hasMesh && v.state.ShowWireframe {
		v.drawLines(&v.wireframe, mvp, wireframeColor)
	}
	if v.hasMesh && v.state.ShowNormals {
		v.drawLines(&v.normals, mvp, normalsColor)
	}

	// Grid and axes stay world-fixed while the model spins.
	worldMVP := projection.Mul(view)
	if v.state.ShowGrid {
		v.drawLines(&v.grid, worldMVP, gridColor)
	}
	if v.state.ShowAxes {
		gl.UniformMatrix4fv(v.locLineMVP, 1, false, worldMVP.Ptr())
		gl.BindVertexArray(v.axes.vao)
		for i, c := range axisColors {
			gl.Uniform3f(v.locLineColor, c[0], c[1], c[2])
			gl.DrawArrays(gl.LINES, int32(i*2), 2)
		}
	}

	gl.BindVertexArray(0)
}

func (v *Viewer) drawLines(set *drawSet, mvp math.Mat4, color [3]float32) {
	if set.count == 0 {
		return
	}
	gl.UniformMatrix4fv(v.locLineMVP, 1, false, mvp.Ptr())
	gl.Uniform3f(v.locLineColor, color[0], color[1], color[2])
	gl.BindVertexArray(set.vao)
	gl.DrawArrays(gl.LINES, 0, set.count)
}

// uploadSurface uploads an interleaved position+normal buffer
// (6 floats per vertex).
func uploadSurface(verts []float32) drawSet {
	if len(verts) == 0 {
		return drawSet{}
	}

	var set drawSet
	gl.GenVertexArrays(1, &set.vao)
	gl.BindVertexArray(set.vao)

	gl.GenBuffers(1, &set.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, set.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 24, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 24, 12)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	set.count = int32(len(verts) / 6)
	return set
}

// uploadLines uploads a position-only buffer (3 floats per vertex).
func uploadLines(verts []float32) drawSet {
	if len(verts) == 0 {
		return drawSet{}
	}

	var set drawSet
	gl.GenVertexArrays(1, &set.vao)
	gl.BindVertexArray(set.vao)

	gl.GenBuffers(1, &set.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, set.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	set.count = int32(len(verts) / 3)
	return set
}
