package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/viewer"
	"github.com/Faultbox/meshview/pkg/math"
	"github.com/Faultbox/meshview/pkg/stl"
)

// ModelStats describes the currently displayed model.
type ModelStats struct {
	FileName  string
	FileSize  int64
	Name      string
	Triangles int
	BoundsMin math.Vec3
	BoundsMax math.Vec3
	Size      math.Vec3
}

// App holds the application state and UI layout.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config

	viewer *viewer.Viewer
	state  viewer.ControlState
	stats  *ModelStats

	// Last surfaced error, shown in the status bar until the next
	// successful load.
	errMsg string

	// File dialog result, consumed on the main thread in render()
	pendingPath string

	lastFrame time.Time
	lastMouse imgui.Vec2
}

// NewApp creates the application window and GL resources.
func NewApp(cfg *config.Config) *App {
	app := &App{
		cfg: cfg,
		state: viewer.ControlState{
			ShowGrid:       cfg.Scene.ShowGrid,
			ShowAxes:       cfg.Scene.ShowAxes,
			Background:     cfg.Scene.Background,
			ModelColor:     cfg.Scene.ModelColor,
			LightIntensity: cfg.Scene.LightIntensity,
			RotationSpeed:  cfg.Scene.RotationSpeed,
		},
		lastFrame: time.Now(),
	}

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		panic(fmt.Sprintf("failed to create backend: %v", err))
	}

	bg := cfg.Scene.Background
	app.backend.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], 1.0))
	app.backend.CreateWindow("MeshView", cfg.Display.Width, cfg.Display.Height)

	if err := gl.Init(); err != nil {
		panic(fmt.Sprintf("OpenGL init failed: %v", err))
	}

	app.viewer, err = viewer.New(int32(cfg.Display.Width), int32(cfg.Display.Height))
	if err != nil {
		panic(fmt.Sprintf("failed to create viewer: %v", err))
	}

	if cfg.Display.Fullscreen {
		if err := window.SetFullscreen(true); err != nil {
			// Staying windowed is fine; just report it.
			logger.Warn("fullscreen unavailable", zap.Error(err))
		}
	}

	return app
}

// QueueModel schedules an STL file to be loaded on the next frame.
func (app *App) QueueModel(path string) {
	app.pendingPath = path
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases GL resources.
func (app *App) Close() {
	if app.viewer != nil {
		app.viewer.Close()
		app.viewer = nil
	}
}

// toggleFullscreen flips the display mode. Failures are surfaced in
// the status bar but never abort the session.
func (app *App) toggleFullscreen() {
	if err := window.ToggleFullscreen(); err != nil {
		app.errMsg = fmt.Sprintf("Fullscreen unavailable: %v", err)
		logger.Warn("fullscreen toggle failed", zap.Error(err))
	}
}

// openFileDialog shows a native file picker. SDL window operations
// must stay on the main thread, so the goroutine only records the
// chosen path; render() consumes it.
func (app *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("STL Models", "stl").
			Filter("All Files", "*").
			Title("Open STL Model").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog failed", zap.Error(err))
			}
			return
		}

		app.pendingPath = filename
	}()
}

// loadModel reads, parses and displays an STL file. On failure the
// previous model stays on screen.
func (app *App) loadModel(path string) {
	if !strings.EqualFold(filepath.Ext(path), ".stl") {
		// Not an error: non-STL selections are ignored quietly.
		logger.Debug("ignoring non-STL file", zap.String("path", path))
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		app.errMsg = fmt.Sprintf("Cannot read %s: %v", filepath.Base(path), err)
		logger.Error("read failed", zap.String("path", path), zap.Error(err))
		return
	}

	logger.Debug("parsing STL",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.Int("estimated_triangles", stl.EstimateTriangleCount(len(data))))

	mesh, err := stl.Parse(data)
	if err != nil {
		app.errMsg = fmt.Sprintf("Cannot parse %s: %v", filepath.Base(path), err)
		logger.Error("parse failed", zap.String("path", path), zap.Error(err))
		return
	}

	mesh.Normalize()

	if err := app.viewer.LoadMesh(mesh); err != nil {
		app.errMsg = fmt.Sprintf("Cannot display %s: %v", filepath.Base(path), err)
		logger.Error("load failed", zap.String("path", path), zap.Error(err))
		return
	}

	app.errMsg = ""
	app.stats = &ModelStats{
		FileName:  filepath.Base(path),
		FileSize:  int64(len(data)),
		Name:      mesh.Name,
		Triangles: mesh.TriangleCount(),
		BoundsMin: mesh.Bounds.Min,
		BoundsMax: mesh.Bounds.Max,
		Size:      mesh.Bounds.Size(),
	}
	app.backend.SetWindowTitle(fmt.Sprintf("MeshView - %s", filepath.Base(path)))

	logger.Info("model loaded",
		zap.String("file", filepath.Base(path)),
		zap.Int("triangles", mesh.TriangleCount()))
}

// render is called each frame to draw the UI.
func (app *App) render() {
	now := time.Now()
	dt := float32(now.Sub(app.lastFrame).Seconds())
	app.lastFrame = now
	if dt > 0.1 {
		dt = 0.1 // Clamp after stalls (window drag, dialog)
	}

	// Process pending file dialog result on the main thread
	if app.pendingPath != "" {
		path := app.pendingPath
		app.pendingPath = ""
		app.loadModel(path)
	}

	// F11 toggles fullscreen; Escape leaves it
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF11)) {
		app.toggleFullscreen()
	}
	if window.IsFullscreen() && imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyEscape)) {
		if err := window.SetFullscreen(false); err != nil {
			logger.Warn("leaving fullscreen failed", zap.Error(err))
		}
	}

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open STL...") {
				app.openFileDialog()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("View") {
			if imgui.MenuItemBool("Reset View") {
				app.viewer.ResetView()
			}
			if imgui.MenuItemBool("Toggle Fullscreen\tF11") {
				app.toggleFullscreen()
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	controlsWidth := float32(300)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight
	viewportWidth := workSize.X - controlsWidth

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	// Center panel - rendered model
	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(viewportWidth, contentHeight))
	if imgui.BeginV("Viewport", nil, flags) {
		app.renderViewport(dt)
	}
	imgui.End()

	// Right panel - controls and stats
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+viewportWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, contentHeight))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	// Status bar at bottom
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

// renderViewport sizes the render target to the panel, draws the
// frame and feeds mouse input back to the camera.
func (app *App) renderViewport(dt float32) {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}

	app.viewer.Resize(int32(avail.X), int32(avail.Y))
	if err := app.viewer.Apply(app.state); err != nil {
		logger.Error("apply failed", zap.Error(err))
	}

	textureID := app.viewer.Frame(dt)
	if textureID == 0 {
		return
	}

	// Flip V: OpenGL framebuffers have their origin at the bottom left
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.viewer.HandleDrag(mousePos.X-app.lastMouse.X, mousePos.Y-app.lastMouse.Y)
		}
		app.lastMouse = mousePos

		wheel := imgui.CurrentIO().MouseWheel()
		if wheel != 0 {
			app.viewer.HandleZoom(wheel)
		}
	}
}

// renderControls draws the display toggles, appearance settings and
// model statistics.
func (app *App) renderControls() {
	imgui.Text("Display")
	imgui.Checkbox("Wireframe", &app.state.ShowWireframe)
	imgui.Checkbox("Normals", &app.state.ShowNormals)
	imgui.Checkbox("Grid", &app.state.ShowGrid)
	imgui.Checkbox("Axes", &app.state.ShowAxes)

	imgui.Separator()
	imgui.Text("Appearance")
	imgui.ColorEdit3("Background", &app.state.Background)
	imgui.ColorEdit3("Model", &app.state.ModelColor)
	imgui.SliderFloatV("Light", &app.state.LightIntensity, 0, 2, "%.2f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Rotation", &app.state.RotationSpeed, 0, 5, "%.1fx", imgui.SliderFlagsNone)

	imgui.Separator()
	if imgui.Button("Reset View") {
		app.viewer.ResetView()
	}
	imgui.SameLine()
	fullscreenLabel := "Fullscreen"
	if window.IsFullscreen() {
		fullscreenLabel = "Windowed"
	}
	if imgui.Button(fullscreenLabel) {
		app.toggleFullscreen()
	}
	imgui.TextDisabled("(Drag to rotate, scroll to zoom)")

	imgui.Separator()
	imgui.Text("Model")
	if app.stats == nil {
		imgui.TextDisabled("No model loaded")
		return
	}

	imgui.Text("File: " + app.stats.FileName)
	if app.stats.Name != "" {
		imgui.Text("Name: " + app.stats.Name)
	}
	imgui.Text(fmt.Sprintf("Size: %s", formatBytes(app.stats.FileSize)))
	imgui.Text(fmt.Sprintf("Triangles: %d", app.stats.Triangles))
	imgui.Spacing()
	imgui.Text("Bounds:")
	imgui.Text(fmt.Sprintf("  Min: (%.2f, %.2f, %.2f)",
		app.stats.BoundsMin.X, app.stats.BoundsMin.Y, app.stats.BoundsMin.Z))
	imgui.Text(fmt.Sprintf("  Max: (%.2f, %.2f, %.2f)",
		app.stats.BoundsMax.X, app.stats.BoundsMax.Y, app.stats.BoundsMax.Z))
	imgui.Text(fmt.Sprintf("  Extent: (%.2f, %.2f, %.2f)",
		app.stats.Size.X, app.stats.Size.Y, app.stats.Size.Z))
}

// renderStatusBar shows the last error, or the loaded file.
func (app *App) renderStatusBar() {
	if app.errMsg != "" {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), app.errMsg)
		return
	}
	if app.stats != nil {
		imgui.Text(fmt.Sprintf("%s | %d triangles", app.stats.FileName, app.stats.Triangles))
		return
	}
	imgui.Text("Open an STL file to begin (File > Open STL...)")
}

// formatBytes renders a byte count in human-readable form.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMG"[exp])
}
