// Package window provides display-mode control for the viewer window.
// The window itself is created and owned by the UI backend; this
// package operates on the current GL window.
package window

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// ErrNoWindow is returned when no GL window is current.
var ErrNoWindow = errors.New("no current GL window")

// IsFullscreen reports whether the current window is fullscreen.
func IsFullscreen() bool {
	win, err := sdl.GLGetCurrentWindow()
	if err != nil || win == nil {
		return false
	}
	return win.GetFlags()&sdl.WINDOW_FULLSCREEN_DESKTOP != 0
}

// SetFullscreen switches the current window between borderless
// fullscreen and windowed mode.
func SetFullscreen(enabled bool) error {
	win, err := sdl.GLGetCurrentWindow()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoWindow, err)
	}
	if win == nil {
		return ErrNoWindow
	}

	var flags uint32
	if enabled {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := win.SetFullscreen(flags); err != nil {
		return fmt.Errorf("setting fullscreen=%v: %w", enabled, err)
	}
	return nil
}

// ToggleFullscreen flips the fullscreen state of the current window.
func ToggleFullscreen() error {
	return SetFullscreen(!IsFullscreen())
}
