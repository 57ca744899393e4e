package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 800 {
		t.Errorf("expected height 800, got %d", cfg.Display.Height)
	}
	if cfg.Display.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Display.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.LightIntensity != 1.0 {
		t.Errorf("expected light intensity 1.0, got %f", cfg.Scene.LightIntensity)
	}
	if cfg.Scene.RotationSpeed != 0 {
		t.Errorf("expected rotation speed 0, got %f", cfg.Scene.RotationSpeed)
	}
	if !cfg.Scene.ShowGrid {
		t.Error("expected show_grid to be true by default")
	}
	if !cfg.Scene.ShowAxes {
		t.Error("expected show_axes to be true by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

scene:
  background: [0.1, 0.2, 0.3]
  model_color: [1.0, 0.5, 0.25]
  light_intensity: 1.5
  rotation_speed: 2.0
  show_grid: false
  show_axes: false

logging:
  level: "debug"
  log_file: "meshview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Display.Height)
	}
	if !cfg.Display.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Display.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Scene.Background != [3]float32{0.1, 0.2, 0.3} {
		t.Errorf("unexpected background: %v", cfg.Scene.Background)
	}
	if cfg.Scene.ModelColor != [3]float32{1.0, 0.5, 0.25} {
		t.Errorf("unexpected model color: %v", cfg.Scene.ModelColor)
	}
	if cfg.Scene.LightIntensity != 1.5 {
		t.Errorf("expected light intensity 1.5, got %f", cfg.Scene.LightIntensity)
	}
	if cfg.Scene.RotationSpeed != 2.0 {
		t.Errorf("expected rotation speed 2.0, got %f", cfg.Scene.RotationSpeed)
	}
	if cfg.Scene.ShowGrid {
		t.Error("expected show_grid to be false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshview.log" {
		t.Errorf("expected log file 'meshview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
display:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Display.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Display.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Display.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Display.Width)
				}
				if cfg.Display.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Display.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Display.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Display.Height)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Display.Width = 640
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Display.Width != 640 {
		t.Errorf("round-tripped width = %d, expected 640", loaded.Display.Width)
	}
}
