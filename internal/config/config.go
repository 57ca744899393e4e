// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds window settings.
type DisplayConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SceneConfig holds initial scene appearance settings.
type SceneConfig struct {
	Background     [3]float32 `yaml:"background"`
	ModelColor     [3]float32 `yaml:"model_color"`
	LightIntensity float32    `yaml:"light_intensity"`
	RotationSpeed  float32    `yaml:"rotation_speed"`
	ShowGrid       bool       `yaml:"show_grid"`
	ShowAxes       bool       `yaml:"show_axes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      1280,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			Background:     [3]float32{0.06, 0.06, 0.08},
			ModelColor:     [3]float32{0.55, 0.65, 0.8},
			LightIntensity: 1.0,
			RotationSpeed:  0.0,
			ShowGrid:       true,
			ShowAxes:       true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
