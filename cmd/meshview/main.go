// MeshView - a desktop STL model viewer.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/logger"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app := NewApp(cfg)
	defer app.Close()

	if path := config.ModelPath(); path != "" {
		app.QueueModel(path)
	}

	app.Run()
}
