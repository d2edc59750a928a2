package app

import (
	"io"
	"log/slog"
	"path/filepath"
)

// App encapsulates the application's configuration and logger for one run.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	runID  string
}

// NewApp is the constructor for the main application. It returns an App with
// its own isolated logger writing to outW.
func NewApp(outW io.Writer, cfg *Config) *App {
	runID := newRunID()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW, runID)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		runID:  runID,
	}
}

// RunID returns the identifier attached to every log record of this App.
func (a *App) RunID() string {
	return a.runID
}

// OutputPath is the file the assembled document is written to.
func (a *App) OutputPath() string {
	return filepath.Join(a.config.OutputDirectory, a.config.OutputFile)
}
