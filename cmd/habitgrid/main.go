package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/habit-grid/internal/app"
	"github.com/nhle/habit-grid/internal/logger"
	"github.com/nhle/habit-grid/internal/model"
)

func main() {
	cfgPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "habitgrid: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Log.Debug,
		ConfigDir: filepath.Dir(cfgPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "habitgrid: initializing logger: %v\n", err)
		os.Exit(1)
	}

	logger.Logger.Info("starting", "api", cfg.API.BaseURL)

	p := tea.NewProgram(app.New(cfg, cfgPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "habitgrid: %v\n", err)
		os.Exit(1)
	}
}
