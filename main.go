package main

import (
	"fmt"
	"os"
	"time"

	"chrono/internal"
	"chrono/internal/config"
	"chrono/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	m, err := internal.NewModel(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())

	ticker := time.NewTicker(cfg.Timer.RefreshInterval)
	defer ticker.Stop()
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.Send(internal.MsgTick{})
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		logger.WithError(err).Error("program exited with error")
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
