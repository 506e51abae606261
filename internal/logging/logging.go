package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"chrono/internal/config"
)

// New builds the application logger. The terminal belongs to the UI, so
// output goes to cfg.File, or nowhere when no file is configured. The
// returned closer releases the log file.
func New(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(level)

	if cfg.File == "" {
		logger.SetOutput(io.Discard)
		return logger, io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}
