package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the directories the application writes to. All paths
// are absolute once constructed.
type Paths struct {
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// NewPaths resolves the configured directories against the working
// directory and ensures they exist.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	paths := &Paths{
		DataDir:    cfg.DataDir,
		ReportsDir: cfg.ReportsDir,
		LogsDir:    cfg.LogsDir,
	}

	for _, dir := range []*string{&paths.DataDir, &paths.ReportsDir, &paths.LogsDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", *dir, err)
		}
		*dir = abs
		if err := os.MkdirAll(abs, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", abs, err)
		}
	}

	return paths, nil
}

// GetLogPath returns the absolute path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
